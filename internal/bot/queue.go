package bot

import (
	"context"
	"log/slog"
	"sync"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

type job struct {
	ctx  context.Context
	upd  models.Update
	kind string
}

// dispatcher runs updates of one user in arrival order on a single worker.
// Different users are handled concurrently.
type dispatcher struct {
	handler Handler

	mu     sync.Mutex
	queues map[int64][]job // a key is present while its worker runs
	closed bool
	wg     sync.WaitGroup
}

func newDispatcher(h Handler) *dispatcher {
	return &dispatcher{handler: h, queues: make(map[int64][]job)}
}

// submit queues the update. It returns false once the dispatcher is closed.
func (d *dispatcher) submit(j job) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}
	id := j.upd.From.ID
	pending, running := d.queues[id]
	d.queues[id] = append(pending, j)
	if !running {
		d.wg.Add(1)
		go d.drain(id)
	}
	return true
}

func (d *dispatcher) drain(id int64) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		pending := d.queues[id]
		if len(pending) == 0 {
			delete(d.queues, id)
			d.mu.Unlock()
			return
		}
		j := pending[0]
		d.queues[id] = pending[1:]
		d.mu.Unlock()

		d.run(j)
	}
}

func (d *dispatcher) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Update handler panicked", "user_id", j.upd.From.ID, "panic", r)
		}
	}()

	if err := d.handler.Handle(j.ctx, j.upd); err != nil {
		slog.Error("Error handling update", "user_id", j.upd.From.ID, "kind", j.kind, "error", err)
	}
}

// close rejects new updates and waits for the queued ones to finish
func (d *dispatcher) close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
