package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/looplab/fsm"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/session"
)

// Dialogue states
const (
	StateIdle         = "idle"
	StateEntry        = "entry"
	StateGeography    = "geography"
	StateObjectType   = "object_type"
	StateCondition    = "condition"
	StateMetrage      = "metrage"
	StateRepairFormat = "repair_format"
	StateKeysReady    = "keys_ready"
	StateDeadline     = "deadline"
	StateMainFear     = "main_fear"
	StateBudget       = "budget"
	StateResult       = "result"
	StateContact      = "contact"
	StateQuestion     = "awaiting_question"
)

// Events
const (
	evStart    = "start"
	evBegin    = "begin"
	evAnswer   = "answer"
	evBook     = "book"
	evAsk      = "ask"
	evAsked    = "asked"
	evCaptured = "captured"
	evCancel   = "cancel"
)

// qualification is the fixed question order; answering the last one leads to the closer.
var qualification = []string{
	StateGeography,
	StateObjectType,
	StateCondition,
	StateMetrage,
	StateRepairFormat,
	StateKeysReady,
	StateDeadline,
	StateMainFear,
	StateBudget,
}

var allStates = append([]string{StateIdle, StateEntry, StateResult, StateContact, StateQuestion}, qualification...)

var transitions = buildTransitions()

func buildTransitions() fsm.Events {
	events := fsm.Events{
		{Name: evStart, Src: allStates, Dst: StateEntry},
		{Name: evBegin, Src: []string{StateEntry}, Dst: StateGeography},
		{Name: evBook, Src: []string{StateEntry, StateResult}, Dst: StateContact},
		{Name: evAsk, Src: []string{StateResult}, Dst: StateQuestion},
		{Name: evAsked, Src: []string{StateQuestion}, Dst: StateResult},
		{Name: evCaptured, Src: []string{StateContact}, Dst: StateResult},
		{Name: evCancel, Src: allStates, Dst: StateResult},
	}
	for i, state := range qualification {
		dst := StateResult
		if i+1 < len(qualification) {
			dst = qualification[i+1]
		}
		events = append(events, fsm.EventDesc{Name: evAnswer, Src: []string{state}, Dst: dst})
	}
	return events
}

// fire applies event to the session state. Firing an event that would keep
// the current state is a no-op.
func fire(ctx context.Context, s *session.Session, event string) error {
	from := s.State
	f := fsm.NewFSM(from, transitions, fsm.Callbacks{})
	if err := f.Event(ctx, event); err != nil {
		var noTransition fsm.NoTransitionError
		if errors.As(err, &noTransition) {
			return nil
		}
		return fmt.Errorf("event %q from state %q: %w", event, from, err)
	}
	s.State = f.Current()
	slog.Debug("Dialogue transition", "user_id", s.UserID, "event", event, "from", from, "to", s.State)
	return nil
}
