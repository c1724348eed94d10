// Package broadcast re-engages users who started the survey but never shared
// a contact. Each configured broadcast is attempted at most once per process.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/content"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/db"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/metrics"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

const (
	First  = "first"
	Second = "second"

	DefaultInterval = 60 * time.Second
	DefaultThrottle = 100 * time.Millisecond
)

type Store interface {
	UsersWithoutSurvey(ctx context.Context) ([]int64, error)
	GetBroadcastMedia(ctx context.Context, broadcastType string) (*models.BroadcastMedia, error)
	SaveBroadcastMedia(ctx context.Context, m models.BroadcastMedia) error
}

type Sender interface {
	Send(ctx context.Context, msg models.Message) (models.Sent, error)
}

// Broadcast is one timed bulk send
type Broadcast struct {
	Name    string
	Delay   time.Duration
	Kind    models.MediaKind
	Path    string
	Caption string
}

// DefaultBroadcasts returns the photo and the document broadcast stored in mediaDir
func DefaultBroadcasts(mediaDir string, firstDelay, secondDelay time.Duration) []Broadcast {
	return []Broadcast{
		{
			Name:    First,
			Delay:   firstDelay,
			Kind:    models.MediaPhoto,
			Path:    filepath.Join(mediaDir, "broadcast_first.jpg"),
			Caption: content.BroadcastFirstCaption,
		},
		{
			Name:    Second,
			Delay:   secondDelay,
			Kind:    models.MediaDocument,
			Path:    filepath.Join(mediaDir, "broadcast_second.pdf"),
			Caption: content.BroadcastSecondCaption,
		},
	}
}

type Scheduler struct {
	store      Store
	sender     Sender
	broadcasts []Broadcast
	sent       []atomic.Bool
	interval   time.Duration
	throttle   time.Duration
	now        func() time.Time
	started    time.Time
}

type Option func(*Scheduler)

func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// WithThrottle sets the pause between two recipients
func WithThrottle(d time.Duration) Option {
	return func(s *Scheduler) { s.throttle = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a scheduler. Delays are measured from this call.
func New(store Store, sender Sender, broadcasts []Broadcast, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:      store,
		sender:     sender,
		broadcasts: broadcasts,
		sent:       make([]atomic.Bool, len(broadcasts)),
		interval:   DefaultInterval,
		throttle:   DefaultThrottle,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.started = s.now()
	return s
}

// Run polls until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Broadcast scheduler started", "interval", s.interval, "broadcasts", len(s.broadcasts))
	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Broadcast scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick fires every broadcast whose delay has elapsed and that was not sent yet
func (s *Scheduler) Tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Broadcast tick panicked", "panic", r)
		}
	}()

	elapsed := s.now().Sub(s.started)
	for i := range s.broadcasts {
		b := s.broadcasts[i]
		if s.sent[i].Load() || elapsed < b.Delay {
			continue
		}
		if err := s.deliver(ctx, b); err != nil {
			// Nothing was sent, try again on the next tick.
			slog.Error("Broadcast postponed", "broadcast", b.Name, "error", err)
			continue
		}
		s.sent[i].Store(true)
	}
}

// Sent reports whether the named broadcast has been handled in this process
func (s *Scheduler) Sent(name string) bool {
	for i, b := range s.broadcasts {
		if b.Name == name {
			return s.sent[i].Load()
		}
	}
	return false
}

func (s *Scheduler) deliver(ctx context.Context, b Broadcast) error {
	log := slog.With("broadcast", b.Name, "run_id", uuid.NewString())

	users, err := s.store.UsersWithoutSurvey(ctx)
	if err != nil {
		return fmt.Errorf("list recipients: %w", err)
	}
	if len(users) == 0 {
		log.Info("No recipients for broadcast")
		return nil
	}

	fileID := s.cachedFileID(ctx, log, b.Name)
	if fileID == "" && !fileExists(b.Path) {
		log.Error("Broadcast media not found, skipping", "path", b.Path)
		metrics.RecordBroadcastSend(b.Name, "missing_media")
		return nil
	}

	log.Info("Sending broadcast", "recipients", len(users))
	var sent, failed int
	for i, userID := range users {
		if i > 0 && s.throttle > 0 {
			select {
			case <-ctx.Done():
				log.Warn("Broadcast interrupted", "sent", sent, "failed", failed)
				return nil
			case <-time.After(s.throttle):
			}
		}

		res, err := s.sender.Send(ctx, models.Message{
			ChatID:   userID,
			Text:     b.Caption,
			Markdown: true,
			Media:    &models.Media{Kind: b.Kind, Path: b.Path, FileID: fileID},
		})
		if err != nil {
			failed++
			metrics.RecordBroadcastSend(b.Name, "error")
			log.Warn("Failed to send broadcast", "user_id", userID, "error", err)
			continue
		}
		sent++
		metrics.RecordBroadcastSend(b.Name, "ok")

		if fileID == "" && res.FileID != "" {
			fileID = res.FileID
			err := s.store.SaveBroadcastMedia(ctx, models.BroadcastMedia{
				BroadcastType: b.Name,
				FileID:        fileID,
				Caption:       b.Caption,
				UpdatedAt:     s.now(),
			})
			if err != nil {
				log.Warn("Failed to cache broadcast media", "error", err)
			}
		}
	}

	log.Info("Broadcast finished", "sent", sent, "failed", failed)
	return nil
}

func (s *Scheduler) cachedFileID(ctx context.Context, log *slog.Logger, name string) string {
	m, err := s.store.GetBroadcastMedia(ctx, name)
	if errors.Is(err, db.ErrNotFound) {
		return ""
	}
	if err != nil {
		log.Warn("Failed to read broadcast media cache", "error", err)
		return ""
	}
	return m.FileID
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
