// Package flow implements the qualification dialogue: a per-user state machine
// that asks the survey questions, serves the FAQ menu and captures the lead.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/content"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/session"
)

type Sender interface {
	Send(ctx context.Context, msg models.Message) (models.Sent, error)
}

// LeadStore is the persistence the dialogue needs
type LeadStore interface {
	RecordStart(ctx context.Context, userID int64, source string, at time.Time) error
	GetStartTime(ctx context.Context, userID int64) (*time.Time, error)
	IsSurveyCompleted(ctx context.Context, userID int64) (bool, error)
	UpsertLead(ctx context.Context, lead models.Lead) error
}

type Notifier interface {
	NotifyLead(ctx context.Context, lead models.Lead) error
	NotifyQuestion(ctx context.Context, ref string, from models.User, question string) error
}

// LeadExporter receives every captured lead after it is stored
type LeadExporter interface {
	PublishLead(ctx context.Context, lead models.Lead) error
}

type Config struct {
	Cities       []string
	MinMetrage   int
	PortfolioURL string
	// WelcomePhoto is sent with the greeting when the file exists
	WelcomePhoto string
}

type Machine struct {
	cfg      Config
	sessions *session.Store
	store    LeadStore
	sender   Sender
	notifier Notifier
	exporter LeadExporter
	now      func() time.Time
	handlers map[string]func(*turn) error
}

type Option func(*Machine)

// WithExporter publishes captured leads in addition to notifying the operator
func WithExporter(e LeadExporter) Option {
	return func(m *Machine) { m.exporter = e }
}

func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

func New(cfg Config, sessions *session.Store, store LeadStore, sender Sender, notifier Notifier, opts ...Option) *Machine {
	m := &Machine{
		cfg:      cfg,
		sessions: sessions,
		store:    store,
		sender:   sender,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.handlers = map[string]func(*turn) error{
		StateIdle:     m.handleIdle,
		StateEntry:    m.handleEntry,
		StateResult:   m.handleMenu,
		StateContact:  m.handleContact,
		StateQuestion: m.handleQuestion,
	}
	for _, state := range qualification {
		m.handlers[state] = m.handleAnswer
	}
	return m
}

// turn is one update being processed under the user's session lock
type turn struct {
	ctx context.Context
	s   *session.Session
	upd models.Update
}

func (t *turn) chatID() int64 {
	if t.upd.ChatID != 0 {
		return t.upd.ChatID
	}
	return t.upd.From.ID
}

// Handle processes one incoming update. Updates of the same user are handled
// one at a time. Returned errors come from storage; message delivery failures
// are logged and do not stop the dialogue.
func (m *Machine) Handle(ctx context.Context, upd models.Update) error {
	return m.sessions.With(upd.From.ID, func(s *session.Session) error {
		if s.State == "" {
			s.State = StateIdle
		}
		t := &turn{ctx: ctx, s: s, upd: upd}

		switch {
		case upd.Command != "":
			return m.handleCommand(t)
		case s.WaitingForQuestion:
			return m.captureQuestion(t)
		}

		h, ok := m.handlers[s.State]
		if !ok {
			return fmt.Errorf("no handler for state %q", s.State)
		}
		return h(t)
	})
}

func (m *Machine) handleCommand(t *turn) error {
	switch t.upd.Command {
	case "start":
		source := ""
		if fields := strings.Fields(t.upd.Args); len(fields) > 0 {
			source = fields[0]
		}
		return m.restart(t, source)
	case "cancel":
		t.s.WaitingForQuestion = false
		m.send(t, models.Message{Text: content.CancelText, Keyboard: content.RemoveKeyboard()})
		if err := fire(t.ctx, t.s, evCancel); err != nil {
			return err
		}
		m.showMenu(t)
	case "help":
		m.send(t, models.Message{Text: content.HelpText})
	default:
		m.send(t, models.Message{Text: content.UnknownCommand})
	}
	return nil
}

// restart begins a new conversation and records the entry
func (m *Machine) restart(t *turn, source string) error {
	state := t.s.State
	t.s.Reset(source)
	t.s.State = state

	// sessions are lost on restart, the stored flag is not
	if !t.s.SurveyCompleted {
		done, err := m.store.IsSurveyCompleted(t.ctx, t.upd.From.ID)
		if err != nil {
			return err
		}
		t.s.SurveyCompleted = done
	}

	if err := m.store.RecordStart(t.ctx, t.upd.From.ID, t.s.Source, m.now()); err != nil {
		return err
	}
	if err := fire(t.ctx, t.s, evStart); err != nil {
		return err
	}
	slog.Info("Conversation started", "user_id", t.upd.From.ID, "source", t.s.Source)

	m.sendWelcome(t)
	return nil
}

func (m *Machine) sendWelcome(t *turn) {
	msg := models.Message{
		Text:     content.Welcome(t.upd.From.FirstName),
		Markdown: true,
		Keyboard: content.StartKeyboard(),
	}
	if m.cfg.WelcomePhoto != "" && fileExists(m.cfg.WelcomePhoto) {
		withPhoto := msg
		withPhoto.Media = &models.Media{Kind: models.MediaPhoto, Path: m.cfg.WelcomePhoto}
		_, err := m.sender.Send(t.ctx, withChat(t, withPhoto))
		if err == nil {
			return
		}
		slog.Warn("Failed to send welcome photo, falling back to text", "user_id", t.upd.From.ID, "error", err)
	}
	m.send(t, msg)
}

// handleIdle covers input from users who never sent /start
func (m *Machine) handleIdle(t *turn) error {
	if err := m.restart(t, ""); err != nil {
		return err
	}
	switch t.upd.Text {
	case content.BtnStartSurvey, content.BtnBookDirect:
		return m.handleEntry(t)
	}
	return nil
}

func (m *Machine) handleEntry(t *turn) error {
	switch t.upd.Text {
	case content.BtnStartSurvey:
		if err := fire(t.ctx, t.s, evBegin); err != nil {
			return err
		}
		m.prompt(t, t.s.State)
	case content.BtnBookDirect:
		if err := fire(t.ctx, t.s, evBook); err != nil {
			return err
		}
		m.send(t, models.Message{Text: content.ContactPromptDirect, Markdown: true, Keyboard: content.ContactKeyboard()})
	case content.BtnRestart:
		return m.restart(t, t.s.Source)
	default:
		m.send(t, models.Message{Text: content.ChooseOption, Keyboard: content.StartKeyboard()})
	}
	return nil
}

func withChat(t *turn, msg models.Message) models.Message {
	msg.ChatID = t.chatID()
	return msg
}

// send delivers a message to the user of the turn. Failures are logged only.
func (m *Machine) send(t *turn, msg models.Message) {
	if _, err := m.sender.Send(t.ctx, withChat(t, msg)); err != nil {
		slog.Error("Failed to send message", "chat_id", t.chatID(), "state", t.s.State, "error", err)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
