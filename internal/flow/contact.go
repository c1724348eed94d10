package flow

import (
	"log/slog"
	"strings"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/content"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/metrics"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/session"
)

func (m *Machine) handleContact(t *turn) error {
	if t.upd.Contact != nil {
		return m.captureContact(t)
	}
	if t.upd.Text == content.BtnRestart {
		return m.restart(t, t.s.Source)
	}
	m.send(t, models.Message{Text: content.ContactRequired, Keyboard: content.ContactKeyboard()})
	return nil
}

// captureContact stores the lead, then notifies the operator and the CRM.
// Only the storage write can fail the turn.
func (m *Machine) captureContact(t *turn) error {
	userID := t.upd.From.ID
	startTime, err := m.store.GetStartTime(t.ctx, userID)
	if err != nil {
		return err
	}

	lead := buildLead(t.s, t.upd.From, *t.upd.Contact)
	lead.StartTime = startTime
	lead.CreatedAt = m.now()

	if err := m.store.UpsertLead(t.ctx, lead); err != nil {
		return err
	}
	t.s.SurveyCompleted = true
	metrics.RecordLeadCaptured()
	slog.Info("Lead captured", "user_id", userID, "source", lead.Source, "geography", lead.Geography)

	if err := fire(t.ctx, t.s, evCaptured); err != nil {
		return err
	}
	m.send(t, models.Message{Text: content.LeadAccepted, Markdown: true, Keyboard: content.FinalKeyboard()})

	if err := m.notifier.NotifyLead(t.ctx, lead); err != nil {
		metrics.RecordNotificationFailure("lead")
		slog.Error("Failed to notify operator about lead", "user_id", userID, "error", err)
	}
	if m.exporter != nil {
		if err := m.exporter.PublishLead(t.ctx, lead); err != nil {
			metrics.RecordNotificationFailure("crm")
			slog.Error("Failed to export lead", "user_id", userID, "error", err)
		}
	}

	m.showMenu(t)
	return nil
}

// buildLead composes the stored record, filling unanswered steps with
// placeholders so a direct booking yields a complete row.
func buildLead(s *session.Session, from models.User, contact models.Contact) models.Lead {
	a := s.Answers
	name := strings.TrimSpace(from.DisplayName())
	if name == "" {
		name = strings.TrimSpace(contact.FirstName + " " + contact.LastName)
	}

	metrage := 0
	if a.Metrage != nil {
		metrage = *a.Metrage
	}

	return models.Lead{
		UserID:            from.ID,
		Name:              name,
		Phone:             contact.PhoneNumber,
		Source:            s.Source,
		Geography:         orDefault(a.Geography, content.DirectGeography),
		ObjectType:        orDefault(a.ObjectType, content.NotSpecified),
		Condition:         orDefault(a.Condition, content.NotSpecifiedNeuter),
		Metrage:           metrage,
		RepairFormat:      orDefault(a.RepairFormat, content.NotSpecified),
		KeysReady:         orDefault(a.KeysReady, content.NotSpecifiedNeuter),
		Deadline:          orDefault(a.Deadline, content.NotSpecified),
		MainFear:          orDefault(a.MainFear, content.NotSpecified),
		Budget:            orDefault(a.Budget, content.NotSpecified),
		AppointmentTime:   content.AppointmentAwaiting,
		AppointmentStatus: models.AppointmentPending,
		SurveyCompleted:   true,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
