package flow

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/content"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/metrics"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

// showMenu re-presents the menu matching the completion status
func (m *Machine) showMenu(t *turn) {
	if t.s.SurveyCompleted {
		m.send(t, models.Message{Text: content.MoreHelp, Keyboard: content.FinalKeyboard()})
		return
	}
	m.send(t, models.Message{Text: content.ReadyToBook, Keyboard: content.FinalChoiceKeyboard()})
}

func (m *Machine) handleMenu(t *turn) error {
	text := t.upd.Text
	switch text {
	case content.BtnBook:
		if err := fire(t.ctx, t.s, evBook); err != nil {
			return err
		}
		m.send(t, models.Message{Text: content.ContactPrompt, Markdown: true, Keyboard: content.ContactKeyboard()})
		return nil
	case content.BtnAskQuestion, content.BtnBackToCategories:
		m.send(t, models.Message{Text: content.FAQIntro, Markdown: true, Keyboard: content.FAQCategoriesKeyboard()})
		return nil
	case content.BtnPortfolio:
		m.send(t, models.Message{Text: content.Portfolio(m.cfg.PortfolioURL)})
		m.showMenu(t)
		return nil
	case content.BtnOwnQuestion:
		if err := fire(t.ctx, t.s, evAsk); err != nil {
			return err
		}
		t.s.WaitingForQuestion = true
		m.send(t, models.Message{Text: content.OwnQuestionPrompt, Markdown: true, Keyboard: content.RemoveKeyboard()})
		return nil
	case content.BtnBackToMenu:
		m.showMenu(t)
		return nil
	case content.BtnRestart:
		return m.restart(t, t.s.Source)
	case content.NotFit.Label:
		m.send(t, models.Message{Text: content.NotFit.Answer, Markdown: true, Keyboard: content.FAQCategoriesKeyboard()})
		return nil
	}

	if c, ok := content.FindCategory(text); ok {
		m.send(t, models.Message{
			Text:     c.Title + "\n\n" + content.FAQPickQuestion,
			Markdown: true,
			Keyboard: content.FAQQuestionsKeyboard(c),
		})
		return nil
	}
	if qa, c, ok := content.FindQuestion(text); ok {
		m.send(t, models.Message{Text: qa.Answer, Markdown: true, Keyboard: content.FAQQuestionsKeyboard(c)})
		return nil
	}

	m.showMenu(t)
	return nil
}

// handleQuestion runs when the session is in the question state without the
// waiting flag, which only happens if the flag was cleared elsewhere.
func (m *Machine) handleQuestion(t *turn) error {
	if err := fire(t.ctx, t.s, evAsked); err != nil {
		return err
	}
	return m.handleMenu(t)
}

// captureQuestion forwards the next text message to the operator
func (m *Machine) captureQuestion(t *turn) error {
	question := strings.TrimSpace(t.upd.Text)
	if question == "" {
		m.send(t, models.Message{Text: content.OwnQuestionPrompt, Markdown: true})
		return nil
	}
	t.s.WaitingForQuestion = false

	ref := uuid.NewString()[:8]
	metrics.RecordQuestion()
	if err := m.notifier.NotifyQuestion(t.ctx, ref, t.upd.From, question); err != nil {
		metrics.RecordNotificationFailure("question")
		slog.Error("Failed to forward question", "user_id", t.upd.From.ID, "ref", ref, "error", err)
	} else {
		slog.Info("Question forwarded", "user_id", t.upd.From.ID, "ref", ref)
	}

	m.send(t, models.Message{Text: content.QuestionReceived, Markdown: true})
	if err := fire(t.ctx, t.s, evAsked); err != nil {
		return err
	}
	m.showMenu(t)
	return nil
}
