// Package notify delivers new-lead and new-question notices to the operator chat.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/content"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

type Sender interface {
	Send(ctx context.Context, msg models.Message) (models.Sent, error)
}

// Operator sends notifications to a single configured chat
type Operator struct {
	sender Sender
	chatID int64
	now    func() time.Time
}

func NewOperator(sender Sender, chatID int64) *Operator {
	return &Operator{sender: sender, chatID: chatID, now: time.Now}
}

// NotifyLead sends the full lead summary
func (o *Operator) NotifyLead(ctx context.Context, lead models.Lead) error {
	_, err := o.sender.Send(ctx, models.Message{
		ChatID: o.chatID,
		Text:   content.FormatLead(lead, o.now()),
	})
	if err != nil {
		return fmt.Errorf("notify operator about lead %d: %w", lead.UserID, err)
	}
	return nil
}

// NotifyQuestion forwards a user's free-text question
func (o *Operator) NotifyQuestion(ctx context.Context, ref string, from models.User, question string) error {
	_, err := o.sender.Send(ctx, models.Message{
		ChatID: o.chatID,
		Text:   content.FormatQuestion(ref, from, question),
	})
	if err != nil {
		return fmt.Errorf("notify operator about question from %d: %w", from.ID, err)
	}
	return nil
}
