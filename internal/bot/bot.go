package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/metrics"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

// Handler processes one converted update
type Handler interface {
	Handle(ctx context.Context, upd models.Update) error
}

type Bot struct {
	api        *tgbotapi.BotAPI
	queue      *dispatcher
	webhookURL string
}

type Config struct {
	Token string
	// WebhookURL switches from long polling to webhook delivery when set.
	// It is the full public URL Telegram should post updates to.
	WebhookURL string
}

func New(cfg Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	slog.Info("Authorized on account", "username", api.Self.UserName)

	return &Bot{
		api:        api,
		webhookURL: cfg.WebhookURL,
	}, nil
}

// SetHandler attaches the update handler. It must be called before Run.
func (b *Bot) SetHandler(h Handler) {
	b.queue = newDispatcher(h)
}

// Run receives updates until ctx is cancelled. Queued updates may still be
// running when it returns; call Wait after the HTTP server has stopped.
func (b *Bot) Run(ctx context.Context) error {
	if b.webhookURL != "" {
		return b.runWebhook(ctx)
	}

	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		slog.Warn("Failed to delete webhook before polling", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	slog.Info("Polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(context.WithoutCancel(ctx), update)
		}
	}
}

// Wait stops accepting updates and blocks until queued ones are handled
func (b *Bot) Wait() {
	if b.queue != nil {
		b.queue.close()
	}
}

func (b *Bot) runWebhook(ctx context.Context) error {
	wh, err := tgbotapi.NewWebhook(b.webhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}
	slog.Info("Webhook registered, waiting for updates")

	<-ctx.Done()
	return nil
}

// HandleWebhook accepts one update posted by Telegram
func (b *Bot) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		slog.Warn("Rejected webhook request", "error", err)
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}
	if !b.dispatch(context.WithoutCancel(r.Context()), *update) {
		// Telegram retries the delivery later
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// dispatch queues the update behind earlier updates of the same user.
// It reports false only when the update was dropped because of shutdown.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) bool {
	upd, kind, ok := convertUpdate(update)
	metrics.RecordUpdate(kind)
	if !ok {
		return true
	}
	if !b.queue.submit(job{ctx: ctx, upd: upd, kind: kind}) {
		slog.Warn("Dropped update during shutdown", "user_id", upd.From.ID, "kind", kind)
		return false
	}
	return true
}

// convertUpdate maps a private message to the transport-neutral update
func convertUpdate(update tgbotapi.Update) (models.Update, string, bool) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return models.Update{}, "other", false
	}

	upd := models.Update{
		ChatID: msg.Chat.ID,
		From: models.User{
			ID:        msg.From.ID,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
			Username:  msg.From.UserName,
		},
	}

	switch {
	case msg.IsCommand():
		upd.Command = msg.Command()
		upd.Args = strings.TrimSpace(msg.CommandArguments())
		return upd, "command", true
	case msg.Contact != nil:
		upd.Contact = &models.Contact{
			PhoneNumber: msg.Contact.PhoneNumber,
			FirstName:   msg.Contact.FirstName,
			LastName:    msg.Contact.LastName,
			UserID:      msg.Contact.UserID,
		}
		return upd, "contact", true
	case msg.Text != "":
		upd.Text = msg.Text
		return upd, "text", true
	}
	return models.Update{}, "other", false
}
