package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

// Send delivers a message. For media messages the returned FileID can be
// reused for later sends of the same asset.
func (b *Bot) Send(ctx context.Context, msg models.Message) (models.Sent, error) {
	c, err := buildChattable(msg)
	if err != nil {
		return models.Sent{}, err
	}
	sent, err := b.api.Send(c)
	if err != nil {
		return models.Sent{}, fmt.Errorf("send to chat %d: %w", msg.ChatID, err)
	}
	return models.Sent{MessageID: sent.MessageID, FileID: sentFileID(sent)}, nil
}

func buildChattable(msg models.Message) (tgbotapi.Chattable, error) {
	parseMode := ""
	if msg.Markdown {
		parseMode = tgbotapi.ModeMarkdown
	}
	markup := replyMarkup(msg.Keyboard)

	if msg.Media == nil {
		m := tgbotapi.NewMessage(msg.ChatID, msg.Text)
		m.ParseMode = parseMode
		m.DisableWebPagePreview = msg.NoPreview
		if markup != nil {
			m.ReplyMarkup = markup
		}
		return m, nil
	}

	file := mediaFile(*msg.Media)
	switch msg.Media.Kind {
	case models.MediaPhoto:
		p := tgbotapi.NewPhoto(msg.ChatID, file)
		p.Caption = msg.Text
		p.ParseMode = parseMode
		if markup != nil {
			p.ReplyMarkup = markup
		}
		return p, nil
	case models.MediaDocument:
		d := tgbotapi.NewDocument(msg.ChatID, file)
		d.Caption = msg.Text
		d.ParseMode = parseMode
		if markup != nil {
			d.ReplyMarkup = markup
		}
		return d, nil
	}
	return nil, fmt.Errorf("unsupported media kind %q", msg.Media.Kind)
}

// mediaFile prefers an already uploaded file id over the local path
func mediaFile(m models.Media) tgbotapi.RequestFileData {
	if m.FileID != "" {
		return tgbotapi.FileID(m.FileID)
	}
	return tgbotapi.FilePath(m.Path)
}

func replyMarkup(kb *models.Keyboard) interface{} {
	if kb == nil {
		return nil
	}
	if kb.Remove {
		return tgbotapi.NewRemoveKeyboard(true)
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for _, r := range kb.Rows {
		row := make([]tgbotapi.KeyboardButton, 0, len(r))
		for _, btn := range r {
			if btn.RequestContact {
				row = append(row, tgbotapi.NewKeyboardButtonContact(btn.Text))
			} else {
				row = append(row, tgbotapi.NewKeyboardButton(btn.Text))
			}
		}
		rows = append(rows, row)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}

func sentFileID(m tgbotapi.Message) string {
	if n := len(m.Photo); n > 0 {
		return m.Photo[n-1].FileID
	}
	if m.Document != nil {
		return m.Document.FileID
	}
	return ""
}
