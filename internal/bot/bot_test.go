package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/content"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

func message(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42, FirstName: "Иван", LastName: "Петров", UserName: "ivan"},
		Chat: &tgbotapi.Chat{ID: 42},
		Text: text,
	}
}

func TestConvertCommand(t *testing.T) {
	msg := message("/start promo")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}

	upd, kind, ok := convertUpdate(tgbotapi.Update{Message: msg})
	require.True(t, ok)
	assert.Equal(t, "command", kind)
	assert.Equal(t, "start", upd.Command)
	assert.Equal(t, "promo", upd.Args)
	assert.Equal(t, int64(42), upd.ChatID)
	assert.Equal(t, "ivan", upd.From.Username)
}

func TestConvertContact(t *testing.T) {
	msg := message("")
	msg.Contact = &tgbotapi.Contact{PhoneNumber: "+70000000000", FirstName: "Иван", UserID: 42}

	upd, kind, ok := convertUpdate(tgbotapi.Update{Message: msg})
	require.True(t, ok)
	assert.Equal(t, "contact", kind)
	require.NotNil(t, upd.Contact)
	assert.Equal(t, "+70000000000", upd.Contact.PhoneNumber)
	assert.Empty(t, upd.Command)
}

func TestConvertText(t *testing.T) {
	upd, kind, ok := convertUpdate(tgbotapi.Update{Message: message(content.BtnStartSurvey)})
	require.True(t, ok)
	assert.Equal(t, "text", kind)
	assert.Equal(t, content.BtnStartSurvey, upd.Text)
	assert.Equal(t, "Иван Петров", upd.From.DisplayName())
}

func TestConvertIgnoresOtherUpdates(t *testing.T) {
	_, kind, ok := convertUpdate(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{ID: "1"}})
	assert.False(t, ok)
	assert.Equal(t, "other", kind)

	_, _, ok = convertUpdate(tgbotapi.Update{Message: message("")})
	assert.False(t, ok)
}

func TestReplyMarkupContactButton(t *testing.T) {
	markup, ok := replyMarkup(content.ContactKeyboard()).(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.Keyboard, 2)
	assert.True(t, markup.Keyboard[0][0].RequestContact)
	assert.Equal(t, content.BtnShareContact, markup.Keyboard[0][0].Text)
	assert.False(t, markup.Keyboard[1][0].RequestContact)
	assert.True(t, markup.ResizeKeyboard)
}

func TestReplyMarkupRemove(t *testing.T) {
	markup, ok := replyMarkup(content.RemoveKeyboard()).(tgbotapi.ReplyKeyboardRemove)
	require.True(t, ok)
	assert.True(t, markup.RemoveKeyboard)
	assert.Nil(t, replyMarkup(nil))
}

func TestBuildTextMessage(t *testing.T) {
	c, err := buildChattable(models.Message{ChatID: 5, Text: "*hi*", Markdown: true, NoPreview: true})
	require.NoError(t, err)

	m, ok := c.(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ModeMarkdown, m.ParseMode)
	assert.True(t, m.DisableWebPagePreview)
	assert.Nil(t, m.ReplyMarkup)
}

func TestBuildMediaMessages(t *testing.T) {
	c, err := buildChattable(models.Message{
		ChatID: 5,
		Text:   "caption",
		Media:  &models.Media{Kind: models.MediaPhoto, Path: "media/a.jpg"},
	})
	require.NoError(t, err)
	p, ok := c.(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, "caption", p.Caption)
	assert.Equal(t, tgbotapi.FilePath("media/a.jpg"), p.File)

	c, err = buildChattable(models.Message{
		ChatID: 5,
		Media:  &models.Media{Kind: models.MediaDocument, Path: "media/b.pdf", FileID: "abc"},
	})
	require.NoError(t, err)
	d, ok := c.(tgbotapi.DocumentConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.FileID("abc"), d.File)

	_, err = buildChattable(models.Message{Media: &models.Media{Kind: "video"}})
	assert.Error(t, err)
}

func TestSentFileID(t *testing.T) {
	photo := tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}}
	assert.Equal(t, "large", sentFileID(photo))

	doc := tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc"}}
	assert.Equal(t, "doc", sentFileID(doc))

	assert.Empty(t, sentFileID(tgbotapi.Message{}))
}
