// Package content holds every user-facing text and keyboard of the bot.
// Flow logic refers to labels by constant and never compares literal strings itself.
package content

import (
	"strings"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

// Button labels
const (
	BtnStartSurvey      = "✅ Начать тест"
	BtnBookDirect       = "📞 Сразу записаться на бесплатный замер"
	BtnRestart          = "🔄 Начать заново"
	BtnOtherCity        = "Другой город"
	BtnBook             = "✅ Записаться на бесплатный замер"
	BtnAskQuestion      = "❓У вас есть вопрос"
	BtnPortfolio        = "👀 Посмотреть примеры работ"
	BtnShareContact     = "📱 Отправить номер телефона"
	BtnOwnQuestion      = "❓ Задать свой вопрос"
	BtnBackToCategories = "🔙 Назад в категории"
	BtnBackToMenu       = "🔙 Назад в меню"

	cityPrefix = "🏙"
)

var (
	ObjectTypes = []string{
		"🏢 Новостройка",
		"🏠 Вторичное жильё",
		"🏡 Частный дом",
	}

	Conditions = []string{
		"🧱 Бетон (без отделки)",
		"🪚 Предчистовая отделка",
		"🏚 Старый ремонт",
	}

	RepairFormats = []string{
		"🔨 Полный ремонт под ключ",
		"🧩 Частичный ремонт",
		"♻️ Переделка после других мастеров",
	}

	KeysOptions = []string{
		"🔑 Да, ключи на руках",
		"⏳ Будут в течение 1–3 месяцев",
		"📅 Будут позже",
	}

	Deadlines = []string{
		"⚡ Как можно скорее",
		"📆 В течение 3–6 месяцев",
		"🗓 Через полгода и позже",
	}

	MainFears = []string{
		"💸 Что смета вырастет",
		"⏳ Что сорвут сроки",
		"🔍 Качество и скрытые дефекты",
		"🤯 Всё сразу",
		"🤷 Другое",
	}

	Budgets = []string{
		"💰 До 1 млн ₽",
		"💰 1–2 млн ₽",
		"💰 2–3 млн ₽",
		"💰 Более 3 млн ₽",
		"🤔 Пока не знаю",
	}
)

// CityButton is the geography keyboard label of a city
func CityButton(city string) string {
	return cityPrefix + " " + city
}

// CityFromButton strips the city marker from a geography answer
func CityFromButton(text string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), cityPrefix))
}

func row(labels ...string) []models.Button {
	buttons := make([]models.Button, len(labels))
	for i, l := range labels {
		buttons[i] = models.Button{Text: l}
	}
	return buttons
}

func StartKeyboard() *models.Keyboard {
	return &models.Keyboard{Rows: [][]models.Button{
		row(BtnStartSurvey),
		row(BtnBookDirect),
	}}
}

func GeographyKeyboard(cities []string) *models.Keyboard {
	kb := &models.Keyboard{}
	for _, c := range cities {
		kb.Rows = append(kb.Rows, row(CityButton(c)))
	}
	kb.Rows = append(kb.Rows, row(BtnOtherCity), row(BtnRestart))
	return kb
}

// OptionsKeyboard lays out one option per row with the restart button last
func OptionsKeyboard(options []string) *models.Keyboard {
	kb := &models.Keyboard{}
	for _, o := range options {
		kb.Rows = append(kb.Rows, row(o))
	}
	kb.Rows = append(kb.Rows, row(BtnRestart))
	return kb
}

func ContactKeyboard() *models.Keyboard {
	return &models.Keyboard{Rows: [][]models.Button{
		{{Text: BtnShareContact, RequestContact: true}},
		row(BtnRestart),
	}}
}

// FinalChoiceKeyboard is the menu shown before a contact was shared
func FinalChoiceKeyboard() *models.Keyboard {
	return &models.Keyboard{Rows: [][]models.Button{
		row(BtnBook),
		row(BtnAskQuestion),
		row(BtnPortfolio),
		row(BtnRestart),
	}}
}

// FinalKeyboard is the post-survey menu
func FinalKeyboard() *models.Keyboard {
	return &models.Keyboard{Rows: [][]models.Button{
		row(BtnAskQuestion),
		row(BtnPortfolio),
		row(BtnRestart),
	}}
}

func RemoveKeyboard() *models.Keyboard {
	return &models.Keyboard{Remove: true}
}

func FAQCategoriesKeyboard() *models.Keyboard {
	kb := &models.Keyboard{}
	for i := 0; i < len(FAQ); i += 2 {
		if i+1 < len(FAQ) {
			kb.Rows = append(kb.Rows, row(FAQ[i].Label, FAQ[i+1].Label))
		} else {
			kb.Rows = append(kb.Rows, row(FAQ[i].Label))
		}
	}
	kb.Rows = append(kb.Rows, row(NotFit.Label), row(BtnOwnQuestion), row(BtnBackToMenu))
	return kb
}

func FAQQuestionsKeyboard(c Category) *models.Keyboard {
	kb := &models.Keyboard{}
	for _, q := range c.Questions {
		kb.Rows = append(kb.Rows, row(q.Label))
	}
	kb.Rows = append(kb.Rows, row(BtnOwnQuestion), row(BtnBackToCategories, BtnBackToMenu))
	return kb
}
