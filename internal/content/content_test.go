package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

func TestCityButtonRoundTrip(t *testing.T) {
	assert.Equal(t, "Аксай", CityFromButton(CityButton("Аксай")))
	assert.Equal(t, "Батайск", CityFromButton("Батайск"))
	assert.Equal(t, "Ростов-на-Дону", CityFromButton("🏙Ростов-на-Дону "))
}

func TestFAQLabelsAreUnique(t *testing.T) {
	seen := map[string]bool{
		BtnOwnQuestion:      true,
		BtnBackToCategories: true,
		BtnBackToMenu:       true,
		NotFit.Label:        true,
	}
	for _, c := range FAQ {
		require.False(t, seen[c.Label], "duplicate label %q", c.Label)
		seen[c.Label] = true
		for _, q := range c.Questions {
			require.False(t, seen[q.Label], "duplicate label %q", q.Label)
			seen[q.Label] = true
		}
	}
}

func TestFindQuestion(t *testing.T) {
	q, c, ok := FindQuestion("🚪 Замер платный?")
	require.True(t, ok)
	assert.Equal(t, "🚪 Начало ремонта", c.Label)
	assert.Contains(t, q.Answer, "бесплатный")

	_, _, ok = FindQuestion("🚪 Начало ремонта")
	assert.False(t, ok)

	_, ok = FindCategory("🧰 Материалы")
	assert.True(t, ok)
}

func TestFAQCategoriesKeyboardHasEveryCategory(t *testing.T) {
	kb := FAQCategoriesKeyboard()
	var labels []string
	for _, r := range kb.Rows {
		for _, b := range r {
			labels = append(labels, b.Text)
		}
	}
	for _, c := range FAQ {
		assert.Contains(t, labels, c.Label)
	}
	assert.Contains(t, labels, BtnOwnQuestion)
	assert.Contains(t, labels, NotFit.Label)
}

func TestContactKeyboardRequestsContact(t *testing.T) {
	kb := ContactKeyboard()
	require.NotEmpty(t, kb.Rows)
	assert.True(t, kb.Rows[0][0].RequestContact)
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "john\\_doe \\*x\\*", EscapeMarkdown("john_doe *x*"))
}

func TestFormatLead(t *testing.T) {
	lead := models.Lead{UserID: 99, Name: "Иван", Phone: "+70000000000", Metrage: 55, Source: "direct"}
	text := FormatLead(lead, time.Date(2026, 3, 1, 14, 5, 0, 0, time.UTC))

	assert.Contains(t, text, "Иван")
	assert.Contains(t, text, "+70000000000")
	assert.Contains(t, text, "55 м²")
	assert.Contains(t, text, "🆔 ID: 99")
	assert.Contains(t, text, "01.03.2026 14:05")
}

func TestFormatQuestion(t *testing.T) {
	text := FormatQuestion("ab12", models.User{ID: 5, FirstName: "Олег"}, "Сколько стоит?")
	assert.Contains(t, text, "#ab12")
	assert.Contains(t, text, "Username: нет")
	assert.Contains(t, text, "Сколько стоит?")

	text = FormatQuestion("ab12", models.User{ID: 5, FirstName: "Олег", LastName: "Ким", Username: "oleg"}, "?")
	assert.Contains(t, text, "Олег Ким")
	assert.Contains(t, text, "@oleg")
}
