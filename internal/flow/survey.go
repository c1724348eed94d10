package flow

import (
	"slices"
	"strconv"
	"strings"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/content"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/session"
)

// question describes one qualification step
type question struct {
	text    string
	options []string
	// accept validates and stores the answer. false keeps the user on the step.
	accept func(m *Machine, t *turn) bool
}

var questions = map[string]question{
	StateGeography:    {text: content.GeographyPrompt, accept: acceptGeography},
	StateObjectType:   {text: content.ObjectTypePrompt, options: content.ObjectTypes, accept: store(func(a *session.Answers) *string { return &a.ObjectType })},
	StateCondition:    {text: content.ConditionPrompt, options: content.Conditions, accept: store(func(a *session.Answers) *string { return &a.Condition })},
	StateMetrage:      {text: content.MetragePrompt, accept: acceptMetrage},
	StateRepairFormat: {text: content.RepairFormatPrompt, options: content.RepairFormats, accept: acceptRepairFormat},
	StateKeysReady:    {text: content.KeysPrompt, options: content.KeysOptions, accept: store(func(a *session.Answers) *string { return &a.KeysReady })},
	StateDeadline:     {text: content.DeadlinePrompt, options: content.Deadlines, accept: store(func(a *session.Answers) *string { return &a.Deadline })},
	StateMainFear:     {text: content.MainFearPrompt, options: content.MainFears, accept: store(func(a *session.Answers) *string { return &a.MainFear })},
	StateBudget:       {text: content.BudgetPrompt, options: content.Budgets, accept: store(func(a *session.Answers) *string { return &a.Budget })},
}

// Repair formats outside the full turnkey offer
var partialRepairMarkers = []string{"Частичный", "Переделка"}

// prompt asks the question of the given state
func (m *Machine) prompt(t *turn, state string) {
	q := questions[state]
	kb := content.OptionsKeyboard(q.options)
	if state == StateGeography {
		kb = content.GeographyKeyboard(m.cfg.Cities)
	}
	m.send(t, models.Message{Text: q.text, Markdown: true, Keyboard: kb})
}

func (m *Machine) handleAnswer(t *turn) error {
	if t.upd.Text == content.BtnRestart {
		return m.restart(t, t.s.Source)
	}
	if strings.TrimSpace(t.upd.Text) == "" {
		m.prompt(t, t.s.State)
		return nil
	}
	if !questions[t.s.State].accept(m, t) {
		return nil
	}

	if err := fire(t.ctx, t.s, evAnswer); err != nil {
		return err
	}
	if t.s.State == StateResult {
		m.send(t, models.Message{
			Text:     selectCloser(t.s.Answers.MainFear),
			Markdown: true,
			Keyboard: content.FinalChoiceKeyboard(),
		})
		return nil
	}
	m.prompt(t, t.s.State)
	return nil
}

// store accepts any answer verbatim into the selected field
func store(field func(*session.Answers) *string) func(*Machine, *turn) bool {
	return func(_ *Machine, t *turn) bool {
		*field(&t.s.Answers) = t.upd.Text
		return true
	}
}

func acceptGeography(m *Machine, t *turn) bool {
	if t.upd.Text == content.BtnOtherCity {
		m.send(t, models.Message{Text: content.OtherCityApology(m.cfg.Cities), Keyboard: content.GeographyKeyboard(m.cfg.Cities)})
		return false
	}
	city := content.CityFromButton(t.upd.Text)
	if !slices.Contains(m.cfg.Cities, city) {
		m.send(t, models.Message{Text: content.GeographyRejected(m.cfg.Cities), Keyboard: content.GeographyKeyboard(m.cfg.Cities)})
		return false
	}
	t.s.Answers.Geography = city
	return true
}

func acceptMetrage(m *Machine, t *turn) bool {
	n, err := strconv.Atoi(strings.TrimSpace(t.upd.Text))
	if err != nil || n < 0 {
		m.send(t, models.Message{Text: content.MetrageInvalid, Keyboard: content.OptionsKeyboard(nil)})
		return false
	}
	t.s.Answers.Metrage = &n
	if n < m.cfg.MinMetrage {
		m.send(t, models.Message{Text: content.SmallMetrage(m.cfg.MinMetrage), Markdown: true})
	}
	return true
}

func acceptRepairFormat(m *Machine, t *turn) bool {
	t.s.Answers.RepairFormat = t.upd.Text
	for _, marker := range partialRepairMarkers {
		if strings.Contains(t.upd.Text, marker) {
			m.send(t, models.Message{Text: content.PartialRepairAside, Markdown: true})
			break
		}
	}
	return true
}

type closerRule struct {
	keywords []string
	text     string
}

// closerRules are checked in order, the first rule with a matching keyword wins
var closerRules = []closerRule{
	{keywords: []string{"смета вырастет"}, text: content.CloserScopeCreep},
	{keywords: []string{"сроки"}, text: content.CloserScheduleSlip},
	{keywords: []string{"качество", "скрытые"}, text: content.CloserHiddenDefects},
	{keywords: []string{"Всё сразу", "всё сразу"}, text: content.CloserOverwhelmed},
}

func selectCloser(mainFear string) string {
	for _, rule := range closerRules {
		for _, kw := range rule.keywords {
			if strings.Contains(mainFear, kw) {
				return rule.text
			}
		}
	}
	return content.CloserDefault
}
