package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPreferencesJSONShape(t *testing.T) {
	p := NewUserPreferences()
	p.Select(StepMeals, "bbq", true)
	p.Select(StepBudget, "tight", false)
	p.Select("custom-1", "admin-custom-1-1", true)
	p.CustomMessage = "hello"
	p.AddCustomOption(StepMeals, FormOption{ID: "custom-x", Label: "Tajine", Emoji: "✨", AddedBy: "Jade"})

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{"bbq"}, raw["meals"])
	assert.Equal(t, []any{}, raw["drinks"])
	assert.Equal(t, "tight", raw["budget"])
	assert.Equal(t, []any{"admin-custom-1-1"}, raw["custom-1"])
	assert.Equal(t, "hello", raw["customMessage"])
	assert.Contains(t, raw, "customOptions")
}

func TestUserPreferencesOmitsEmptyExtras(t *testing.T) {
	data, err := json.Marshal(NewUserPreferences())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "customMessage")
	assert.NotContains(t, raw, "customOptions")
	assert.Equal(t, "", raw["budget"])
	assert.Len(t, raw, len(BuiltinSteps))
}

func TestUserPreferencesUnmarshalIsLenient(t *testing.T) {
	input := `{"meals":["pizza"],"budget":"splurge","custom-9":{"weird":true},"customMessage":42}`

	var p UserPreferences
	require.NoError(t, json.Unmarshal([]byte(input), &p))

	assert.Equal(t, []string{"pizza"}, p.Selected(StepMeals))
	assert.Equal(t, "splurge", p.Value(StepBudget))
	assert.NotContains(t, p.Answers, StepName("custom-9"))
	assert.Empty(t, p.CustomMessage)
	assert.Contains(t, p.Answers, StepItems, "missing built-ins are filled in")
}

func TestToggle(t *testing.T) {
	p := NewUserPreferences()

	p.Toggle(StepDrinks, "beer", true)
	p.Toggle(StepDrinks, "wine", true)
	p.Toggle(StepDrinks, "beer", true)
	assert.Equal(t, []string{"wine"}, p.Selected(StepDrinks))

	p.Toggle(StepBudget, "tight", false)
	p.Toggle(StepBudget, "splurge", false)
	assert.Equal(t, "splurge", p.Value(StepBudget))
	assert.True(t, p.Answers[StepBudget].Scalar)
}

func TestRemoveID(t *testing.T) {
	p := NewUserPreferences()
	p.Select(StepBudget, "tight", false)
	p.Select(StepItems, "hat", true)
	p.Select(StepItems, "towel", true)

	assert.True(t, p.RemoveID(StepBudget, "tight"))
	assert.Equal(t, "", p.Value(StepBudget))
	assert.True(t, p.Answers[StepBudget].Scalar)

	assert.True(t, p.RemoveID(StepItems, "hat"))
	assert.Equal(t, []string{"towel"}, p.Selected(StepItems))
	assert.False(t, p.RemoveID(StepItems, "hat"))
}

func TestCustomOptions(t *testing.T) {
	p := NewUserPreferences()
	p.AddCustomOption(StepMeals, FormOption{ID: "a"})
	p.AddCustomOption(StepMeals, FormOption{ID: "b"})

	assert.True(t, p.RemoveCustomOption(StepMeals, "a"))
	assert.Len(t, p.CustomOptions[StepMeals], 1)
	assert.False(t, p.RemoveCustomOption(StepMeals, "a"))
	assert.True(t, p.RemoveCustomOption(StepMeals, "b"))
	assert.Nil(t, p.CustomOptions)
}

func TestCloneIsDeep(t *testing.T) {
	p := NewUserPreferences()
	p.Select(StepMeals, "bbq", true)
	p.AddCustomOption(StepMeals, FormOption{ID: "x"})

	c := p.Clone()
	c.Select(StepMeals, "pizza", true)
	c.AddCustomOption(StepMeals, FormOption{ID: "y"})

	assert.Equal(t, []string{"bbq"}, p.Selected(StepMeals))
	assert.Len(t, p.CustomOptions[StepMeals], 1)
}

func TestCompletion(t *testing.T) {
	full := NewUserPreferences()
	full.Select(StepMeals, "bbq", true)
	full.Select(StepDrinks, "beer", true)
	full.Select(StepActivities, "chill", true)
	full.Select(StepBudget, "moderate", false)

	withMessage := full.Clone()
	withMessage.CustomMessage = "ok"

	partial := NewUserPreferences()
	partial.Select(StepMeals, "bbq", true)
	empty := NewUserPreferences()

	tests := []struct {
		name string
		in   *UserPreferences
		want string
	}{
		{"no record", nil, "Non commencé"},
		{"empty record", &empty, "En cours (0/4)"},
		{"partial", &partial, "En cours (1/4)"},
		{"all steps but no message", &full, "En cours (4/4)"},
		{"completed", &withMessage, "Terminé"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Completion(tt.in).String())
		})
	}
}

func TestStepName(t *testing.T) {
	assert.True(t, StepBudget.IsBuiltin())
	assert.False(t, StepName("custom-1").IsBuiltin())
	assert.True(t, StepName("custom-1").IsCustom())
	assert.Equal(t, 2, FindQuestion([]QuestionConfig{{StepName: "a"}, {StepName: "b"}, {StepName: "c"}}, "c"))
	assert.Equal(t, -1, FindQuestion(nil, "c"))
}
