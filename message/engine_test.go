package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TripBot/model"
)

type answers struct {
	meals, drinks, activities, allergies []string
	budget                               string
}

func prefs(a answers) model.UserPreferences {
	p := model.NewUserPreferences()
	for _, id := range a.meals {
		p.Select(model.StepMeals, id, true)
	}
	for _, id := range a.drinks {
		p.Select(model.StepDrinks, id, true)
	}
	for _, id := range a.activities {
		p.Select(model.StepActivities, id, true)
	}
	for _, id := range a.allergies {
		p.Select(model.StepAllergies, id, true)
	}
	if a.budget != "" {
		p.Select(model.StepBudget, a.budget, false)
	}
	return p
}

func ruleMessage(t *testing.T, name string) string {
	t.Helper()
	for _, r := range DefaultRules {
		if r.Name == name {
			return r.Message
		}
	}
	t.Fatalf("no rule %q", name)
	return ""
}

func TestGenerateRules(t *testing.T) {
	five := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name string
		in   answers
		rule string
	}{
		{"splurge with raclette", answers{budget: "splurge", meals: []string{"raclette"}}, "splurge-raclette"},
		{"splurge raclette beats spare liver", answers{budget: "splurge", meals: []string{"raclette"}, drinks: []string{"rose", "jagermeister"}}, "splurge-raclette"},
		{"tight without chill", answers{budget: "tight", activities: []string{"hike"}}, "tight-no-chill"},
		{"tight with boat but no chill", answers{budget: "tight", activities: []string{"boat"}}, "tight-no-chill"},
		{"cool vacation", answers{activities: []string{"chill", "beach"}, meals: []string{"bbq"}, drinks: []string{"beer"}}, "cool-vacation"},
		{"over-booked", answers{meals: five, drinks: five, activities: five, budget: "moderate"}, "over-booked"},
		{"nothing picked", answers{}, "nothing-picked"},
		{"spare liver", answers{meals: []string{"raclette"}, drinks: []string{"rose", "jagermeister"}, budget: "moderate"}, "spare-liver"},
		{"many allergies", answers{allergies: []string{"gluten", "lactose", "nuts", "seafood"}, meals: []string{"salad"}}, "many-allergies"},
		{"none does not count as an allergy", answers{allergies: []string{"gluten", "lactose", "nuts", "none"}, meals: []string{"salad"}, activities: []string{"chill"}}, "chill-only"},
		{"boat on a tight budget with chill", answers{budget: "tight", activities: []string{"chill", "boat"}}, "boat-tight"},
		{"chill only", answers{activities: []string{"chill"}, budget: "moderate"}, "chill-only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fallback := false
			engine := New(WithSource(SourceFunc(func(int) int {
				fallback = true
				return 0
			})))
			assert.Equal(t, ruleMessage(t, tt.rule), engine.Generate(prefs(tt.in)))
			assert.False(t, fallback, "generic pool used")
		})
	}
}

func TestGenerateFallbackUsesSource(t *testing.T) {
	var gotN int
	engine := New(WithSource(SourceFunc(func(n int) int {
		gotN = n
		return 2
	})))

	msg := engine.Generate(prefs(answers{meals: []string{"pizza"}, budget: "moderate"}))

	assert.Equal(t, GenericMessages[2], msg)
	assert.Equal(t, len(GenericMessages), gotN)
}

func TestGenerateFallbackIsUniform(t *testing.T) {
	counts := make(map[string]int)
	i := 0
	engine := New(WithSource(SourceFunc(func(n int) int {
		i++
		return i % n
	})))
	p := prefs(answers{drinks: []string{"water"}})
	for range 10 * len(GenericMessages) {
		counts[engine.Generate(p)]++
	}

	require.Len(t, counts, len(GenericMessages))
	for _, c := range counts {
		assert.Equal(t, 10, c)
	}
}

func TestGenerateIsPure(t *testing.T) {
	engine := New()
	p := prefs(answers{budget: "splurge", meals: []string{"raclette"}})
	assert.Equal(t, engine.Generate(p), engine.Generate(p))
}

func TestCustomRulesAndPool(t *testing.T) {
	engine := New(
		WithRules([]Rule{{Name: "always", Match: func(Facts) bool { return false }, Message: "never"}}),
		WithPool([]string{"only"}),
	)
	assert.Equal(t, "only", engine.Generate(prefs(answers{})))

	_, ok := engine.Match(prefs(answers{}))
	assert.False(t, ok)
}
