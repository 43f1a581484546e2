package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TripBot/model"
)

func TestDefaultQuestions(t *testing.T) {
	c := Default()
	qs := c.DefaultQuestions()

	require.Len(t, qs, len(model.BuiltinSteps))
	for i, q := range qs {
		assert.Equal(t, i, q.Order)
		assert.Equal(t, model.BuiltinSteps[i], q.StepName)
		assert.NotNil(t, q.Options)
	}
	assert.False(t, qs[5].AllowMultiple, "budget is single-select")

	// callers get their own copy
	qs[0].Title = "changed"
	assert.Equal(t, "Plats préférés", c.DefaultQuestions()[0].Title)
}

func TestOptionsFor(t *testing.T) {
	c := Default()
	assert.Len(t, c.OptionsFor(model.StepMeals), 6)
	assert.Nil(t, c.OptionsFor("custom-123"))
}

func TestParseOverride(t *testing.T) {
	data := []byte(`
tripDate: 2026-07-01T10:00:00Z
options:
  meals:
    - id: paella
      label: Paëlla
      emoji: "🥘"
roster:
  - name: Alice
    transport: Train
`)
	c, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC), c.TripDate.UTC())
	require.Len(t, c.OptionsFor(model.StepMeals), 1)
	assert.Equal(t, "paella", c.OptionsFor(model.StepMeals)[0].ID)
	assert.Len(t, c.OptionsFor(model.StepDrinks), 8, "untouched steps keep built-ins")
	assert.Equal(t, []string{"Alice"}, c.Names())
	assert.Len(t, c.Questions, 7)
}

func TestParseRejectsNamelessQuestion(t *testing.T) {
	_, err := Parse([]byte("questions:\n  - title: Sans nom\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roster:\n  - name: Bob\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	_, ok := c.Attendee("Bob")
	assert.True(t, ok)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCountdown(t *testing.T) {
	trip := time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"two days before", trip.Add(-(48*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second)), "J-2 03:04:05"},
		{"same instant", trip, "J-0 00:00:00"},
		{"after departure", trip.Add(time.Hour), "J-0 00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Countdown(tt.now, trip))
		})
	}
}
