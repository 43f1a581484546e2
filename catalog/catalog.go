// Package catalog holds the built-in option lists, the default question
// list and the trip roster.
package catalog

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"TripBot/model"
)

// Catalog is the static part of the form: nothing in it is ever written to
// the store.
type Catalog struct {
	TripDate  time.Time
	Options   map[model.StepName][]model.FormOption
	Questions []model.QuestionConfig
	Roster    []model.Attendee
}

// OptionsFor returns the built-in options of step, nil for custom steps.
func (c *Catalog) OptionsFor(step model.StepName) []model.FormOption {
	return c.Options[step]
}

// DefaultQuestions returns a fresh copy of the seed question list with order
// equal to the list index.
func (c *Catalog) DefaultQuestions() []model.QuestionConfig {
	out := make([]model.QuestionConfig, len(c.Questions))
	for i, q := range c.Questions {
		q.Order = i
		q.Options = slices.Clone(q.Options)
		if q.Options == nil {
			q.Options = []model.FormOption{}
		}
		out[i] = q
	}
	return out
}

// Names lists the roster in order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Roster))
	for _, a := range c.Roster {
		names = append(names, a.Name)
	}
	return names
}

// Attendee looks a roster member up by name.
func (c *Catalog) Attendee(name string) (model.Attendee, bool) {
	for _, a := range c.Roster {
		if a.Name == name {
			return a, true
		}
	}
	return model.Attendee{}, false
}

type file struct {
	TripDate  *time.Time                            `yaml:"tripDate"`
	Options   map[model.StepName][]model.FormOption `yaml:"options"`
	Questions []model.QuestionConfig                `yaml:"questions"`
	Roster    []model.Attendee                      `yaml:"roster"`
}

// Load reads a YAML override. Sections missing from the file keep their
// built-in values; option lists are replaced step by step.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse is Load without the file.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error parsing catalog: %w", err)
	}

	c := Default()
	if f.TripDate != nil {
		c.TripDate = *f.TripDate
	}
	for step, opts := range f.Options {
		c.Options[step] = opts
	}
	if len(f.Questions) > 0 {
		for i, q := range f.Questions {
			if q.StepName == "" {
				return nil, fmt.Errorf("catalog question %d has no stepName", i)
			}
		}
		c.Questions = f.Questions
	}
	if len(f.Roster) > 0 {
		c.Roster = f.Roster
	}
	return c, nil
}

// Countdown formats the time left before the trip as J-d hh:mm:ss.
func Countdown(now, trip time.Time) string {
	diff := trip.Sub(now)
	if diff < 0 {
		diff = 0
	}
	days := int(diff / (24 * time.Hour))
	diff -= time.Duration(days) * 24 * time.Hour
	hours := int(diff / time.Hour)
	diff -= time.Duration(hours) * time.Hour
	minutes := int(diff / time.Minute)
	diff -= time.Duration(minutes) * time.Minute
	seconds := int(diff / time.Second)
	return fmt.Sprintf("J-%d %02d:%02d:%02d", days, hours, minutes, seconds)
}
