package model

import (
	"bytes"
	"encoding/json"
	"slices"
)

const (
	keyCustomMessage = "customMessage"
	keyCustomOptions = "customOptions"
)

// Answer holds the option ids picked for one step. A scalar answer belongs
// to a single-select step and is stored as a plain string.
type Answer struct {
	IDs    []string
	Scalar bool
}

// MarshalJSON writes scalar answers as a string and the others as an array.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Scalar {
		v := ""
		if len(a.IDs) > 0 {
			v = a.IDs[0]
		}
		return json.Marshal(v)
	}
	ids := a.IDs
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Answer{Scalar: true}
		if s != "" {
			a.IDs = []string{s}
		}
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*a = Answer{IDs: ids}
	return nil
}

// UserPreferences is everything one participant answered, keyed by step.
type UserPreferences struct {
	Answers       map[StepName]Answer
	CustomMessage string
	CustomOptions map[StepName][]FormOption
}

// NewUserPreferences returns preferences with every built-in step present
// and empty.
func NewUserPreferences() UserPreferences {
	p := UserPreferences{Answers: make(map[StepName]Answer, len(BuiltinSteps))}
	for _, step := range BuiltinSteps {
		if step == StepBudget {
			p.Answers[step] = Answer{Scalar: true}
			continue
		}
		p.Answers[step] = Answer{IDs: []string{}}
	}
	return p
}

// MarshalJSON flattens answers next to customMessage and customOptions, the
// shape the users record has always been stored in.
func (p UserPreferences) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Answers)+len(BuiltinSteps)+2)
	for _, step := range BuiltinSteps {
		out[string(step)] = Answer{Scalar: step == StepBudget}
	}
	for step, a := range p.Answers {
		out[string(step)] = a
	}
	if p.CustomMessage != "" {
		out[keyCustomMessage] = p.CustomMessage
	}
	if len(p.CustomOptions) > 0 {
		out[keyCustomOptions] = p.CustomOptions
	}
	return json.Marshal(out)
}

// UnmarshalJSON skips values it cannot read instead of failing the record.
func (p *UserPreferences) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = NewUserPreferences()
	for key, value := range raw {
		switch key {
		case keyCustomMessage:
			var msg string
			if json.Unmarshal(value, &msg) == nil {
				p.CustomMessage = msg
			}
		case keyCustomOptions:
			var opts map[StepName][]FormOption
			if json.Unmarshal(value, &opts) == nil && len(opts) > 0 {
				p.CustomOptions = opts
			}
		default:
			var a Answer
			if json.Unmarshal(value, &a) != nil {
				continue
			}
			p.Answers[StepName(key)] = a
		}
	}
	return nil
}

// Selected returns the ids picked for step.
func (p *UserPreferences) Selected(step StepName) []string {
	return p.Answers[step].IDs
}

// Value returns the single id picked for step, or "".
func (p *UserPreferences) Value(step StepName) string {
	ids := p.Answers[step].IDs
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// Has reports whether id is selected for step.
func (p *UserPreferences) Has(step StepName, id string) bool {
	return slices.Contains(p.Answers[step].IDs, id)
}

// Answered reports whether step has at least one selection.
func (p *UserPreferences) Answered(step StepName) bool {
	return len(p.Answers[step].IDs) > 0
}

func (p *UserPreferences) ensure() {
	if p.Answers == nil {
		p.Answers = make(map[StepName]Answer)
	}
}

// Select picks id for step. Single-select steps get their value replaced,
// multi-select steps get id appended once.
func (p *UserPreferences) Select(step StepName, id string, multiple bool) {
	p.ensure()
	if !multiple {
		p.Answers[step] = Answer{IDs: []string{id}, Scalar: true}
		return
	}
	a := p.Answers[step]
	a.Scalar = false
	if !slices.Contains(a.IDs, id) {
		a.IDs = append(slices.Clone(a.IDs), id)
	}
	p.Answers[step] = a
}

// Toggle flips id for a multi-select step and sets it for a single-select one.
func (p *UserPreferences) Toggle(step StepName, id string, multiple bool) {
	if multiple && p.Has(step, id) {
		p.RemoveID(step, id)
		return
	}
	p.Select(step, id, multiple)
}

// RemoveID drops id from the answer of step. A scalar answer equal to id is
// cleared. It reports whether anything changed.
func (p *UserPreferences) RemoveID(step StepName, id string) bool {
	a, ok := p.Answers[step]
	if !ok || !slices.Contains(a.IDs, id) {
		return false
	}
	if a.Scalar {
		p.Answers[step] = Answer{Scalar: true}
		return true
	}
	a.IDs = slices.DeleteFunc(slices.Clone(a.IDs), func(v string) bool { return v == id })
	p.Answers[step] = a
	return true
}

// AddCustomOption records an option this participant contributed.
func (p *UserPreferences) AddCustomOption(step StepName, opt FormOption) {
	if p.CustomOptions == nil {
		p.CustomOptions = make(map[StepName][]FormOption)
	}
	p.CustomOptions[step] = append(slices.Clone(p.CustomOptions[step]), opt)
}

// RemoveCustomOption drops the contributed option id from step.
func (p *UserPreferences) RemoveCustomOption(step StepName, id string) bool {
	opts, ok := p.CustomOptions[step]
	if !ok {
		return false
	}
	kept := slices.DeleteFunc(slices.Clone(opts), func(o FormOption) bool { return o.ID == id })
	if len(kept) == len(opts) {
		return false
	}
	if len(kept) == 0 {
		delete(p.CustomOptions, step)
	} else {
		p.CustomOptions[step] = kept
	}
	if len(p.CustomOptions) == 0 {
		p.CustomOptions = nil
	}
	return true
}

// DropStep forgets the answer and the contributed options of step.
func (p *UserPreferences) DropStep(step StepName) bool {
	_, answered := p.Answers[step]
	_, contributed := p.CustomOptions[step]
	delete(p.Answers, step)
	delete(p.CustomOptions, step)
	if len(p.CustomOptions) == 0 {
		p.CustomOptions = nil
	}
	return answered || contributed
}

// Clone returns a deep copy.
func (p UserPreferences) Clone() UserPreferences {
	c := UserPreferences{
		Answers:       make(map[StepName]Answer, len(p.Answers)),
		CustomMessage: p.CustomMessage,
	}
	for step, a := range p.Answers {
		c.Answers[step] = Answer{IDs: slices.Clone(a.IDs), Scalar: a.Scalar}
	}
	if p.CustomOptions != nil {
		c.CustomOptions = make(map[StepName][]FormOption, len(p.CustomOptions))
		for step, opts := range p.CustomOptions {
			c.CustomOptions[step] = slices.Clone(opts)
		}
	}
	return c
}
