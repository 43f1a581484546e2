package message

import (
	"math/rand"
	"slices"

	"TripBot/model"
)

// Source picks an index in [0, n).
type Source interface {
	Intn(n int) int
}

// SourceFunc adapts a function to Source.
type SourceFunc func(n int) int

func (f SourceFunc) Intn(n int) int { return f(n) }

type Engine struct {
	rules []Rule
	pool  []string
	src   Source
}

type Option func(*Engine)

// WithSource pins the randomness used for the fallback pool.
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.src = src
		}
	}
}

func WithRules(rules []Rule) Option {
	return func(e *Engine) { e.rules = slices.Clone(rules) }
}

func WithPool(pool []string) Option {
	return func(e *Engine) {
		if len(pool) > 0 {
			e.pool = slices.Clone(pool)
		}
	}
}

// New returns an engine over DefaultRules and GenericMessages. The default
// source is math/rand's global one, which is safe for concurrent use.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules: DefaultRules,
		pool:  GenericMessages,
		src:   SourceFunc(rand.Intn),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Match returns the first rule that holds for p.
func (e *Engine) Match(p model.UserPreferences) (Rule, bool) {
	facts := FactsFrom(p)
	for _, r := range e.rules {
		if r.Match(facts) {
			return r, true
		}
	}
	return Rule{}, false
}

// Generate returns the message of the first matching rule, or a uniform
// pick from the generic pool.
func (e *Engine) Generate(p model.UserPreferences) string {
	if r, ok := e.Match(p); ok {
		return r.Message
	}
	return e.pool[e.src.Intn(len(e.pool))]
}
