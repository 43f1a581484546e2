// Package service holds the form logic shared by both bots: option
// resolution, saving answers and editing the question list.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"TripBot/catalog"
	"TripBot/message"
	"TripBot/model"
)

// Store is the whole-record persistence the service needs. repo.Store
// implements it.
type Store interface {
	ReadUsers(ctx context.Context) map[string]model.UserPreferences
	WriteUsers(ctx context.Context, users map[string]model.UserPreferences)
	ReadQuestions(ctx context.Context) []model.QuestionConfig
	WriteQuestions(ctx context.Context, questions []model.QuestionConfig)
}

const (
	AdminName = "Admin"

	customOptionEmoji = "✨"
	adminOptionEmoji  = "⭐"
	newQuestionEmoji  = "❓"
)

// Service serializes every read-modify-write on the store behind one mutex;
// the store itself does no locking and two writers would lose updates.
type Service struct {
	mu       sync.Mutex
	store    Store
	catalog  *catalog.Catalog
	messages *message.Engine
	log      zerolog.Logger
	now      func() time.Time
	randID   func() string
}

type Option func(*Service)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock replaces time.Now in generated ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRandomID replaces the random suffix of generated ids.
func WithRandomID(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.randID = fn
		}
	}
}

func New(store Store, cat *catalog.Catalog, messages *message.Engine, opts ...Option) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	if messages == nil {
		messages = message.New()
	}
	s := &Service{
		store:    store,
		catalog:  cat,
		messages: messages,
		log:      zerolog.Nop(),
		now:      time.Now,
		randID:   func() string { return uuid.NewString()[:8] },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the built-in data the service was created with.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Messages returns the engine used to compute customMessage.
func (s *Service) Messages() *message.Engine {
	return s.messages
}

func (s *Service) optionID(parts ...string) string {
	parts = append(parts, fmt.Sprint(s.now().UnixMilli()), s.randID())
	return strings.Join(parts, "-")
}

// slug keeps letters and digits of name, lowercased, everything else
// becomes a dash.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "anon"
	}
	return out
}

// allowsMultiple looks the step up in questions; unknown steps are
// multi-select except the budget.
func allowsMultiple(questions []model.QuestionConfig, step model.StepName) bool {
	if i := model.FindQuestion(questions, step); i >= 0 {
		return questions[i].AllowMultiple
	}
	return step != model.StepBudget
}
