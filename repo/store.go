package repo

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"TripBot/catalog"
	"TripBot/model"
)

const DefaultNamespace = "corsicaTrip"

// Store reads and writes the two whole records the form lives on. It never
// returns an error: failed reads yield the empty or default record and
// failed writes are logged and dropped.
type Store struct {
	backend   Backend
	namespace string
	defaults  func() []model.QuestionConfig
	log       zerolog.Logger
}

type StoreOption func(*Store)

// WithNamespace prefixes both record keys.
func WithNamespace(ns string) StoreOption {
	return func(s *Store) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// WithLogger sets the logger read and write failures go to.
func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// WithDefaultQuestions replaces the question list served while none is stored.
func WithDefaultQuestions(fn func() []model.QuestionConfig) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.defaults = fn
		}
	}
}

func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend:   backend,
		namespace: DefaultNamespace,
		defaults:  catalog.Default().DefaultQuestions,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) UsersKey() string     { return s.namespace + ".users" }
func (s *Store) QuestionsKey() string { return s.namespace + ".questions" }

func (s *Store) read(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error reading record")
		return nil, false
	}
	return data, true
}

func (s *Store) write(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error encoding record")
		return
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error writing record")
	}
}

// ReadUsers returns every stored participant, or an empty map.
func (s *Store) ReadUsers(ctx context.Context) map[string]model.UserPreferences {
	data, ok := s.read(ctx, s.UsersKey())
	if !ok {
		return make(map[string]model.UserPreferences)
	}
	var users map[string]model.UserPreferences
	if err := json.Unmarshal(data, &users); err != nil {
		s.log.Error().Err(err).Str("key", s.UsersKey()).Msg("error parsing users, using empty record")
		return make(map[string]model.UserPreferences)
	}
	if users == nil {
		users = make(map[string]model.UserPreferences)
	}
	return users
}

func (s *Store) WriteUsers(ctx context.Context, users map[string]model.UserPreferences) {
	if users == nil {
		users = make(map[string]model.UserPreferences)
	}
	s.write(ctx, s.UsersKey(), users)
}

// ReadQuestions returns the stored questions sorted by order, or the default
// list when nothing usable is stored. The default list is not written back.
func (s *Store) ReadQuestions(ctx context.Context) []model.QuestionConfig {
	data, ok := s.read(ctx, s.QuestionsKey())
	if !ok {
		return s.defaults()
	}
	var questions []model.QuestionConfig
	if err := json.Unmarshal(data, &questions); err != nil {
		s.log.Error().Err(err).Str("key", s.QuestionsKey()).Msg("error parsing questions, using defaults")
		return s.defaults()
	}
	if len(questions) == 0 {
		return s.defaults()
	}
	return Normalize(questions)
}

func (s *Store) WriteQuestions(ctx context.Context, questions []model.QuestionConfig) {
	s.write(ctx, s.QuestionsKey(), Normalize(questions))
}

// Normalize sorts questions by order, renumbers them 0..n-1 and replaces nil
// option lists with empty ones. It sorts in place.
func Normalize(questions []model.QuestionConfig) []model.QuestionConfig {
	if questions == nil {
		return []model.QuestionConfig{}
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	for i := range questions {
		questions[i].Order = i
		if questions[i].Options == nil {
			questions[i].Options = []model.FormOption{}
		}
	}
	return questions
}
