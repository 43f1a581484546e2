package service

import (
	"context"
	"slices"
	"sort"
	"strings"

	"TripBot/catalog"
	"TripBot/model"
)

// Snapshot is a read-only view of one read of both records. Option listing
// and label lookup walk the same providers in the same order:
// catalog options, then admin options, then every user's custom options
// (users by name).
type Snapshot struct {
	catalog   *catalog.Catalog
	questions []model.QuestionConfig
	users     map[string]model.UserPreferences
	names     []string
}

func newSnapshot(cat *catalog.Catalog, questions []model.QuestionConfig, users map[string]model.UserPreferences) *Snapshot {
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Snapshot{catalog: cat, questions: questions, users: users, names: names}
}

// Snapshot reads both records once.
func (s *Service) Snapshot(ctx context.Context) *Snapshot {
	return newSnapshot(s.catalog, s.store.ReadQuestions(ctx), s.store.ReadUsers(ctx))
}

// Questions returns the configured questions in form order.
func (sn *Snapshot) Questions() []model.QuestionConfig {
	return sn.questions
}

// UserNames returns stored participants sorted by name.
func (sn *Snapshot) UserNames() []string {
	return sn.names
}

func (sn *Snapshot) User(name string) (model.UserPreferences, bool) {
	p, ok := sn.users[name]
	return p, ok
}

type optionProvider func(step model.StepName) []model.FormOption

func (sn *Snapshot) providers() []optionProvider {
	return []optionProvider{
		sn.catalog.OptionsFor,
		func(step model.StepName) []model.FormOption {
			if i := model.FindQuestion(sn.questions, step); i >= 0 {
				return sn.questions[i].Options
			}
			return nil
		},
		func(step model.StepName) []model.FormOption {
			var out []model.FormOption
			for _, name := range sn.names {
				p := sn.users[name]
				out = append(out, p.CustomOptions[step]...)
			}
			return out
		},
	}
}

// ListOptions merges every provider for step; the first option seen with a
// given id wins.
func (sn *Snapshot) ListOptions(step model.StepName) []model.FormOption {
	out := []model.FormOption{}
	seen := make(map[string]struct{})
	for _, provider := range sn.providers() {
		for _, opt := range provider(step) {
			if _, dup := seen[opt.ID]; dup {
				continue
			}
			seen[opt.ID] = struct{}{}
			out = append(out, opt)
		}
	}
	return out
}

// Option finds id among the options of step.
func (sn *Snapshot) Option(step model.StepName, id string) (model.FormOption, bool) {
	for _, provider := range sn.providers() {
		for _, opt := range provider(step) {
			if opt.ID == id {
				return opt, true
			}
		}
	}
	return model.FormOption{}, false
}

// ResolveLabel returns the label of id, or id itself when nothing knows it.
func (sn *Snapshot) ResolveLabel(step model.StepName, id string) string {
	if opt, ok := sn.Option(step, id); ok {
		return opt.Label
	}
	return id
}

// ResolveLabels maps ids to labels, keeping order.
func (sn *Snapshot) ResolveLabels(step model.StepName, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, sn.ResolveLabel(step, id))
	}
	return out
}

func (s *Service) ListOptions(ctx context.Context, step model.StepName) []model.FormOption {
	return s.Snapshot(ctx).ListOptions(step)
}

func (s *Service) ResolveLabel(ctx context.Context, step model.StepName, id string) string {
	return s.Snapshot(ctx).ResolveLabel(step, id)
}

// AddCustomOption stores an option contributed by user on step and selects
// it in the same write.
func (s *Service) AddCustomOption(ctx context.Context, user string, step model.StepName, label string) (model.FormOption, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.FormOption{}, model.ErrEmptyLabel
	}
	opt := model.FormOption{
		ID:      s.optionID("custom", slug(user), string(step)),
		Label:   label,
		Emoji:   customOptionEmoji,
		AddedBy: user,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	multiple := allowsMultiple(s.store.ReadQuestions(ctx), step)
	users := s.store.ReadUsers(ctx)
	p, ok := users[user]
	if !ok {
		p = model.NewUserPreferences()
	}
	p.AddCustomOption(step, opt)
	p.Select(step, opt.ID, multiple)
	p.CustomMessage = s.messages.Generate(p)
	users[user] = p
	s.store.WriteUsers(ctx, users)

	s.log.Info().Str("user", user).Str("step", step.String()).Str("option", opt.ID).Msg("custom option added")
	return opt, nil
}

// AddAdminOption appends an organiser option to the configuration of step.
func (s *Service) AddAdminOption(ctx context.Context, step model.StepName, label string) (model.FormOption, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.FormOption{}, model.ErrEmptyLabel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	questions := s.store.ReadQuestions(ctx)
	i := model.FindQuestion(questions, step)
	if i < 0 {
		return model.FormOption{}, model.ErrStepNotFound
	}
	opt := model.FormOption{
		ID:      s.optionID("admin", string(step)),
		Label:   label,
		Emoji:   adminOptionEmoji,
		AddedBy: AdminName,
	}
	questions[i].Options = append(slices.Clone(questions[i].Options), opt)
	s.store.WriteQuestions(ctx, questions)

	s.log.Info().Str("step", step.String()).Str("option", opt.ID).Msg("admin option added")
	return opt, nil
}

// RemoveOption deletes id from step everywhere it can be referenced: the
// step's admin options, every user's answer and every user's custom options.
func (s *Service) RemoveOption(ctx context.Context, step model.StepName, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := s.store.ReadQuestions(ctx)
	if i := model.FindQuestion(questions, step); i >= 0 {
		kept := slices.DeleteFunc(slices.Clone(questions[i].Options), func(o model.FormOption) bool {
			return o.ID == id
		})
		if len(kept) != len(questions[i].Options) {
			questions[i].Options = kept
			s.store.WriteQuestions(ctx, questions)
		}
	}

	users := s.store.ReadUsers(ctx)
	touched := 0
	for name, p := range users {
		answered := p.RemoveID(step, id)
		contributed := p.RemoveCustomOption(step, id)
		if !answered && !contributed {
			continue
		}
		p.CustomMessage = s.messages.Generate(p)
		users[name] = p
		touched++
	}
	if touched > 0 {
		s.store.WriteUsers(ctx, users)
	}

	s.log.Info().Str("step", step.String()).Str("option", id).Int("users", touched).Msg("option removed")
}
