package service

import (
	"context"
	"encoding/json"
	"slices"
	"sort"

	"TripBot/model"
)

// SavePreferences stores prefs for user with a freshly generated
// customMessage and returns the stored record. prefs may have been read long
// before: it is checked against the current records so nothing removed in
// the meantime comes back. The user's contributed options are always taken
// from the stored record.
func (s *Service) SavePreferences(ctx context.Context, user string, prefs model.UserPreferences) model.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.store.ReadUsers(ctx)
	questions := s.store.ReadQuestions(ctx)

	p := prefs.Clone()
	p.CustomOptions = nil
	if stored, ok := users[user]; ok {
		p.CustomOptions = stored.Clone().CustomOptions
	}
	s.reconcile(&p, newSnapshot(s.catalog, questions, users))
	p.CustomMessage = s.messages.Generate(p)

	users[user] = p
	s.store.WriteUsers(ctx, users)

	s.log.Info().Str("user", user).Msg("preferences saved")
	return p
}

// reconcile drops answers to steps that no longer exist and ids no
// provider of sn knows.
func (s *Service) reconcile(p *model.UserPreferences, sn *Snapshot) {
	for step, a := range p.Answers {
		if !step.IsBuiltin() && model.FindQuestion(sn.questions, step) < 0 {
			p.DropStep(step)
			s.log.Debug().Str("step", step.String()).Msg("dropped answer to deleted question")
			continue
		}
		for _, id := range slices.Clone(a.IDs) {
			if _, ok := sn.Option(step, id); !ok {
				p.RemoveID(step, id)
				s.log.Debug().Str("step", step.String()).Str("option", id).Msg("dropped stale option")
			}
		}
	}
}

// GetPreferences returns the stored record of user.
func (s *Service) GetPreferences(ctx context.Context, user string) (model.UserPreferences, bool) {
	p, ok := s.store.ReadUsers(ctx)[user]
	return p, ok
}

// ResetUser forgets everything user answered. It reports whether there was
// anything to forget.
func (s *Service) ResetUser(ctx context.Context, user string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.store.ReadUsers(ctx)
	if _, ok := users[user]; !ok {
		return false
	}
	delete(users, user)
	s.store.WriteUsers(ctx, users)

	s.log.Info().Str("user", user).Msg("preferences reset")
	return true
}

// Users returns every stored record.
func (s *Service) Users(ctx context.Context) map[string]model.UserPreferences {
	return s.store.ReadUsers(ctx)
}

// ExportRaw returns the users record as JSON, "{}" when empty.
func (s *Service) ExportRaw(ctx context.Context) []byte {
	data, err := json.MarshalIndent(s.store.ReadUsers(ctx), "", "  ")
	if err != nil {
		s.log.Error().Err(err).Msg("error exporting users")
		return []byte("{}")
	}
	return data
}

// Status derives the completion status of user.
func (s *Service) Status(ctx context.Context, user string) model.CompletionStatus {
	p, ok := s.GetPreferences(ctx, user)
	if !ok {
		return model.Completion(nil)
	}
	return model.Completion(&p)
}

type UserStatus struct {
	Name   string
	Status model.CompletionStatus
}

// StatusReport lists the roster in order, then any other stored user by name.
func (s *Service) StatusReport(ctx context.Context) []UserStatus {
	users := s.store.ReadUsers(ctx)
	report := make([]UserStatus, 0, len(s.catalog.Roster)+len(users))
	listed := make(map[string]bool)
	add := func(name string) {
		listed[name] = true
		if p, ok := users[name]; ok {
			report = append(report, UserStatus{Name: name, Status: model.Completion(&p)})
			return
		}
		report = append(report, UserStatus{Name: name, Status: model.Completion(nil)})
	}

	for _, name := range s.catalog.Names() {
		add(name)
	}
	var others []string
	for name := range users {
		if !listed[name] {
			others = append(others, name)
		}
	}
	sort.Strings(others)
	for _, name := range others {
		add(name)
	}
	return report
}
