package service

import (
	"context"
	"fmt"
	"strings"

	"TripBot/model"
)

// Questions returns the configured questions in form order.
func (s *Service) Questions(ctx context.Context) []model.QuestionConfig {
	return s.store.ReadQuestions(ctx)
}

// Question returns the configuration of step.
func (s *Service) Question(ctx context.Context, step model.StepName) (model.QuestionConfig, bool) {
	questions := s.store.ReadQuestions(ctx)
	if i := model.FindQuestion(questions, step); i >= 0 {
		return questions[i], true
	}
	return model.QuestionConfig{}, false
}

// AddQuestion appends a new multi-select question that accepts custom
// options.
func (s *Service) AddQuestion(ctx context.Context, title string) (model.QuestionConfig, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.QuestionConfig{}, model.ErrEmptyLabel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	questions := s.store.ReadQuestions(ctx)
	ms := s.now().UnixMilli()
	step := model.StepName(fmt.Sprintf("%s%d", model.CustomStepPrefix, ms))
	for model.FindQuestion(questions, step) >= 0 {
		ms++
		step = model.StepName(fmt.Sprintf("%s%d", model.CustomStepPrefix, ms))
	}
	q := model.QuestionConfig{
		StepName:      step,
		Title:         title,
		Emoji:         newQuestionEmoji,
		AllowMultiple: true,
		AllowCustom:   true,
		Order:         len(questions),
		Options:       []model.FormOption{},
	}
	s.store.WriteQuestions(ctx, append(questions, q))

	s.log.Info().Str("step", step.String()).Str("title", title).Msg("question added")
	return q, nil
}

// update applies fn to the question of step and writes the list back.
func (s *Service) update(ctx context.Context, step model.StepName, fn func(q *model.QuestionConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := s.store.ReadQuestions(ctx)
	i := model.FindQuestion(questions, step)
	if i < 0 {
		return model.ErrStepNotFound
	}
	fn(&questions[i])
	s.store.WriteQuestions(ctx, questions)
	return nil
}

func (s *Service) RenameQuestion(ctx context.Context, step model.StepName, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.ErrEmptyLabel
	}
	return s.update(ctx, step, func(q *model.QuestionConfig) { q.Title = title })
}

func (s *Service) SetQuestionFlags(ctx context.Context, step model.StepName, allowMultiple, allowCustom bool) error {
	return s.update(ctx, step, func(q *model.QuestionConfig) {
		q.AllowMultiple = allowMultiple
		q.AllowCustom = allowCustom
	})
}

// MoveQuestion swaps step with the question delta positions away. Moving
// past either end leaves the list untouched.
func (s *Service) MoveQuestion(ctx context.Context, step model.StepName, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := s.store.ReadQuestions(ctx)
	i := model.FindQuestion(questions, step)
	if i < 0 {
		return model.ErrStepNotFound
	}
	j := i + delta
	if j < 0 || j >= len(questions) {
		return nil
	}
	questions[i], questions[j] = questions[j], questions[i]
	for k := range questions {
		questions[k].Order = k
	}
	s.store.WriteQuestions(ctx, questions)
	return nil
}

// DeleteQuestion removes an organiser-created step together with every
// answer and custom option given for it.
func (s *Service) DeleteQuestion(ctx context.Context, step model.StepName) error {
	if step.IsBuiltin() {
		return model.ErrBuiltinStep
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	questions := s.store.ReadQuestions(ctx)
	i := model.FindQuestion(questions, step)
	if i < 0 {
		return model.ErrStepNotFound
	}
	questions = append(questions[:i], questions[i+1:]...)
	s.store.WriteQuestions(ctx, questions)

	users := s.store.ReadUsers(ctx)
	dirty := false
	for name, p := range users {
		if p.DropStep(step) {
			users[name] = p
			dirty = true
		}
	}
	if dirty {
		s.store.WriteUsers(ctx, users)
	}

	s.log.Info().Str("step", step.String()).Msg("question deleted")
	return nil
}
