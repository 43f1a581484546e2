package model

import "fmt"

// CompletionState summarises how far a participant got through the form.
type CompletionState int

const (
	NotStarted CompletionState = iota
	InProgress
	Completed
)

// RequiredSteps must all be answered for the form to count as completed.
var RequiredSteps = []StepName{StepMeals, StepDrinks, StepActivities, StepBudget}

type CompletionStatus struct {
	State    CompletionState
	Done     int
	Required int
}

func (s CompletionStatus) String() string {
	switch s.State {
	case Completed:
		return "Terminé"
	case InProgress:
		return fmt.Sprintf("En cours (%d/%d)", s.Done, s.Required)
	default:
		return "Non commencé"
	}
}

// Completion derives the status of a stored record; nil means the
// participant never saved anything.
func Completion(p *UserPreferences) CompletionStatus {
	status := CompletionStatus{Required: len(RequiredSteps)}
	if p == nil {
		return status
	}
	for _, step := range RequiredSteps {
		if p.Answered(step) {
			status.Done++
		}
	}
	if status.Done == status.Required && p.CustomMessage != "" {
		status.State = Completed
		return status
	}
	status.State = InProgress
	return status
}
