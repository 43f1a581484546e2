package model

const (
	//Participant Bot
	StateIdle = iota
	StateSelectingUser
	StateAnsweringStep
	StateReviewingSummary

	//Organiser Bot
	StateAddingQuestionTitle
	StateAddingOptionLabel
)

type UserState struct {
	State       int
	UserName    string          // attendee the participant answers for
	Draft       UserPreferences // answers not saved yet
	Steps       []QuestionConfig
	StepIndex   int
	OptionIDs   []string // options shown on the current step, by button index
	PendingStep StepName // organiser: step waiting for an option label
}

// CurrentStep returns the question being answered, if any.
func (s *UserState) CurrentStep() (QuestionConfig, bool) {
	if s.StepIndex < 0 || s.StepIndex >= len(s.Steps) {
		return QuestionConfig{}, false
	}
	return s.Steps[s.StepIndex], true
}

// Reset sends the conversation back to idle.
func (s *UserState) Reset() {
	*s = UserState{State: StateIdle}
}
