package model

import "strings"

// StepName identifies one question of the form. Built-in steps are listed
// below; organisers can add any number of custom ones at runtime.
type StepName string

const (
	StepMeals      StepName = "meals"
	StepAllergies  StepName = "allergies"
	StepBreakfast  StepName = "breakfast"
	StepDrinks     StepName = "drinks"
	StepActivities StepName = "activities"
	StepBudget     StepName = "budget"
	StepItems      StepName = "items"
)

// CustomStepPrefix starts the name of every organiser-created step.
const CustomStepPrefix = "custom-"

// BuiltinSteps in their default form order.
var BuiltinSteps = []StepName{
	StepMeals,
	StepAllergies,
	StepBreakfast,
	StepDrinks,
	StepActivities,
	StepBudget,
	StepItems,
}

// IsBuiltin reports whether step is one of the fixed steps.
func (s StepName) IsBuiltin() bool {
	for _, b := range BuiltinSteps {
		if s == b {
			return true
		}
	}
	return false
}

// IsCustom reports whether step was created by an organiser.
func (s StepName) IsCustom() bool {
	return strings.HasPrefix(string(s), CustomStepPrefix)
}

func (s StepName) String() string {
	return string(s)
}

// FormOption is one answer a participant can pick for a step.
type FormOption struct {
	ID      string `json:"id" yaml:"id"`
	Label   string `json:"label" yaml:"label"`
	Emoji   string `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	AddedBy string `json:"addedBy,omitempty" yaml:"addedBy,omitempty"`
}

// Display renders the option the way both bots show it.
func (o FormOption) Display() string {
	if o.Emoji == "" {
		return o.Label
	}
	return o.Emoji + " " + o.Label
}

// QuestionConfig is the organiser-editable configuration of one step.
// Options only holds admin-added options, never catalog ones.
type QuestionConfig struct {
	StepName      StepName     `json:"stepName" yaml:"stepName"`
	Title         string       `json:"title" yaml:"title"`
	Emoji         string       `json:"emoji" yaml:"emoji"`
	AllowMultiple bool         `json:"allowMultiple" yaml:"allowMultiple"`
	AllowCustom   bool         `json:"allowCustom" yaml:"allowCustom"`
	Order         int          `json:"order" yaml:"order"`
	Options       []FormOption `json:"options" yaml:"options"`
}

// Attendee is one member of the trip roster.
type Attendee struct {
	Name          string `json:"name" yaml:"name"`
	StartDate     string `json:"startDate" yaml:"startDate"`
	EndDate       string `json:"endDate" yaml:"endDate"`
	Transport     string `json:"transport" yaml:"transport"`
	TransportIcon string `json:"transportIcon" yaml:"transportIcon"`
}

// FindQuestion returns the index of step in questions, or -1.
func FindQuestion(questions []QuestionConfig, step StepName) int {
	for i := range questions {
		if questions[i].StepName == step {
			return i
		}
	}
	return -1
}
