// Package plan turns generated weekly exercise-plan text into structured
// day plans and enriches their exercises from an exercise catalog.
//
// The generated text only loosely follows a markdown convention ("## Day N"
// headings, bold exercise names, "Sets:"/"Reps:" labels). Every extraction
// rule degrades to a documented default instead of failing.
package plan

import (
	"fmt"
	"strings"
)

// Environment selects which generated plan and which catalog subset applies.
type Environment string

const (
	Home Environment = "home"
	Gym  Environment = "gym"
)

// Environments lists every supported environment in display order.
var Environments = []Environment{Home, Gym}

// ParseEnvironment validates an environment name (case-insensitive).
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case Home:
		return Home, nil
	case Gym:
		return Gym, nil
	}
	return "", fmt.Errorf("unknown environment %q (want home or gym)", s)
}

// Difficulty is the inferred difficulty of a single exercise.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Exercise is one exercise within a day plan.
type Exercise struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	MuscleGroups []string   `json:"muscle_groups"`
	Sets         int        `json:"sets"`
	Reps         string     `json:"reps"`
	FormTips     []string   `json:"form_tips"`
	Equipment    []string   `json:"equipment"`
	Difficulty   Difficulty `json:"difficulty"`
	ImageURL     string     `json:"image_url,omitempty"`
}

// DayPlan is the structured view of one day of a weekly plan.
type DayPlan struct {
	Day       string     `json:"day"`
	Title     string     `json:"title"`
	Focus     []string   `json:"focus"`
	Warmup    string     `json:"warmup"`
	Exercises []Exercise `json:"exercises"`
	Cooldown  string     `json:"cooldown"`
	Notes     *string    `json:"notes,omitempty"`
}

// IsRest reports whether any focus entry mentions "rest" (case-insensitive).
// Consumers skip warm-up, cool-down and exercises for rest days.
func (d DayPlan) IsRest() bool {
	for _, f := range d.Focus {
		if strings.Contains(strings.ToLower(f), "rest") {
			return true
		}
	}
	return false
}

// Defaults applied when a field cannot be found in the text.
const (
	DefaultTitle      = "Workout Day"
	DefaultWarmup     = "5-10 minutes of light cardio and dynamic stretching"
	DefaultCooldown   = "Static stretching for muscles worked, 5-10 minutes"
	DefaultSets       = 3
	DefaultReps       = "10-12"
	PlaceholderName   = "Exercise"
	DefaultDifficulty = Intermediate
)

var (
	restFocus     = []string{"Rest", "Recovery"}
	fullBodyFocus = []string{"Full Body"}
)
