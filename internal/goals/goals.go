// Package goals holds the progress arithmetic and validation for user goals.
package goals

import (
	"fmt"
	"strings"

	"github.com/claude/healthtrack/internal/models"
)

// Categories lists the accepted goal categories.
var Categories = []string{"weight", "exercise", "nutrition", "sleep", "other"}

// Progress returns current/target as a percentage clamped to [0, 100].
// Without both values, or with a zero target, progress is 0.
func Progress(current, target *float64) float64 {
	if current == nil || target == nil || *target == 0 {
		return 0
	}
	p := *current / *target * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Validate normalizes g and checks the required fields. An empty category
// becomes "other".
func Validate(g *models.GoalRow) error {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return fmt.Errorf("title is required")
	}
	g.Category = strings.ToLower(strings.TrimSpace(g.Category))
	if g.Category == "" {
		g.Category = "other"
	}
	known := false
	for _, c := range Categories {
		if c == g.Category {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown category %q", g.Category)
	}
	return nil
}

// Recompute sets the stored progress from the goal's values. Completed goals
// stay at 100.
func Recompute(g *models.GoalRow) {
	if g.Completed {
		g.Progress = 100
		return
	}
	g.Progress = Progress(g.CurrentValue, g.TargetValue)
}

// Toggle flips the completion flag. Completing sets progress to 100;
// reopening keeps the stored progress.
func Toggle(g *models.GoalRow) {
	g.Completed = !g.Completed
	if g.Completed {
		g.Progress = 100
	}
}
