// Package generate asks a text-generation service for weekly exercise plans
// written in the markdown layout internal/plan parses.
package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
)

// Generator writes plan text for a request.
type Generator interface {
	GeneratePlan(ctx context.Context, req PlanRequest) (string, error)
}

// PlanRequest is the input to a plan generation.
type PlanRequest struct {
	Environment plan.Environment
	Health      models.HealthRecordRow
	Goals       []string
}

// Options selects and configures a provider.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

const (
	defaultGeminiModel = "gemini-2.0-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)

// New returns the generator for opts.Provider (gemini when empty).
func New(ctx context.Context, opts Options) (Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		model := opts.Model
		if model == "" {
			model = defaultGeminiModel
		}
		g, err := NewGemini(ctx, opts.APIKey, model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "openai":
		model := opts.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return NewOpenAI(opts.APIKey, model, opts.BaseURL, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", opts.Provider)
	}
}

// BuildPrompt renders the generation prompt for req.
func BuildPrompt(req PlanRequest) string {
	h := req.Health
	var b strings.Builder

	setting := "at home with minimal equipment (bodyweight, resistance bands, a chair, a mat)"
	if req.Environment == plan.Gym {
		setting = "in a fully equipped gym"
	}
	fmt.Fprintf(&b, "Create a 7-day exercise plan to be performed %s.\n\n", setting)

	b.WriteString("Profile:\n")
	fmt.Fprintf(&b, "- Age: %d\n", h.Age)
	if h.Gender != "" {
		fmt.Fprintf(&b, "- Gender: %s\n", h.Gender)
	}
	fmt.Fprintf(&b, "- Height: %.0f cm\n", h.HeightCM)
	fmt.Fprintf(&b, "- Weight: %.1f kg\n", h.WeightKG)
	if h.ActivityLevel != "" {
		fmt.Fprintf(&b, "- Activity level: %s\n", h.ActivityLevel)
	}
	if h.HeartRate != nil {
		fmt.Fprintf(&b, "- Resting heart rate: %d bpm\n", *h.HeartRate)
	}
	if h.BloodPressure != nil {
		fmt.Fprintf(&b, "- Blood pressure: %s\n", *h.BloodPressure)
	}
	if h.SleepHours != nil {
		fmt.Fprintf(&b, "- Sleep: %.1f hours per night\n", *h.SleepHours)
	}
	if h.StressLevel != nil {
		fmt.Fprintf(&b, "- Stress level: %d/10\n", *h.StressLevel)
	}
	if len(req.Goals) > 0 {
		fmt.Fprintf(&b, "- Goals: %s\n", strings.Join(req.Goals, "; "))
	} else {
		b.WriteString("- Goals: general fitness\n")
	}

	b.WriteString(`
Format every day exactly like this:

## Day 1: <title>
Focus: <muscle group>, <muscle group>
Warm-up: <warm-up routine>

**<Exercise name>** - <one sentence description>
Target: <muscle group>, <muscle group>
Sets: <number>
Reps: <number or range>
Equipment: <item>, <item>
Form tips:
- <tip>
- <tip>

Cool-down: <cool-down routine>
Notes: <optional notes>

Use "Rest" in the title of rest days. Use common muscle group names
(Chest, Back, Shoulders, Biceps, Triceps, Quadriceps, Hamstrings, Glutes,
Calves, Core). Do not add any text before Day 1 or after Day 7.
`)
	return b.String()
}

// cleanMarkdownOutput strips a surrounding code fence from model output.
func cleanMarkdownOutput(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```markdown") {
		text = strings.TrimPrefix(text, "```markdown")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
