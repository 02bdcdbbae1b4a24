package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/planner"
	"github.com/claude/healthtrack/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetLatestHealth = mcp.NewTool("get_latest_health",
	mcp.WithDescription("Get the most recent health record: height, weight, age, gender, activity level and optional vitals (blood pressure, heart rate, sleep hours, stress level)."),
)

var toolGetHealthHistory = mcp.NewTool("get_health_history",
	mcp.WithDescription("List health records in a time range, oldest first. Useful to follow weight or resting heart rate over time."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolListGoals = mcp.NewTool("list_goals",
	mcp.WithDescription("List goals with their category, target, current value and progress percentage."),
	mcp.WithString("status", mcp.Description("Filter by status. Defaults to 'all'."), mcp.Enum("all", "active", "completed")),
)

var toolGetExercisePlan = mcp.NewTool("get_exercise_plan",
	mcp.WithDescription("Get the saved weekly exercise plan for an environment, parsed into days with warm-up, exercises (sets, reps, muscle groups, difficulty) and cool-down."),
	mcp.WithString("environment", mcp.Required(), mcp.Description("Training environment"), mcp.Enum("home", "gym")),
	mcp.WithBoolean("enrich", mcp.Description("Fill exercise details from the catalog. Defaults to true for gym plans and false for home plans.")),
	mcp.WithString("day", mcp.Description("Only return this day (e.g. 'Day 1' or 'Monday'). Case-insensitive.")),
)

var toolListCatalogExercises = mcp.NewTool("list_catalog_exercises",
	mcp.WithDescription("List exercises from the catalog for an environment."),
	mcp.WithString("environment", mcp.Required(), mcp.Description("Training environment"), mcp.Enum("home", "gym")),
	mcp.WithString("muscle", mcp.Description("Only exercises that train this muscle group (e.g. 'Quadriceps'). Case-insensitive.")),
)

// --- Tool handlers ---

func (h *handlers) getLatestHealth(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := h.ds.LatestHealthRecord(ctx, UserIDFromContext(ctx))
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("no health record yet: record your health profile first"), nil
	}
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHealthHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	rows, err := h.ds.QueryHealthRecords(ctx, UserIDFromContext(ctx), start, end)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listGoals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.ListGoals(ctx, UserIDFromContext(ctx))
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(filterGoals(rows, req.GetString("status", "all")))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func filterGoals(rows []models.GoalRow, status string) []models.GoalRow {
	out := []models.GoalRow{}
	for _, g := range rows {
		switch {
		case status == "active" && g.Completed:
		case status == "completed" && !g.Completed:
		default:
			out = append(out, g)
		}
	}
	return out
}

// exercisePlan is the tool view of a saved plan.
type exercisePlan struct {
	Environment plan.Environment `json:"environment"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Enriched    bool             `json:"enriched"`
	Days        []plan.DayPlan   `json:"days"`
}

func (h *handlers) getExercisePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	envStr, err := req.RequireString("environment")
	if err != nil {
		return mcp.NewToolResultError("environment parameter is required"), nil
	}
	env, err := plan.ParseEnvironment(envStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	enrich := planner.EnrichByDefault(env)
	if v, ok := req.GetArguments()["enrich"].(bool); ok {
		enrich = v
	}

	saved, err := h.findPlan(ctx, env)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if saved == nil {
		return mcp.NewToolResultError("no " + string(env) + " plan saved yet"), nil
	}

	days := plan.Parse(saved.PlanText)
	if enrich {
		days = plan.Enrich(ctx, days, env, planner.NewLoggingSource(catalogSource(h.ds), h.log, nil))
	}
	if day := strings.TrimSpace(req.GetString("day", "")); day != "" {
		days = selectDay(days, day)
		if len(days) == 0 {
			return mcp.NewToolResultError("no day matching " + day + " in the " + string(env) + " plan"), nil
		}
	}

	result, err := mcp.NewToolResultJSON(exercisePlan{
		Environment: env,
		UpdatedAt:   saved.UpdatedAt,
		Enriched:    enrich,
		Days:        days,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) findPlan(ctx context.Context, env plan.Environment) (*models.SavedPlanRow, error) {
	rows, err := h.ds.ListPlans(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Environment == string(env) {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// selectDay keeps the days whose label or title equals day, ignoring case.
func selectDay(days []plan.DayPlan, day string) []plan.DayPlan {
	var out []plan.DayPlan
	for _, d := range days {
		if strings.EqualFold(d.Day, day) || strings.EqualFold(d.Title, day) {
			out = append(out, d)
		}
	}
	return out
}

func (h *handlers) listCatalogExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	envStr, err := req.RequireString("environment")
	if err != nil {
		return mcp.NewToolResultError("environment parameter is required"), nil
	}
	env, err := plan.ParseEnvironment(envStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := h.ds.ListCatalogExercises(ctx, env)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if muscle := strings.TrimSpace(req.GetString("muscle", "")); muscle != "" {
		rows = filterByMuscle(rows, muscle)
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func filterByMuscle(rows []models.CatalogExerciseRow, muscle string) []models.CatalogExerciseRow {
	out := []models.CatalogExerciseRow{}
	for _, r := range rows {
		for _, m := range r.MuscleGroups {
			if strings.EqualFold(m, muscle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
