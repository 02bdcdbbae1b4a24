package plan

import (
	"context"
	"strings"
	"unicode/utf16"
)

// Enrich replaces placeholder exercises with catalog exercises for env. The
// catalog is fetched once per call. When the fetch fails or returns nothing
// the input plan is returned unchanged; enrichment never blocks a plan.
func Enrich(ctx context.Context, days []DayPlan, env Environment, src CatalogSource) []DayPlan {
	entries, err := src.Exercises(ctx, env)
	if err != nil || len(entries) == 0 {
		return days
	}
	return EnrichWithIndex(days, NewIndex(entries))
}

// EnrichWithIndex matches every exercise of every non-rest day against idx.
// An exact name match keeps the exercise's name and programming (sets, reps,
// difficulty) and takes the catalog details. Otherwise a candidate is chosen
// among catalog exercises for the day's focus muscles by NameHash, so the
// same placeholder always resolves to the same exercise. The input is not
// modified.
func EnrichWithIndex(days []DayPlan, idx *Index) []DayPlan {
	out := make([]DayPlan, len(days))
	for i, day := range days {
		if day.IsRest() {
			out[i] = day
			continue
		}
		muscles := targetMuscles(day.Focus)
		enriched := make([]Exercise, len(day.Exercises))
		for j, ex := range day.Exercises {
			enriched[j] = matchExercise(ex, muscles, idx)
		}
		day.Exercises = enriched
		out[i] = day
	}
	return out
}

func matchExercise(ex Exercise, muscles []string, idx *Index) Exercise {
	if entry, ok := idx.ByName(ex.Name); ok {
		ex.MuscleGroups = clone(entry.MuscleGroups)
		if entry.Description != "" {
			ex.Description = entry.Description
		}
		if len(entry.FormTips) > 0 {
			ex.FormTips = clone(entry.FormTips)
		}
		ex.Equipment = clone(entry.Equipment)
		ex.ImageURL = entry.ImageURL
		return ex
	}

	var candidates []CatalogEntry
	for _, m := range muscles {
		candidates = append(candidates, idx.ByMuscle(m)...)
	}
	if len(candidates) == 0 {
		return ex
	}

	pick := candidates[NameHash(ex.Name)%len(candidates)]
	ex.Name = pick.Name
	ex.MuscleGroups = clone(pick.MuscleGroups)
	ex.Description = pick.Description
	ex.FormTips = clone(pick.FormTips)
	ex.Equipment = clone(pick.Equipment)
	ex.ImageURL = pick.ImageURL
	return ex
}

// targetMuscles splits every focus entry on commas and slashes, lowercased.
func targetMuscles(focus []string) []string {
	var muscles []string
	for _, f := range focus {
		for _, m := range listSepRe.Split(f, -1) {
			muscles = append(muscles, strings.ToLower(strings.TrimSpace(m)))
		}
	}
	return muscles
}

// NameHash sums the UTF-16 code units of name. Saved plans resolve their
// placeholders through this value, so it must not change.
func NameHash(name string) int {
	sum := 0
	for _, u := range utf16.Encode([]rune(name)) {
		sum += int(u)
	}
	return sum
}
