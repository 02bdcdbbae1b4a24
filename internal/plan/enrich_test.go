package plan

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gymCatalog() []CatalogEntry {
	return []CatalogEntry{
		{
			Name:         "Barbell Back Squat",
			MuscleGroups: []string{"Quadriceps", "Glutes"},
			Description:  "Barbell on upper back, squat to depth",
			FormTips:     []string{"Brace before descending"},
			Equipment:    []string{"Barbell", "Squat rack"},
			ImageURL:     "/img/squat.png",
		},
		{
			Name:         "Leg Extension",
			MuscleGroups: []string{"quadriceps"},
			Description:  "Seated knee extension on the machine",
			FormTips:     []string{"Control the eccentric"},
			Equipment:    []string{"Leg extension machine"},
			ImageURL:     "/img/leg-extension.png",
		},
		{
			Name:         "Bench Press",
			MuscleGroups: []string{"Chest", "Triceps"},
			Description:  "",
			FormTips:     nil,
			Equipment:    []string{"Barbell", "Bench"},
			ImageURL:     "/img/bench.png",
		},
	}
}

func staticSource(entries []CatalogEntry) CatalogSource {
	return CatalogSourceFunc(func(context.Context, Environment) ([]CatalogEntry, error) {
		return entries, nil
	})
}

// TestEnrichExactNameMatch verifies catalog details replace the parsed ones
// while the programming from the plan is kept.
func TestEnrichExactNameMatch(t *testing.T) {
	days := Parse(twoDayPlan)
	out := Enrich(context.Background(), days, Gym, staticSource(gymCatalog()))
	require.Len(t, out, 2)

	ex := out[0].Exercises[0]
	assert.Equal(t, "Bench Press", ex.Name)
	assert.Equal(t, []string{"Chest", "Triceps"}, ex.MuscleGroups)
	// Empty catalog description and tips keep the parsed values.
	assert.Equal(t, "flat bench press", ex.Description)
	assert.Equal(t, days[0].Exercises[0].FormTips, ex.FormTips)
	assert.Equal(t, []string{"Barbell", "Bench"}, ex.Equipment)
	assert.Equal(t, "/img/bench.png", ex.ImageURL)
	assert.Equal(t, 4, ex.Sets)
	assert.Equal(t, "8-10", ex.Reps)
	assert.Equal(t, Beginner, ex.Difficulty)
}

// TestEnrichMuscleHashMatch verifies the placeholder resolves to
// candidates[charsum(name) % len(candidates)].
func TestEnrichMuscleHashMatch(t *testing.T) {
	days := []DayPlan{{
		Day:   "Day 1",
		Title: "Legs",
		Focus: []string{"Quadriceps"},
		Exercises: []Exercise{{
			Name: "Leg Press", Sets: 5, Reps: "12", Difficulty: Advanced,
			MuscleGroups: []string{}, FormTips: []string{}, Equipment: []string{},
		}},
	}}
	catalog := gymCatalog()
	candidates := []CatalogEntry{catalog[0], catalog[1]}

	require.Equal(t, 837, NameHash("Leg Press"))
	want := candidates[NameHash("Leg Press")%len(candidates)]
	assert.Equal(t, "Leg Extension", want.Name)

	for range 3 {
		out := Enrich(context.Background(), days, Gym, staticSource(catalog))
		ex := out[0].Exercises[0]
		assert.Equal(t, want.Name, ex.Name)
		assert.Equal(t, want.MuscleGroups, ex.MuscleGroups)
		assert.Equal(t, want.Description, ex.Description)
		assert.Equal(t, want.FormTips, ex.FormTips)
		assert.Equal(t, want.Equipment, ex.Equipment)
		assert.Equal(t, want.ImageURL, ex.ImageURL)
		assert.Equal(t, 5, ex.Sets)
		assert.Equal(t, "12", ex.Reps)
		assert.Equal(t, Advanced, ex.Difficulty)
	}

	// Input is untouched.
	assert.Equal(t, "Leg Press", days[0].Exercises[0].Name)
}

// TestEnrichCandidatesFollowFocusOrder verifies candidates are gathered per
// focus muscle in order, duplicates included.
func TestEnrichCandidatesFollowFocusOrder(t *testing.T) {
	catalog := gymCatalog()
	idx := NewIndex(catalog)
	days := []DayPlan{{
		Day:       "Day 1",
		Focus:     []string{"Glutes/Quadriceps"},
		Exercises: []Exercise{{Name: "Mystery Move"}},
	}}
	// glutes -> [squat], quadriceps -> [squat, extension]
	candidates := []CatalogEntry{catalog[0], catalog[0], catalog[1]}
	want := candidates[NameHash("Mystery Move")%len(candidates)]

	out := EnrichWithIndex(days, idx)
	assert.Equal(t, want.Name, out[0].Exercises[0].Name)
}

// TestEnrichSkipsRestDays verifies rest days are returned exactly as given.
func TestEnrichSkipsRestDays(t *testing.T) {
	days := []DayPlan{
		{Day: "Day 2", Title: "Rest", Focus: []string{"Rest"}, Exercises: []Exercise{}},
		{Day: "Day 6", Title: "Easy", Focus: []string{"Active REST", "Quadriceps"}, Exercises: []Exercise{{Name: "Leg Press"}}},
	}
	out := Enrich(context.Background(), days, Gym, staticSource(gymCatalog()))
	assert.Equal(t, days, out)
	assert.Empty(t, out[0].Exercises)
}

// TestEnrichNoMatchPassesThrough verifies unmatched exercises are unchanged.
func TestEnrichNoMatchPassesThrough(t *testing.T) {
	days := []DayPlan{{Day: "Day 1", Focus: []string{"Calves"}, Exercises: []Exercise{{Name: "Calf Raise", Sets: 3}}}}
	out := Enrich(context.Background(), days, Gym, staticSource(gymCatalog()))
	assert.Equal(t, days, out)
}

// TestEnrichIsIdempotent verifies two runs produce byte-identical output.
func TestEnrichIsIdempotent(t *testing.T) {
	days := Parse(weekPlan)
	src := staticSource(gymCatalog())

	first, err := json.Marshal(Enrich(context.Background(), days, Gym, src))
	require.NoError(t, err)
	second, err := json.Marshal(Enrich(context.Background(), days, Gym, src))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

// TestEnrichCatalogFailure verifies a failing or empty catalog returns the plan unchanged.
func TestEnrichCatalogFailure(t *testing.T) {
	days := Parse(twoDayPlan)

	failing := CatalogSourceFunc(func(context.Context, Environment) ([]CatalogEntry, error) {
		return nil, errors.New("catalog unavailable")
	})
	assert.Equal(t, days, Enrich(context.Background(), days, Gym, failing))
	assert.Equal(t, days, Enrich(context.Background(), days, Gym, staticSource(nil)))
}

func TestIndexLookupsAreCaseInsensitive(t *testing.T) {
	idx := NewIndex(gymCatalog())
	assert.Equal(t, 3, idx.Len())

	e, ok := idx.ByName("BENCH press")
	require.True(t, ok)
	assert.Equal(t, "Bench Press", e.Name)

	_, ok = idx.ByName("Bench")
	assert.False(t, ok)

	assert.Len(t, idx.ByMuscle("QUADRICEPS"), 2)
	assert.Empty(t, idx.ByMuscle("calves"))
}

func TestNameHashUsesUTF16Units(t *testing.T) {
	assert.Equal(t, 0, NameHash(""))
	assert.Equal(t, int('A')+int('b'), NameHash("Ab"))
	// U+1F4AA encodes as the surrogate pair D83D DCAA.
	assert.Equal(t, 0xD83D+0xDCAA, NameHash("\U0001F4AA"))
}
