// Package catalog provides the built-in exercise catalog and clients for
// catalogs served by another HealthTrack instance.
package catalog

import "github.com/claude/healthtrack/internal/plan"

// Seed returns the built-in catalog for env. The returned slice is a fresh
// copy the caller may modify.
func Seed(env plan.Environment) []plan.CatalogEntry {
	var src []plan.CatalogEntry
	switch env {
	case plan.Home:
		src = homeExercises
	case plan.Gym:
		src = gymExercises
	}
	out := make([]plan.CatalogEntry, len(src))
	for i, e := range src {
		out[i] = plan.CatalogEntry{
			Name:         e.Name,
			MuscleGroups: append([]string{}, e.MuscleGroups...),
			Description:  e.Description,
			FormTips:     append([]string{}, e.FormTips...),
			Equipment:    append([]string{}, e.Equipment...),
			ImageURL:     e.ImageURL,
		}
	}
	return out
}

var homeExercises = []plan.CatalogEntry{
	{
		Name:         "Push-up",
		MuscleGroups: []string{"Chest", "Triceps", "Shoulders"},
		Description:  "Hands under shoulders, lower the chest to the floor and press back up.",
		FormTips:     []string{"Keep a straight line from head to heels", "Elbows at roughly 45 degrees"},
		Equipment:    []string{"None"},
	},
	{
		Name:         "Bodyweight Squat",
		MuscleGroups: []string{"Quadriceps", "Glutes"},
		Description:  "Feet shoulder-width apart, sit the hips back and down, stand up tall.",
		FormTips:     []string{"Knees track over toes", "Chest up, weight in the heels"},
		Equipment:    []string{"None"},
	},
	{
		Name:         "Reverse Lunge",
		MuscleGroups: []string{"Quadriceps", "Glutes", "Hamstrings"},
		Description:  "Step back and lower the rear knee towards the floor, then drive back up.",
		FormTips:     []string{"Keep the front shin vertical", "Torso upright"},
		Equipment:    []string{"None"},
	},
	{
		Name:         "Glute Bridge",
		MuscleGroups: []string{"Glutes", "Hamstrings"},
		Description:  "Lying on your back with knees bent, drive the hips up and squeeze.",
		FormTips:     []string{"Do not arch the lower back", "Pause at the top"},
		Equipment:    []string{"Mat"},
	},
	{
		Name:         "Plank",
		MuscleGroups: []string{"Core", "Abs"},
		Description:  "Hold a straight-arm or forearm plank with the body in one line.",
		FormTips:     []string{"Squeeze glutes and brace the abs", "Do not let the hips sag"},
		Equipment:    []string{"Mat"},
	},
	{
		Name:         "Superman",
		MuscleGroups: []string{"Back", "Glutes"},
		Description:  "Lying face down, lift arms, chest and legs off the floor.",
		FormTips:     []string{"Keep the neck neutral", "Move slowly"},
		Equipment:    []string{"Mat"},
	},
	{
		Name:         "Chair Dip",
		MuscleGroups: []string{"Triceps", "Chest"},
		Description:  "Hands on the edge of a sturdy chair, lower the body by bending the elbows.",
		FormTips:     []string{"Shoulders away from the ears", "Keep the back close to the chair"},
		Equipment:    []string{"Chair"},
	},
	{
		Name:         "Mountain Climber",
		MuscleGroups: []string{"Core", "Shoulders", "Cardio"},
		Description:  "From a high plank, drive the knees to the chest alternately at pace.",
		FormTips:     []string{"Hips level with the shoulders"},
		Equipment:    []string{"None"},
	},
	{
		Name:         "Calf Raise",
		MuscleGroups: []string{"Calves"},
		Description:  "Rise onto the balls of the feet and lower under control.",
		FormTips:     []string{"Full range of motion", "Hold a wall for balance"},
		Equipment:    []string{"None"},
	},
	{
		Name:         "Resistance Band Row",
		MuscleGroups: []string{"Back", "Biceps"},
		Description:  "Anchor the band, pull the handles to the ribs and squeeze the shoulder blades.",
		FormTips:     []string{"Lead with the elbows", "Do not shrug"},
		Equipment:    []string{"Resistance band"},
	},
}

var gymExercises = []plan.CatalogEntry{
	{
		Name:         "Bench Press",
		MuscleGroups: []string{"Chest", "Triceps", "Shoulders"},
		Description:  "Lie on a flat bench, lower the bar to mid-chest and press to lockout.",
		FormTips:     []string{"Retract the shoulder blades", "Feet flat on the floor"},
		Equipment:    []string{"Barbell", "Bench"},
	},
	{
		Name:         "Incline Dumbbell Press",
		MuscleGroups: []string{"Chest", "Shoulders"},
		Description:  "Press dumbbells from shoulder level on a 30-45 degree incline bench.",
		FormTips:     []string{"Control the descent", "Wrists stacked over elbows"},
		Equipment:    []string{"Dumbbells", "Incline bench"},
	},
	{
		Name:         "Barbell Back Squat",
		MuscleGroups: []string{"Quadriceps", "Glutes", "Hamstrings"},
		Description:  "Bar on the upper back, squat to at least parallel and stand up.",
		FormTips:     []string{"Brace before each rep", "Knees out over the toes"},
		Equipment:    []string{"Barbell", "Squat rack"},
	},
	{
		Name:         "Leg Press",
		MuscleGroups: []string{"Quadriceps", "Glutes"},
		Description:  "Press the sled away with feet shoulder-width on the platform.",
		FormTips:     []string{"Do not lock the knees", "Keep the lower back on the pad"},
		Equipment:    []string{"Leg press machine"},
	},
	{
		Name:         "Leg Extension",
		MuscleGroups: []string{"Quadriceps"},
		Description:  "Seated knee extension on the machine.",
		FormTips:     []string{"Pause at the top", "Control the lowering"},
		Equipment:    []string{"Leg extension machine"},
	},
	{
		Name:         "Romanian Deadlift",
		MuscleGroups: []string{"Hamstrings", "Glutes", "Back"},
		Description:  "Hinge at the hips with a soft knee, lowering the bar along the legs.",
		FormTips:     []string{"Neutral spine", "Push the hips back"},
		Equipment:    []string{"Barbell"},
	},
	{
		Name:         "Lat Pulldown",
		MuscleGroups: []string{"Back", "Lats", "Biceps"},
		Description:  "Pull the bar to the upper chest while leaning back slightly.",
		FormTips:     []string{"Drive the elbows down", "Avoid swinging"},
		Equipment:    []string{"Cable machine"},
	},
	{
		Name:         "Seated Cable Row",
		MuscleGroups: []string{"Back", "Biceps"},
		Description:  "Row the handle to the stomach, squeezing the shoulder blades together.",
		FormTips:     []string{"Chest tall", "Do not round the back"},
		Equipment:    []string{"Cable machine"},
	},
	{
		Name:         "Overhead Press",
		MuscleGroups: []string{"Shoulders", "Triceps"},
		Description:  "Press the bar from the front rack to overhead lockout.",
		FormTips:     []string{"Squeeze glutes", "Bar path close to the face"},
		Equipment:    []string{"Barbell"},
	},
	{
		Name:         "Cable Triceps Pushdown",
		MuscleGroups: []string{"Triceps"},
		Description:  "Push the rope or bar down until the elbows are fully extended.",
		FormTips:     []string{"Elbows pinned to the sides"},
		Equipment:    []string{"Cable machine"},
	},
	{
		Name:         "Dumbbell Curl",
		MuscleGroups: []string{"Biceps"},
		Description:  "Curl the dumbbells with palms up, lowering slowly.",
		FormTips:     []string{"No swinging", "Full extension at the bottom"},
		Equipment:    []string{"Dumbbells"},
	},
	{
		Name:         "Standing Calf Raise",
		MuscleGroups: []string{"Calves"},
		Description:  "Raise the heels on the machine and lower into a full stretch.",
		FormTips:     []string{"Pause at the top and bottom"},
		Equipment:    []string{"Calf raise machine"},
	},
	{
		Name:         "Cable Crunch",
		MuscleGroups: []string{"Core", "Abs"},
		Description:  "Kneeling at a cable, crunch the ribs towards the hips.",
		FormTips:     []string{"Move through the spine, not the hips"},
		Equipment:    []string{"Cable machine"},
	},
}
