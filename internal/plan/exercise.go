package plan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	descriptionRe = regexp.MustCompile(`\*\*[^*]+\*\*\s*-\s*([^•\n]+)`)
	targetRe      = regexp.MustCompile(`(?i)\btargets?:?\s*([^•\n.]+)`)
	muscleRe      = regexp.MustCompile(`(?i)\bmuscles?:?\s*([^•\n.]+)`)
	setsRe        = regexp.MustCompile(`(?i)\bsets:?\s*(\d+)`)
	repsRe        = regexp.MustCompile(`(?i)\breps:?\s*(\d+(?:-\d+)?(?:\s*(?:per\s*side|each|reps|repetitions))?)`)
	tipsRe        = regexp.MustCompile(`(?i)\bform tips?:?\s*([^•\n.]+)|\btips?:?\s*([^•\n.]+)|\bcues?:?\s*([^•\n.]+)`)
	bulletRe      = regexp.MustCompile(`(?m)^[ \t]*(?:•[ \t]*|[-*][ \t]+)(.+)$`)
	equipmentRe   = regexp.MustCompile(`(?i)\bequipment:?\s*([^•\n.]+)`)
)

// SplitExerciseBlocks splits a day segment into exercise blocks. Each bold
// span starts a block that runs to the next "**" or the end of the segment.
func SplitExerciseBlocks(segment string) []string {
	var blocks []string
	pos := 0
	for pos < len(segment) {
		loc := boldRe.FindStringIndex(segment[pos:])
		if loc == nil {
			break
		}
		start, boldEnd := pos+loc[0], pos+loc[1]
		end := len(segment)
		if next := strings.Index(segment[boldEnd:], "**"); next >= 0 {
			end = boldEnd + next
		}
		blocks = append(blocks, segment[start:end])
		pos = end
	}
	return blocks
}

// ParseExercise extracts every attribute of one exercise block.
func ParseExercise(block string) Exercise {
	sets := ExerciseSets(block)
	reps := ExerciseReps(block)
	return Exercise{
		Name:         ExerciseName(block),
		Description:  ExerciseDescription(block),
		MuscleGroups: MuscleGroups(block),
		Sets:         sets,
		Reps:         reps,
		FormTips:     FormTips(block),
		Equipment:    Equipment(block),
		Difficulty:   InferDifficulty(block, sets, reps),
	}
}

// ExerciseName returns the bold text of the block, or the placeholder name.
func ExerciseName(block string) string {
	if v, ok := firstCapture(boldRe, block); ok && v != "" {
		return v
	}
	return PlaceholderName
}

// ExerciseDescription returns the text after "**Name** -" up to a bullet or newline.
func ExerciseDescription(block string) string {
	v, _ := firstCapture(descriptionRe, block)
	return v
}

// MuscleGroups reads a "Target:" label, falling back to "Muscles:".
func MuscleGroups(block string) []string {
	if v, ok := firstCapture(targetRe, block); ok {
		return splitList(v)
	}
	if v, ok := firstCapture(muscleRe, block); ok {
		return splitList(v)
	}
	return []string{}
}

// ExerciseSets returns the first integer after a "Sets" label.
func ExerciseSets(block string) int {
	v, ok := firstCapture(setsRe, block)
	if !ok {
		return DefaultSets
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return DefaultSets
	}
	return n
}

// ExerciseReps returns a count or range such as "8-10" or "12 per side".
func ExerciseReps(block string) string {
	if v, ok := firstCapture(repsRe, block); ok {
		return v
	}
	return DefaultReps
}

// FormTips collects labelled tips ("Form tips:", "Tips:", "Cues:") followed
// by every bullet line of the block. Duplicates are kept.
func FormTips(block string) []string {
	tips := []string{}
	for _, m := range tipsRe.FindAllStringSubmatch(block, -1) {
		for _, g := range m[1:] {
			if g != "" {
				tips = append(tips, strings.TrimSpace(g))
				break
			}
		}
	}
	for _, m := range bulletRe.FindAllStringSubmatch(block, -1) {
		// "• a • b" on one line is two bullets.
		for _, part := range strings.Split(m[1], "•") {
			if tip := strings.TrimSpace(part); tip != "" {
				tips = append(tips, tip)
			}
		}
	}
	return tips
}

// Equipment reads an "Equipment:" label.
func Equipment(block string) []string {
	if v, ok := firstCapture(equipmentRe, block); ok {
		return splitList(v)
	}
	return []string{}
}

// InferDifficulty applies the rules in order; the first match wins:
// beginner keyword, advanced keyword, sets > 4 or reps containing "15"
// (advanced), sets < 3 or reps containing "8" (beginner), else intermediate.
//
// Reps of "8-10" with four sets is therefore beginner. Existing saved plans
// depend on this ordering.
func InferDifficulty(block string, sets int, reps string) Difficulty {
	lower := strings.ToLower(block)
	switch {
	case strings.Contains(lower, "beginner"):
		return Beginner
	case strings.Contains(lower, "advanced"):
		return Advanced
	case sets > 4 || strings.Contains(reps, "15"):
		return Advanced
	case sets < 3 || strings.Contains(reps, "8"):
		return Beginner
	}
	return DefaultDifficulty
}

// ParseExercises extracts the exercises of a day segment, dropping blocks
// without a usable name.
func ParseExercises(segment string) []Exercise {
	exercises := []Exercise{}
	for _, block := range SplitExerciseBlocks(segment) {
		ex := ParseExercise(block)
		if ex.Name == "" || ex.Name == PlaceholderName {
			continue
		}
		exercises = append(exercises, ex)
	}
	return exercises
}
