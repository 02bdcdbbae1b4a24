package plan

import "strings"

// parseDay is swapped in tests to exercise the recovery path of Parse.
var parseDay = ParseDay

// Parse converts generated plan text into one DayPlan per "Day N" section,
// in the order the sections appear. Text without day headings, or text that
// trips an unexpected failure in extraction, yields an empty plan; callers
// treat that the same as "nothing generated yet".
func Parse(text string) (days []DayPlan) {
	defer func() {
		if r := recover(); r != nil {
			days = []DayPlan{}
		}
	}()

	segments := SegmentText(text)
	days = make([]DayPlan, 0, len(segments))
	for _, seg := range segments {
		days = append(days, parseDay(seg))
	}
	return days
}

// ParseDay extracts the fields and exercises of one day segment.
func ParseDay(seg Segment) DayPlan {
	return DayPlan{
		Day:       "Day " + seg.DayNumber,
		Title:     ExtractTitle(seg.Raw),
		Focus:     ExtractFocus(seg.Raw, RawTitle(seg.Raw)),
		Warmup:    ExtractWarmup(seg.Raw),
		Exercises: ParseExercises(seg.Raw),
		Cooldown:  ExtractCooldown(seg.Raw),
		Notes:     ExtractNotes(seg.Raw),
	}
}

// BoldNames returns the distinct bold names in text, in order of first
// appearance, capped at limit (limit <= 0 means no cap). These are the
// candidates sent for exercise illustration.
func BoldNames(text string, limit int) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, m := range boldRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
		if limit > 0 && len(names) == limit {
			break
		}
	}
	return names
}
