package plan

import (
	"regexp"
	"strings"
)

var (
	titleRe    = regexp.MustCompile(`(?m)^[ \t]*#{1,2}[ \t]*Day[ \t]+\d+:?[ \t]*(.*)$`)
	focusRe    = regexp.MustCompile(`(?i)\bfocus:?\s*([^.\n]+)`)
	warmupRe   = regexp.MustCompile(`(?i)\bwarm[ -]?up:?\s*([^#\n]+)`)
	cooldownRe = regexp.MustCompile(`(?i)\bcool[ -]?down:?\s*([^#\n]+)`)
	notesRe    = regexp.MustCompile(`(?i)\bnotes?:?\s*([^#\n]+)`)
	listSepRe  = regexp.MustCompile(`[,/]`)
)

// RawTitle returns the heading text after "Day N" and its optional colon,
// or DefaultTitle when there is no heading or nothing follows it.
func RawTitle(segment string) string {
	m := titleRe.FindStringSubmatch(segment)
	if m == nil {
		return DefaultTitle
	}
	if raw := strings.TrimSpace(m[1]); raw != "" {
		return raw
	}
	return DefaultTitle
}

// ExtractTitle returns the display title of the day heading. A raw title
// that still holds a colon keeps only the part between its first and second
// colon, so "Day 5: Cardio: Intervals" is titled "Intervals".
func ExtractTitle(segment string) string {
	raw := RawTitle(segment)
	if !strings.Contains(raw, ":") {
		return raw
	}
	if title := strings.TrimSpace(strings.Split(raw, ":")[1]); title != "" {
		return title
	}
	return DefaultTitle
}

// ExtractFocus returns the focus areas from a "Focus:" label. Without one,
// a title mentioning rest gets Rest/Recovery and everything else Full Body.
// title is the raw heading title, before any colon split.
func ExtractFocus(segment, title string) []string {
	if v, ok := firstCapture(focusRe, segment); ok {
		return splitList(v)
	}
	if strings.Contains(strings.ToLower(title), "rest") {
		return clone(restFocus)
	}
	return clone(fullBodyFocus)
}

// ExtractWarmup returns the warm-up description or the default routine.
func ExtractWarmup(segment string) string {
	if v, ok := firstCapture(warmupRe, segment); ok {
		return v
	}
	return DefaultWarmup
}

// ExtractCooldown returns the cool-down description or the default routine.
func ExtractCooldown(segment string) string {
	if v, ok := firstCapture(cooldownRe, segment); ok {
		return v
	}
	return DefaultCooldown
}

// ExtractNotes returns the day notes, or nil when the day has none.
func ExtractNotes(segment string) *string {
	if v, ok := firstCapture(notesRe, segment); ok {
		return &v
	}
	return nil
}

// firstCapture returns the trimmed first capture group of re in s.
func firstCapture(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// splitList splits on commas and slashes and trims every piece.
func splitList(s string) []string {
	parts := listSepRe.Split(strings.TrimSpace(s), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func clone(s []string) []string {
	return append([]string{}, s...)
}
