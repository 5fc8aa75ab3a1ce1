// README: Slot extractors: locations, times, dates, destinations, preferences.
package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"smartride/internal/modules/rides"
)

// All extractors are pure functions of the command text; they return the zero
// value on no match and never fail. Pattern ordering inside each extractor is
// load-bearing.

var (
	toFromPattern = regexp.MustCompile(`(?i)to\s+(\w+)\s+from\s+(\w+)`)

	// Display-time patterns, tried in this order.
	clockTimePattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)`)
	bareTimePattern  = regexp.MustCompile(`(?i)(\d{1,2})\s*(am|pm)`)
	atTimePattern    = regexp.MustCompile(`(?i)at\s*(\d{1,2}):?(\d{2})?\s*(am|pm)?`)

	// Target-time patterns for updates; these are anchored to a preposition so
	// "change my 5pm ride to 6pm" yields the 6pm, not the 5pm.
	targetToPattern     = regexp.MustCompile(`to\s+(\d{1,2}):?(\d{2})?\s*(am|pm)`)
	targetAtPattern     = regexp.MustCompile(`at\s+(\d{1,2}):?(\d{2})?\s*(am|pm)`)
	targetChangePattern = regexp.MustCompile(`change.*to\s+(\d{1,2}):?(\d{2})?\s*(am|pm)`)

	// Normalization patterns; prefix-anchored on purpose.
	normBarePattern  = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)`)
	normClockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm)`)

	destWordPattern        = regexp.MustCompile(`to\s+([a-zA-Z]+)(?:\s|$)`)
	destDestinationPattern = regexp.MustCompile(`destination.*?to\s+([a-zA-Z]+)`)
)

// capitalize matches the display convention for location names: first rune
// upper, rest lower.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// ExtractLocations pulls (from, to) out of a command. The explicit
// "to A from B" form wins; otherwise office/home keywords decide direction,
// defaulting to Home → Office.
func ExtractLocations(command string) (from, to string) {
	if m := toFromPattern.FindStringSubmatch(command); m != nil {
		return capitalize(m[2]), capitalize(m[1])
	}
	lower := strings.ToLower(command)
	if strings.Contains(lower, "office") {
		return "Home", "Office"
	}
	if strings.Contains(lower, "home") {
		return "Office", "Home"
	}
	return "Home", "Office"
}

// ExtractTime returns the first time mention found, as written (trimmed).
// Empty string means no time was mentioned.
func ExtractTime(command string) string {
	for _, p := range []*regexp.Regexp{clockTimePattern, bareTimePattern, atTimePattern} {
		if m := p.FindString(command); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// ExtractTargetTime finds the NEW time an update command asks for, formatted
// as "H:MM PERIOD". The anchored to/at/change-to patterns distinguish the
// target from the time identifying which ride is meant. If none of them
// match, the last bare time mention in the whole command is assumed to be the
// target (the first being the identifier).
func ExtractTargetTime(command string) string {
	lower := strings.ToLower(command)

	for _, p := range []*regexp.Regexp{targetToPattern, targetAtPattern, targetChangePattern} {
		if m := p.FindStringSubmatch(lower); m != nil {
			minute := m[2]
			if minute == "" {
				minute = "00"
			}
			return fmt.Sprintf("%s:%s %s", m[1], minute, strings.ToUpper(m[3]))
		}
	}

	var all []string
	for _, p := range []*regexp.Regexp{clockTimePattern, bareTimePattern} {
		for _, m := range p.FindAllString(lower, -1) {
			all = append(all, strings.TrimSpace(m))
		}
	}
	if len(all) > 0 {
		return all[len(all)-1]
	}
	return ""
}

// ExtractIdentifierTime finds the time that names WHICH existing ride an
// update refers to: the last time mention before the first " to " split.
func ExtractIdentifierTime(command string) string {
	lower := strings.ToLower(command)
	idx := strings.Index(lower, " to ")
	if idx < 0 {
		return ""
	}
	before := lower[:idx]
	for _, p := range []*regexp.Regexp{clockTimePattern, bareTimePattern} {
		if ms := p.FindAllString(before, -1); len(ms) > 0 {
			return strings.TrimSpace(ms[len(ms)-1])
		}
	}
	return ""
}

// NormalizeTime canonicalizes "5pm" / "5:00 pm" style strings to
// "H:MM PERIOD" for equality comparisons. Unrecognized input is returned
// unchanged.
func NormalizeTime(timeStr string) string {
	if timeStr == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(timeStr))

	if m := normBarePattern.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%d:00 %s", hour, strings.ToUpper(m[2]))
	}
	if m := normClockPattern.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%d:%s %s", hour, m[2], strings.ToUpper(m[3]))
	}
	return timeStr
}

// ExtractDestination pulls a new destination out of an update command.
// Words that are really time-pattern fragments (am/pm/time) are rejected per
// pattern before the next pattern is tried.
func ExtractDestination(command string) string {
	lower := strings.ToLower(command)
	for _, p := range []*regexp.Regexp{destWordPattern, destDestinationPattern} {
		if m := p.FindStringSubmatch(lower); m != nil {
			dest := capitalize(m[1])
			switch strings.ToLower(dest) {
			case "am", "pm", "time":
			default:
				return dest
			}
		}
	}
	return ""
}

// ExtractDate resolves "tomorrow"/"today" against the caller's selected
// day-of-month. The demo calendar wraps at a 30-day month boundary.
func ExtractDate(command string, selectedDate int) int {
	lower := strings.ToLower(command)
	if strings.Contains(lower, "tomorrow") {
		if selectedDate+1 > 30 {
			return 30
		}
		return selectedDate + 1
	}
	return selectedDate
}

var noSharedPhrases = []string{"no shared", "not shared", "no pool", "don't want shared"}

// ExtractPreferences pulls the preference slots out of a command.
func ExtractPreferences(command string) rides.Preferences {
	lower := strings.ToLower(command)
	prefs := rides.Preferences{PreferredTime: ExtractTime(command)}
	for _, phrase := range noSharedPhrases {
		if strings.Contains(lower, phrase) {
			prefs.NoSharedRides = true
			break
		}
	}
	return prefs
}
