package checklist

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Literal delay labels written by older releases and by the status action.
const (
	DelayNotApplicable = "N/A"
	DelayOnTime        = "On Time"
)

// DelayParser turns one historical delay encoding into seconds. ok is false
// when the text is not in the parser's format.
type DelayParser interface {
	Name() string
	Parse(text string) (seconds int64, ok bool)
}

// DelayParsers lists the encodings in the order they are tried.
var DelayParsers = []DelayParser{
	literalParser{},
	clockParser{},
	unitLetterParser{},
	verboseUnitParser{},
}

// DelayToSeconds normalizes any stored delay string so rows can be compared.
// Text no parser recognizes counts as zero.
func DelayToSeconds(text string) int64 {
	text = strings.TrimSpace(text)
	for _, p := range DelayParsers {
		if secs, ok := p.Parse(text); ok {
			return secs
		}
	}
	return 0
}

type literalParser struct{}

func (literalParser) Name() string { return "literal" }

func (literalParser) Parse(text string) (int64, bool) {
	switch {
	case text == "", strings.EqualFold(text, DelayNotApplicable), strings.EqualFold(text, DelayOnTime):
		return 0, true
	}
	return 0, false
}

// clockParser reads "H:MM:SS" with an optional "<N> D " prefix.
type clockParser struct{}

var clockPattern = regexp.MustCompile(`(?i)^(?:(\d+)\s*D\s+)?(\d+):(\d{1,2}):(\d{1,2})$`)

func (clockParser) Name() string { return "clock" }

func (clockParser) Parse(text string) (int64, bool) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return atoi64(m[1])*86400 + atoi64(m[2])*3600 + atoi64(m[3])*60 + atoi64(m[4]), true
}

// unitLetterParser reads any subset of "<N> D", "<N> h", "<N> m".
type unitLetterParser struct{}

var (
	letterDays    = regexp.MustCompile(`(?i)\b(\d+)\s*d\b`)
	letterHours   = regexp.MustCompile(`(?i)\b(\d+)\s*h\b`)
	letterMinutes = regexp.MustCompile(`(?i)\b(\d+)\s*m\b`)
)

func (unitLetterParser) Name() string { return "unit-letter" }

func (unitLetterParser) Parse(text string) (int64, bool) {
	return sumUnits(text, []unitPattern{
		{letterDays, 86400},
		{letterHours, 3600},
		{letterMinutes, 60},
	})
}

// verboseUnitParser reads "<N> days", "<N> hrs", "<N> mins" and their singulars.
type verboseUnitParser struct{}

var (
	wordDays    = regexp.MustCompile(`(?i)(\d+)\s*days?\b`)
	wordHours   = regexp.MustCompile(`(?i)(\d+)\s*(?:hrs?|hours?)\b`)
	wordMinutes = regexp.MustCompile(`(?i)(\d+)\s*(?:mins?|minutes?)\b`)
)

func (verboseUnitParser) Name() string { return "verbose-unit" }

func (verboseUnitParser) Parse(text string) (int64, bool) {
	return sumUnits(text, []unitPattern{
		{wordDays, 86400},
		{wordHours, 3600},
		{wordMinutes, 60},
	})
}

type unitPattern struct {
	re   *regexp.Regexp
	unit int64
}

func sumUnits(text string, patterns []unitPattern) (int64, bool) {
	var total int64
	matched := false
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			total += atoi64(m[1]) * p.unit
			matched = true
		}
	}
	return total, matched
}

// maxBareDuration bounds bare numbers so the int64 conversion cannot overflow.
const maxBareDuration = 1 << 53

// DurationToSeconds reads the duration column: "HH:MM:SS", "HH:MM", or a
// bare number. A bare number up to 3600 is minutes, above that it is seconds.
// Negative, non-finite or unreadable input is 0.
func DurationToSeconds(text string) int64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	if strings.Contains(text, ":") {
		parts := strings.Split(text, ":")
		switch len(parts) {
		case 3:
			return atoi64(parts[0])*3600 + atoi64(parts[1])*60 + atoi64(parts[2])
		case 2:
			return atoi64(parts[0])*3600 + atoi64(parts[1])*60
		default:
			return 0
		}
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || n > maxBareDuration {
		return 0
	}
	if n <= 3600 {
		return int64(n * 60)
	}
	return int64(n)
}

func atoi64(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
