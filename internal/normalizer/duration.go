package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/studycal/internal/domain"
)

var (
	plainMinutesRe = regexp.MustCompile(`^\d{1,3}$`)
	textDurationRe = regexp.MustCompile(`^(?:(\d{1,3})\s*(?:h|hr|hrs|hour|hours))?\s*(?:(\d{1,3})\s*(?:m|min|mins|minute|minutes))?$`)
)

// ParseDuration converts a duration string into minutes.
//
// Colon forms are read by field width: "12:30" is MM:SS, "1:30" is H:MM,
// "120:00" (or any first field above 59) is HHH:MM, and three fields are
// HH:MM:SS. Plain integers are minutes; "1h 30m" style text is also
// accepted. Fields wider than three digits are never guessed at.
func ParseDuration(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, parseErr(raw, "empty duration")
	}

	if strings.Contains(s, ":") {
		return parseColon(raw, strings.Split(s, ":"))
	}

	if plainMinutesRe.MatchString(s) {
		n, _ := strconv.Atoi(s)
		return float64(n), nil
	}

	if m := textDurationRe.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "") {
		hours, _ := strconv.Atoi(orZero(m[1]))
		minutes, _ := strconv.Atoi(orZero(m[2]))
		return float64(hours*60 + minutes), nil
	}

	return 0, parseErr(raw, "unrecognized duration format")
}

func parseColon(raw string, parts []string) (float64, error) {
	switch len(parts) {
	case 3:
		h, ok := field(parts[0], 1, 3)
		if !ok {
			return 0, parseErr(raw, "invalid hours field")
		}
		m, ok := sexagesimal(parts[1], 1)
		if !ok {
			return 0, parseErr(raw, "invalid minutes field")
		}
		sec, ok := sexagesimal(parts[2], 1)
		if !ok {
			return 0, parseErr(raw, "invalid seconds field")
		}
		return float64(h*60+m) + float64(sec)/60, nil

	case 2:
		first, ok := field(parts[0], 1, 3)
		if !ok {
			return 0, parseErr(raw, "invalid leading field")
		}
		second, ok := sexagesimal(parts[1], 2)
		if !ok {
			return 0, parseErr(raw, "trailing field must be two digits below 60")
		}
		width := len(strings.TrimSpace(parts[0]))
		switch {
		case width == 1:
			// H:MM
			return float64(first*60 + second), nil
		case width == 2 && first <= 59:
			// MM:SS
			return float64(first) + float64(second)/60, nil
		default:
			// HHH:MM
			return float64(first*60 + second), nil
		}
	}
	return 0, parseErr(raw, "unrecognized duration format")
}

// field parses an all-digit field whose width is within [minW, maxW].
func field(s string, minW, maxW int) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) < minW || len(s) > maxW {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// sexagesimal parses a minutes or seconds field: at most two digits, below 60.
func sexagesimal(s string, minW int) (int, bool) {
	n, ok := field(s, minW, 2)
	if !ok || n > 59 {
		return 0, false
	}
	return n, true
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func parseErr(raw, reason string) error {
	return &domain.ParseError{Field: "duration", Value: raw, Reason: reason}
}
