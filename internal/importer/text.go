package importer

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/studycal/internal/domain"
)

// minutesLineRe matches the duration line of a course-platform listing,
// e.g. "12min" or "7 min".
var minutesLineRe = regexp.MustCompile(`(?i)^\d+\s*min$`)

// ParseText extracts raw items from pasted text. Two shapes are accepted and
// may be mixed:
//
//   - platform listings of three lines per lesson: a status line, the
//     lesson title, and a duration line such as "12min";
//   - one lesson per line as "title<TAB>duration" or "title | duration".
//
// Blank lines are ignored. Lines that fit neither shape are skipped.
func ParseText(text string) ([]domain.RawItem, error) {
	lines := nonBlankLines(text)

	var items []domain.RawItem
	for i := 0; i < len(lines); {
		if title, dur, ok := splitRow(lines[i]); ok {
			items = append(items, domain.RawItem{Title: title, Duration: dur})
			i++
			continue
		}
		if i+2 < len(lines) && minutesLineRe.MatchString(lines[i+2]) {
			items = append(items, domain.RawItem{Title: lines[i+1], Duration: lines[i+2]})
			i += 3
			continue
		}
		i++
	}

	if len(items) == 0 {
		return nil, &domain.ParseError{Field: "text", Reason: "no course items found"}
	}
	return items, nil
}

func nonBlankLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// splitRow splits a "title<TAB>duration" or "title | duration" line. The
// last field is the duration. Tab rows pasted from a sheet may carry a
// module column first; those fields are joined as "module: title".
func splitRow(line string) (title, duration string, ok bool) {
	if strings.Contains(line, "\t") {
		var fields []string
		for _, f := range strings.Split(line, "\t") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) < 2 {
			return "", "", false
		}
		n := len(fields) - 1
		return strings.Join(fields[:n], ": "), fields[n], true
	}

	i := strings.LastIndex(line, "|")
	if i < 0 {
		return "", "", false
	}
	title = strings.TrimSpace(line[:i])
	duration = strings.TrimSpace(line[i+1:])
	if title == "" || duration == "" {
		return "", "", false
	}
	return title, duration, true
}
