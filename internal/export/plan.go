package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/studycal/internal/domain"
)

// Format names an export file format.
type Format string

const (
	FormatICS  Format = "ics"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "ics" or "xlsx", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatICS, FormatXLSX:
		return f, nil
	default:
		return "", &domain.ParseError{Field: "format", Value: s, Reason: "expected ics or xlsx"}
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", &domain.ParseError{Field: "out", Value: path, Reason: "file needs an .ics or .xlsx extension"}
	}
	return ParseFormat(ext)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/calendar; charset=utf-8"
}

// Filename builds a download name from the plan name, e.g. "go_fundamentals.ics".
func (f Format) Filename(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	base := strings.Trim(b.String(), "_")
	if base == "" {
		base = "study_schedule"
	}
	return base + "." + string(f)
}

// PlanOptions tunes WritePlan.
type PlanOptions struct {
	GroupByDay bool
	Place      string
}

// WritePlan writes a plan in format f. Calendar timestamps come from the
// plan itself, so exporting the same saved plan twice yields identical bytes.
func WritePlan(w io.Writer, f Format, p *domain.Plan, opts PlanOptions) error {
	switch f {
	case FormatICS:
		return WriteICS(w, p.Sessions, ICSOptions{
			CourseName: p.Name,
			Place:      opts.Place,
			TZ:         p.Config.Loc(),
			Stamp:      p.CreatedAt,
			GroupByDay: opts.GroupByDay,
		})
	case FormatXLSX:
		return WriteXLSX(w, p.Sessions, p.Config.Loc())
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}
