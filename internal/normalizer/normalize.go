// Package normalizer turns raw course entries into canonical, ordered
// course items.
package normalizer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studycal/internal/domain"
)

// Normalize parses every raw item in order. The first malformed entry
// aborts the whole batch; items are never skipped or reordered.
func Normalize(raw []domain.RawItem) ([]domain.CourseItem, error) {
	items := make([]domain.CourseItem, 0, len(raw))
	for i, r := range raw {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			return nil, &domain.ValidationError{Field: "title", Index: i, Reason: "must not be empty"}
		}

		minutes, err := ParseDuration(r.Duration)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, title, err)
		}
		if minutes <= 0 {
			return nil, &domain.ValidationError{Field: "duration", Index: i, Reason: "must be positive"}
		}

		items = append(items, domain.CourseItem{
			Index:       i,
			Title:       title,
			RawDuration: strings.TrimSpace(r.Duration),
			DurationMin: minutes,
		})
	}
	return items, nil
}
