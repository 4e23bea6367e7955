// Package scheduler assigns course items to study sessions on a weekly
// availability calendar.
package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
)

// epsilonMin absorbs floating-point residue left by duration multipliers.
const epsilonMin = 1e-6

// Schedule lays items out as study sessions, greedy first-fit in input order:
//  1. The configuration is validated and the multiplier applied to every
//     item up front; nothing is emitted if either step fails.
//  2. The cursor starts on the first active weekday on or after StartDate.
//  3. Each item fills the current day's remaining budget and spills onto
//     following active days as needed. Sessions on one day are back to back,
//     starting at DailyStart.
//  4. Items are never interleaved: a day with budget left continues the
//     current item before the next one starts.
//
// Split items are titled "<title> (Part i/N)". The result is ordered by
// (Date, Start) and is fully determined by the inputs.
func Schedule(items []domain.CourseItem, cfg domain.ScheduleConfig) ([]domain.StudySession, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	ordered, err := orderedItems(items)
	if err != nil {
		return nil, err
	}

	effective, err := effectiveDurations(ordered, cfg.Multiplier)
	if err != nil {
		return nil, err
	}

	cur, err := newCursor(cfg)
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.StudySession, 0, len(ordered))
	for i, item := range ordered {
		// First pass: chunk boundaries. Second pass: titles, once the part
		// count is known.
		chunks, err := cur.take(effective[i])
		if err != nil {
			return nil, err
		}
		parts := len(chunks)
		for p, c := range chunks {
			sessions = append(sessions, domain.StudySession{
				Date:        c.date,
				Start:       cfg.DailyStart + minutesToDuration(c.offsetMin),
				End:         cfg.DailyStart + minutesToDuration(c.offsetMin+c.lengthMin),
				DurationMin: c.lengthMin,
				Title:       domain.PartTitle(item.Title, p+1, parts),
				SourceIndex: item.Index,
				Part:        p + 1,
				Parts:       parts,
			})
		}
	}

	return sessions, nil
}

// EffectiveDuration applies the multiplier to a single item.
func EffectiveDuration(item domain.CourseItem, multiplier float64) float64 {
	return item.DurationMin * multiplier
}

// orderedItems returns a copy of items sorted by Index. Duplicate indices
// and empty titles are rejected.
func orderedItems(items []domain.CourseItem) ([]domain.CourseItem, error) {
	ordered := make([]domain.CourseItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})

	for i, item := range ordered {
		if i > 0 && ordered[i-1].Index == item.Index {
			return nil, &domain.ValidationError{Field: "index", Index: item.Index, Reason: "is duplicated"}
		}
		if item.Title == "" {
			return nil, &domain.ValidationError{Field: "title", Index: item.Index, Reason: "must not be empty"}
		}
	}
	return ordered, nil
}

func effectiveDurations(items []domain.CourseItem, multiplier float64) ([]float64, error) {
	out := make([]float64, len(items))
	for i, item := range items {
		d := EffectiveDuration(item, multiplier)
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= epsilonMin {
			return nil, &domain.ValidationError{Field: "duration", Index: item.Index, Reason: "must be positive after the multiplier"}
		}
		out[i] = d
	}
	return out, nil
}

func minutesToDuration(m float64) time.Duration {
	return time.Duration(math.Round(m * float64(time.Minute)))
}
