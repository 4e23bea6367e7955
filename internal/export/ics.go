// Package export renders scheduled sessions as iCalendar and xlsx files.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/scheduler"
)

// DefaultProductID identifies calendars written by studycal.
const DefaultProductID = "-//studycal//Study Schedule Calendar//EN"

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/alexanderramin/studycal"))

// ICSOptions controls calendar output.
type ICSOptions struct {
	CourseName string
	ProductID  string
	Place      string         // LOCATION of every event
	TZ         *time.Location // zone for the wall-clock session times; UTC when nil
	Stamp      time.Time      // DTSTAMP; fixed so repeated exports are byte-identical
	GroupByDay bool           // one study block per date instead of one event per session
}

func (o ICSOptions) loc() *time.Location {
	if o.TZ == nil {
		return time.UTC
	}
	return o.TZ
}

// WriteICS writes sessions as an iCalendar document.
func WriteICS(w io.Writer, sessions []domain.StudySession, opts ICSOptions) error {
	cal := ics.NewCalendar()
	productID := opts.ProductID
	if productID == "" {
		productID = DefaultProductID
	}
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodPublish)
	if opts.CourseName != "" {
		cal.SetXWRCalName(opts.CourseName)
	}
	cal.SetXWRTimezone(opts.loc().String())

	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	if opts.GroupByDay {
		for _, day := range scheduler.GroupByDate(sessions) {
			addDayEvent(cal, day, opts, stamp)
		}
	} else {
		for _, s := range sessions {
			addSessionEvent(cal, s, opts, stamp)
		}
	}

	return cal.SerializeTo(w)
}

func addSessionEvent(cal *ics.Calendar, s domain.StudySession, opts ICSOptions, stamp time.Time) {
	loc := opts.loc()
	ev := cal.AddEvent(eventUID(opts.CourseName, s.Date, s.SourceIndex, s.Part, s.Title))
	ev.SetDtStampTime(stamp)
	ev.SetStartAt(s.StartAt(loc))
	ev.SetEndAt(s.EndAt(loc))
	ev.SetSummary(s.Title)
	if opts.Place != "" {
		ev.SetLocation(opts.Place)
	}

	var desc []string
	if opts.CourseName != "" {
		desc = append(desc, opts.CourseName)
	}
	if s.Split() {
		desc = append(desc, fmt.Sprintf("Part %d of %d", s.Part, s.Parts))
	}
	desc = append(desc, "Duration: "+FormatDuration(s.DurationMin))
	ev.SetDescription(strings.Join(desc, "\n"))
}

func addDayEvent(cal *ics.Calendar, day scheduler.Day, opts ICSOptions, stamp time.Time) {
	loc := opts.loc()
	first, last := day.Sessions[0], day.Sessions[len(day.Sessions)-1]

	ev := cal.AddEvent(eventUID(opts.CourseName, day.Date, -1, 0, "study-block"))
	ev.SetDtStampTime(stamp)
	ev.SetStartAt(first.StartAt(loc))
	ev.SetEndAt(last.EndAt(loc))
	ev.SetSummary(blockSummary(opts.CourseName))
	if opts.Place != "" {
		ev.SetLocation(opts.Place)
	}
	ev.SetDescription(DayChecklist(day))
}

func blockSummary(course string) string {
	if course == "" {
		return "📚 Study Block"
	}
	return "📚 " + course + " - Study Block"
}

// DayChecklist renders a day's sessions as a tick-off list.
func DayChecklist(day scheduler.Day) string {
	var b strings.Builder
	b.WriteString("Classes for today:\n")
	for _, s := range day.Sessions {
		fmt.Fprintf(&b, "\n⬜ %s (%s)", s.Title, FormatDuration(s.DurationMin))
	}
	b.WriteString("\n\n✏️ Update ⬜ to ✅ as you complete each class!")
	return b.String()
}

// eventUID derives a stable UID so re-importing an export updates events
// instead of duplicating them.
func eventUID(course string, date time.Time, index, part int, title string) string {
	key := fmt.Sprintf("%s|%s|%d|%d|%s", course, date.Format(time.DateOnly), index, part, title)
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@studycal"
}

// FormatDuration renders minutes as HH:MM:SS, rounded to the second.
func FormatDuration(min float64) string {
	secs := int(math.Round(min * 60))
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
