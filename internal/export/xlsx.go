package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/studycal/internal/domain"
)

const sessionSheet = "Schedule"

var xlsxHeader = []string{"Date", "Weekday", "Start", "End", "Minutes", "Title", "Part", "Done"}

var xlsxWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 12},
	{"B", "D", 10},
	{"E", "E", 9},
	{"F", "F", 48},
	{"G", "H", 7},
}

// WriteXLSX writes sessions as a workbook with one row per session. The
// Done column is left blank for the user to tick off.
func WriteXLSX(w io.Writer, sessions []domain.StudySession, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sessionSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for _, w := range xlsxWidths {
		if err := f.SetColWidth(sessionSheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("sizing columns %s:%s: %w", w.from, w.to, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetSheetRow(sessionSheet, "A1", &xlsxHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sessionSheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetPanes(sessionSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	for i, s := range sessions {
		start, end := s.StartAt(loc), s.EndAt(loc)
		part := ""
		if s.Split() {
			part = fmt.Sprintf("%d/%d", s.Part, s.Parts)
		}
		row := []any{
			s.Date.Format(time.DateOnly),
			s.Date.Weekday().String()[:3],
			start.Format("15:04"),
			end.Format("15:04"),
			math.Round(s.DurationMin*100) / 100,
			s.Title,
			part,
			"",
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sessionSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
