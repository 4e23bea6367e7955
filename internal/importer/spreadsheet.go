package importer

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/studycal/internal/domain"
)

// Spreadsheet columns, zero-based.
const (
	colModule = iota
	colTitle
	colNotes
	colDuration
	colDone
)

var sampleHeader = []string{"Module", "Title", "Notes", "Duration", "Done"}

// ParseSpreadsheet reads course items from the active sheet of an xlsx
// workbook. The first row is a header. Rows with an empty module column,
// rows marked done with "x", and rows without a duration are skipped.
func ParseSpreadsheet(r io.Reader) ([]domain.RawItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &domain.ParseError{Field: "spreadsheet", Reason: fmt.Sprintf("cannot open workbook: %v", err)}
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	var items []domain.RawItem
	for i, row := range rows {
		if i == 0 {
			continue
		}
		module := cellAt(row, colModule)
		if module == "" {
			continue
		}
		if strings.EqualFold(cellAt(row, colDone), "x") {
			continue
		}
		dur, ok := cellDuration(cellAt(row, colDuration))
		if !ok {
			continue
		}
		items = append(items, domain.RawItem{
			Title:    moduleTitle(module, cellAt(row, colTitle)),
			Duration: dur,
		})
	}

	if len(items) == 0 {
		return nil, &domain.ParseError{Field: "spreadsheet", Value: sheet, Reason: "no course items found"}
	}
	return items, nil
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// cellDuration turns a raw duration cell into text the normalizer accepts.
// Time-formatted cells arrive as a fraction of a day; whole numbers are
// taken as minutes.
func cellDuration(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	if strings.Contains(v, ":") {
		return v, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v, true
	}
	if f <= 0 {
		return "", false
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64), true
	}
	secs := int(math.Round(f * 24 * 60 * 60))
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60), true
}

// sampleWidths are the template's column widths, keyed by column range.
var sampleWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 14},
	{"B", "B", 40},
	{"C", "C", 24},
	{"D", "E", 10},
}

// SampleSpreadsheet builds the template workbook users fill in.
func SampleSpreadsheet() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Course"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for _, w := range sampleWidths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("sizing columns %s:%s: %w", w.from, w.to, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &sampleHeader); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}

	// nil leaves a cell blank; durations get a time number format.
	rows := [][]any{
		{"Day 1", "Welcome and course overview", nil, 5*time.Minute + 30*time.Second, "x"},
		{"Day 1", "Setting up the environment", nil, 12 * time.Minute, nil},
		{"Day 2", "Variables and types", "rewatch", 25*time.Minute + 15*time.Second, nil},
		{"Day 2", "Control flow", nil, 18 * time.Minute, nil},
		{"Day 3", "Project: building a CLI", nil, 1*time.Hour + 10*time.Minute, nil},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return f.WriteToBuffer()
}
