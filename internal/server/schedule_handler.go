package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/export"
	"github.com/alexanderramin/studycal/internal/importer"
	"github.com/alexanderramin/studycal/internal/service"
	"github.com/gin-gonic/gin"
)

// Form defaults, matching the CLI.
const (
	defaultStartTime  = "19:00"
	defaultDailyHours = 1.0
	defaultMultiplier = 1.0
)

var defaultStudyDays = domain.NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)

// handleSchedule builds a plan from the web form and returns it as an
// attachment (ics, xlsx) or JSON.
// POST /api/v1/schedule
func (s *Server) handleSchedule(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(s.cfg.MaxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(c, fmt.Errorf("reading form: %w", err))
		return
	}
	ctx := c.Request.Context()

	format := strings.ToLower(strings.TrimSpace(c.DefaultPostForm("format", "ics")))
	if format != "json" {
		if _, err := export.ParseFormat(format); err != nil {
			writeError(c, err)
			return
		}
	}

	in, err := s.ingestForm(c)
	if err != nil {
		writeError(c, err)
		return
	}

	cfg, err := s.formConfig(c)
	if err != nil {
		writeError(c, err)
		return
	}

	save, err := formBool("save", c.PostForm("save"))
	if err != nil {
		writeError(c, err)
		return
	}

	name := strings.TrimSpace(c.PostForm("course_name"))
	if name == "" {
		name = in.Course
	}

	plan, err := s.plans.Generate(ctx, service.GenerateRequest{
		Name:   name,
		Source: in.Source,
		Items:  in.Items,
		Config: cfg,
		Save:   save,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if save {
		c.Header("X-Plan-ID", plan.ID)
	}
	if format == "json" {
		if save {
			Created(c, toPlanDTO(plan, true))
		} else {
			OK(c, toPlanDTO(plan, false))
		}
		return
	}

	opts := export.PlanOptions{Place: c.PostForm("place")}
	if opts.GroupByDay, err = formBool("group_by_day", c.PostForm("group_by_day")); err != nil {
		writeError(c, err)
		return
	}
	s.sendPlan(c, export.Format(format), plan, opts)
}

// ingestForm reads the course items named by list_type.
func (s *Server) ingestForm(c *gin.Context) (*service.Ingested, error) {
	ctx := c.Request.Context()

	switch listType := strings.ToLower(c.DefaultPostForm("list_type", "text")); listType {
	case "text", "udemy":
		return s.ingest.FromText(ctx, c.PostForm("class_input"))

	case "spreadsheet", "xlsx":
		data, err := s.formFile(c, "spreadsheet", s.cfg.MaxXLSXBytes)
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, &domain.ParseError{Field: "spreadsheet", Reason: "no file uploaded"}
		}
		return s.ingest.FromSpreadsheet(ctx, bytes.NewReader(data))

	case "html":
		data, err := s.formFile(c, "html", s.cfg.MaxHTMLBytes)
		if err != nil {
			return nil, err
		}
		html := string(data)
		if data == nil {
			html = c.PostForm("class_input")
			if int64(len(html)) > s.cfg.MaxHTMLBytes {
				return nil, fmt.Errorf("html: %w", errUploadTooLarge)
			}
		}
		if strings.TrimSpace(html) == "" {
			return nil, &domain.ParseError{Field: "html", Reason: "no page uploaded"}
		}
		return s.ingest.FromHTML(ctx, html)

	default:
		return nil, &domain.ParseError{Field: "list_type", Value: listType, Reason: "expected text, spreadsheet or html"}
	}
}

// formFile reads an uploaded file, or returns nil data when the field is absent.
func (s *Server) formFile(c *gin.Context, field string, limit int64) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s upload: %w", field, err)
	}
	if fh.Size > limit {
		return nil, fmt.Errorf("%s (%d bytes, limit %d): %w", field, fh.Size, limit, errUploadTooLarge)
	}
	return readUpload(fh)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// formConfig builds the schedule settings from the form, falling back to
// the defaults for blank fields.
func (s *Server) formConfig(c *gin.Context) (domain.ScheduleConfig, error) {
	var cfg domain.ScheduleConfig

	tz := strings.TrimSpace(c.PostForm("timezone"))
	if tz == "" {
		tz = s.cfg.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, &domain.ParseError{Field: "timezone", Value: tz, Reason: "unknown time zone"}
	}
	cfg.Location = loc

	cfg.StartDate = domain.DateOf(s.cfg.Now().In(loc))
	if v := strings.TrimSpace(c.PostForm("start_date")); v != "" {
		if cfg.StartDate, err = domain.ParseDate(v); err != nil {
			return cfg, err
		}
	}

	if cfg.Weekdays, err = formWeekdays(c.PostFormArray("study_days")); err != nil {
		return cfg, err
	}

	if cfg.DailyStart, err = domain.ParseClock(c.DefaultPostForm("start_time", defaultStartTime)); err != nil {
		return cfg, err
	}

	hours := c.PostForm("daily_hours")
	if hours == "" {
		hours = c.PostForm("daily_study_limit_hours")
	}
	if cfg.DailyHourCap, err = formFloat("daily_hours", hours, defaultDailyHours); err != nil {
		return cfg, err
	}
	if cfg.Multiplier, err = formFloat("multiplier", c.PostForm("multiplier"), defaultMultiplier); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// formWeekdays reads repeated study_days values. Each is a Monday-first
// index (0-6) or a weekday list such as "mon,wed". No values at all means
// Monday to Friday.
func formWeekdays(values []string) (domain.WeekdaySet, error) {
	var set domain.WeekdaySet
	seen := false
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen = true
		if i, err := strconv.Atoi(v); err == nil {
			d, err := domain.WeekdayFromIndex(i)
			if err != nil {
				return 0, err
			}
			set = set.With(d)
			continue
		}
		days, err := domain.ParseWeekdays(v)
		if err != nil {
			return 0, err
		}
		set |= days
	}
	if !seen {
		return defaultStudyDays, nil
	}
	return set, nil
}

func formFloat(field, v string, fallback float64) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil {
		return 0, &domain.ParseError{Field: field, Value: v, Reason: "expected a number"}
	}
	return f, nil
}

func formBool(field, v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off", "no":
		return false, nil
	case "1", "true", "on", "yes":
		return true, nil
	default:
		return false, &domain.ParseError{Field: field, Value: v, Reason: "expected true or false"}
	}
}

// handleSample serves the sample spreadsheet template.
// GET /api/v1/sample
func (s *Server) handleSample(c *gin.Context) {
	buf, err := importer.SampleSpreadsheet()
	if err != nil {
		writeError(c, fmt.Errorf("building sample: %w", err))
		return
	}
	sendAttachment(c, "sample_spreadsheet.xlsx", export.FormatXLSX.ContentType(), buf.Bytes())
}

// sendPlan exports p in format f as a download.
func (s *Server) sendPlan(c *gin.Context, f export.Format, p *domain.Plan, opts export.PlanOptions) {
	var buf bytes.Buffer
	if err := export.WritePlan(&buf, f, p, opts); err != nil {
		writeError(c, fmt.Errorf("exporting %s: %w", f, err))
		return
	}
	sendAttachment(c, f.Filename(p.Name), f.ContentType(), buf.Bytes())
}

func sendAttachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}
