package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/studycal/internal/importer"
	"github.com/alexanderramin/studycal/internal/intelligence"
)

// ErrExtractionDisabled is returned by FromHTML when no LLM is configured.
var ErrExtractionDisabled = errors.New("HTML extraction requires an LLM; set STUDYCAL_LLM_ENABLED=true")

type ingestService struct {
	extractor intelligence.CourseExtractService
	observer  UseCaseObserver
}

// NewIngestService creates an IngestService. extractor may be nil, in which
// case HTML ingestion is unavailable.
func NewIngestService(extractor intelligence.CourseExtractService, observers ...UseCaseObserver) IngestService {
	return &ingestService{
		extractor: extractor,
		observer:  combineObservers(observers),
	}
}

func (s *ingestService) FromText(ctx context.Context, text string) (in *Ingested, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"bytes": len(text)}
	defer observe(ctx, s.observer, "ingest-text", startedAt, fields, &err)

	items, err := importer.ParseText(text)
	if err != nil {
		return nil, err
	}
	fields["items"] = len(items)
	return &Ingested{Source: SourceText, Items: items}, nil
}

func (s *ingestService) FromSpreadsheet(ctx context.Context, r io.Reader) (in *Ingested, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "ingest-spreadsheet", startedAt, fields, &err)

	items, err := importer.ParseSpreadsheet(r)
	if err != nil {
		return nil, err
	}
	fields["items"] = len(items)
	return &Ingested{Source: SourceSpreadsheet, Items: items}, nil
}

func (s *ingestService) FromCourseFile(ctx context.Context, data []byte) (in *Ingested, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"bytes": len(data)}
	defer observe(ctx, s.observer, "ingest-course-file", startedAt, fields, &err)

	cf, err := importer.ParseCourseFile(data)
	if err != nil {
		return nil, err
	}
	if errs := importer.ValidateCourseFile(cf); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}
	items := importer.ToRawItems(cf)
	fields["items"] = len(items)
	return &Ingested{
		Course:   cf.Course,
		Source:   SourceCourseFile,
		Items:    items,
		Skipped:  len(cf.Items) - len(items),
		Schedule: cf.Schedule,
	}, nil
}

func (s *ingestService) FromHTML(ctx context.Context, html string) (in *Ingested, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"bytes": len(html)}
	defer observe(ctx, s.observer, "ingest-html", startedAt, fields, &err)

	if s.extractor == nil {
		return nil, ErrExtractionDisabled
	}
	ex, err := s.extractor.Extract(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("extracting course: %w", err)
	}
	fields["items"] = len(ex.Items)
	fields["skipped"] = ex.Skipped
	fields["model"] = ex.Model
	return &Ingested{
		Course:  ex.Course,
		Source:  SourceHTML,
		Items:   ex.Items,
		Skipped: ex.Skipped,
	}, nil
}
