package service

import (
	"context"
	"io"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/importer"
	"github.com/alexanderramin/studycal/internal/repository"
)

// GenerateRequest carries everything needed to build one plan.
type GenerateRequest struct {
	Name   string
	Source string
	Items  []domain.RawItem
	Config domain.ScheduleConfig
	Save   bool
}

type PlanService interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.Plan, error)
	Get(ctx context.Context, idOrPrefix string) (*domain.Plan, error)
	List(ctx context.Context, limit int) ([]repository.PlanSummary, error)
	Delete(ctx context.Context, idOrPrefix string) error
}

// Ingested is a course read from one of the supported input formats.
type Ingested struct {
	Course   string
	Source   string
	Items    []domain.RawItem
	Skipped  int
	Schedule *importer.ScheduleImport // schedule defaults, course files only
}

type IngestService interface {
	FromText(ctx context.Context, text string) (*Ingested, error)
	FromSpreadsheet(ctx context.Context, r io.Reader) (*Ingested, error)
	FromCourseFile(ctx context.Context, data []byte) (*Ingested, error)
	FromHTML(ctx context.Context, html string) (*Ingested, error)
}

// Ingestion source names, stored with saved plans.
const (
	SourceText        = "text"
	SourceSpreadsheet = "xlsx"
	SourceCourseFile  = "json"
	SourceHTML        = "html"
)
