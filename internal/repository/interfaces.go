package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
)

// PlanSummary is a list row: plan header plus aggregates over its sessions.
type PlanSummary struct {
	ID           string
	Name         string
	Source       string
	StartDate    time.Time
	LastDate     *time.Time
	SessionCount int
	TotalMin     float64
	CreatedAt    time.Time
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetByPrefix(ctx context.Context, prefix string) (*domain.Plan, error)
	List(ctx context.Context, limit int) ([]PlanSummary, error)
	Delete(ctx context.Context, id string) error
}
