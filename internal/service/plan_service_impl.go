package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studycal/internal/db"
	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/normalizer"
	"github.com/alexanderramin/studycal/internal/repository"
	"github.com/alexanderramin/studycal/internal/scheduler"
	"github.com/google/uuid"
)

// DefaultPlanName is used when a course has no name.
const DefaultPlanName = "Study Plan"

type planService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

// NewPlanService creates a PlanService. A nil uow disables saving;
// Generate then fails for requests with Save set.
func NewPlanService(plans repository.PlanRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:    plans,
		uow:      uow,
		observer: combineObservers(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ErrStorageDisabled is returned when saving is requested without a database.
var ErrStorageDisabled = errors.New("plan storage is not configured")

func (s *planService) Generate(ctx context.Context, req GenerateRequest) (plan *domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"source": req.Source,
		"items":  len(req.Items),
		"save":   req.Save,
	}
	defer observe(ctx, s.observer, "generate-plan", startedAt, fields, &err)

	items, err := normalizer.Normalize(req.Items)
	if err != nil {
		return nil, err
	}
	sessions, err := scheduler.Schedule(items, req.Config)
	if err != nil {
		return nil, err
	}
	fields["sessions"] = len(sessions)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultPlanName
	}
	plan = &domain.Plan{
		ID:        uuid.New().String(),
		Name:      name,
		Source:    req.Source,
		Config:    req.Config,
		Items:     items,
		Sessions:  sessions,
		CreatedAt: s.now().Truncate(time.Second),
	}

	if !req.Save {
		return plan, nil
	}
	if s.uow == nil {
		return nil, ErrStorageDisabled
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanRepo(tx).Create(ctx, plan)
	})
	if err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}
	fields["plan_id"] = plan.ID
	return plan, nil
}

// Get accepts a full plan ID or a unique prefix of one.
func (s *planService) Get(ctx context.Context, idOrPrefix string) (*domain.Plan, error) {
	if s.plans == nil {
		return nil, ErrStorageDisabled
	}
	return resolvePlan(ctx, s.plans, idOrPrefix)
}

func resolvePlan(ctx context.Context, plans repository.PlanRepo, idOrPrefix string) (*domain.Plan, error) {
	p, err := plans.GetByID(ctx, idOrPrefix)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return p, err
	}
	return plans.GetByPrefix(ctx, idOrPrefix)
}

func (s *planService) List(ctx context.Context, limit int) ([]repository.PlanSummary, error) {
	if s.plans == nil {
		return nil, ErrStorageDisabled
	}
	return s.plans.List(ctx, limit)
}

// Delete resolves idOrPrefix and removes the plan in one transaction.
func (s *planService) Delete(ctx context.Context, idOrPrefix string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan": idOrPrefix}
	defer observe(ctx, s.observer, "delete-plan", startedAt, fields, &err)

	if s.uow == nil {
		return ErrStorageDisabled
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanRepo(tx)
		p, err := resolvePlan(ctx, repo, idOrPrefix)
		if err != nil {
			return err
		}
		fields["plan_id"] = p.ID
		return repo.Delete(ctx, p.ID)
	})
}
