package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studycal/internal/db"
	"github.com/alexanderramin/studycal/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database. A plan is
// stored across three tables; Create should run inside a transaction so a
// partial write never becomes visible.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, name, source, start_date, weekdays, daily_start_sec, daily_hour_cap, multiplier, timezone, created_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Source,
		p.Config.StartDate.Format(dateLayout),
		int(p.Config.Weekdays),
		int64(p.Config.DailyStart/time.Second),
		p.Config.DailyHourCap,
		p.Config.Multiplier,
		locationName(p.Config.Location),
		p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for seq, it := range p.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_items (plan_id, seq, title, raw_duration, duration_min) VALUES (?, ?, ?, ?, ?)`,
			p.ID, seq, it.Title, it.RawDuration, it.DurationMin,
		)
		if err != nil {
			return fmt.Errorf("inserting plan item %d: %w", seq, err)
		}
	}

	for seq, s := range p.Sessions {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_sessions (plan_id, seq, date, start_ns, end_ns, duration_min, title, source_index, part, parts)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, seq, s.Date.Format(dateLayout), int64(s.Start), int64(s.End),
			s.DurationMin, s.Title, s.SourceIndex, s.Part, s.Parts,
		)
		if err != nil {
			return fmt.Errorf("inserting plan session %d: %w", seq, err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByPrefix resolves a plan from a leading fragment of its ID, as typed
// on the command line.
func (r *SQLitePlanRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.Plan, error) {
	if prefix == "" {
		return nil, fmt.Errorf("plan: %w", ErrNotFound)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM plans WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("resolving plan prefix: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning plan id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("plan %q: %w", prefix, ErrNotFound)
	case 1:
		return r.GetByID(ctx, ids[0])
	default:
		return nil, fmt.Errorf("plan %q: %w", prefix, ErrAmbiguous)
	}
}

// List returns plan summaries, newest first. A limit <= 0 returns every plan.
func (r *SQLitePlanRepo) List(ctx context.Context, limit int) ([]PlanSummary, error) {
	query := `SELECT p.id, p.name, p.source, p.start_date, p.created_at,
			MAX(s.date), COUNT(s.seq), COALESCE(SUM(s.duration_min), 0)
		FROM plans p
		LEFT JOIN plan_sessions s ON s.plan_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []PlanSummary
	for rows.Next() {
		var ps PlanSummary
		var startStr, createdStr string
		var lastStr sql.NullString
		if err := rows.Scan(&ps.ID, &ps.Name, &ps.Source, &startStr, &createdStr,
			&lastStr, &ps.SessionCount, &ps.TotalMin); err != nil {
			return nil, fmt.Errorf("scanning plan summary: %w", err)
		}
		if ps.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		if ps.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		ps.LastDate = parseNullableTime(lastStr, dateLayout)
		out = append(out, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return out, nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plan %q: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePlanRepo) loadChildren(ctx context.Context, p *domain.Plan) error {
	itemRows, err := r.db.QueryContext(ctx,
		`SELECT seq, title, raw_duration, duration_min FROM plan_items WHERE plan_id = ? ORDER BY seq`, p.ID)
	if err != nil {
		return fmt.Errorf("listing plan items: %w", err)
	}
	for itemRows.Next() {
		var it domain.CourseItem
		if err := itemRows.Scan(&it.Index, &it.Title, &it.RawDuration, &it.DurationMin); err != nil {
			itemRows.Close()
			return fmt.Errorf("scanning plan item: %w", err)
		}
		p.Items = append(p.Items, it)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("iterating plan items: %w", err)
	}

	sessRows, err := r.db.QueryContext(ctx,
		`SELECT date, start_ns, end_ns, duration_min, title, source_index, part, parts
		FROM plan_sessions WHERE plan_id = ? ORDER BY seq`, p.ID)
	if err != nil {
		return fmt.Errorf("listing plan sessions: %w", err)
	}
	defer sessRows.Close()
	for sessRows.Next() {
		var s domain.StudySession
		var dateStr string
		var startNs, endNs int64
		if err := sessRows.Scan(&dateStr, &startNs, &endNs, &s.DurationMin,
			&s.Title, &s.SourceIndex, &s.Part, &s.Parts); err != nil {
			return fmt.Errorf("scanning plan session: %w", err)
		}
		if s.Date, err = time.Parse(dateLayout, dateStr); err != nil {
			return fmt.Errorf("parsing session date: %w", err)
		}
		s.Start = time.Duration(startNs)
		s.End = time.Duration(endNs)
		p.Sessions = append(p.Sessions, s)
	}
	if err := sessRows.Err(); err != nil {
		return fmt.Errorf("iterating plan sessions: %w", err)
	}
	return nil
}

// scanPlan scans a single plan header row.
func scanPlan(row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var startStr, tzName, createdStr string
	var weekdays int
	var startSec int64

	err := row.Scan(
		&p.ID, &p.Name, &p.Source,
		&startStr, &weekdays, &startSec,
		&p.Config.DailyHourCap, &p.Config.Multiplier,
		&tzName, &createdStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	if p.Config.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.Config.Location, err = loadLocation(tzName); err != nil {
		return nil, err
	}
	p.Config.Weekdays = domain.WeekdaySet(weekdays)
	p.Config.DailyStart = time.Duration(startSec) * time.Second
	return &p, nil
}
