package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConfigRepository stores per-company reservation policies. Durations are
// persisted as whole minutes.
type ConfigRepository interface {
	// Get returns the company's stored policy, or DefaultConfig when the
	// company has never customized one.
	Get(ctx context.Context, companyID string) (Config, error)
	Upsert(ctx context.Context, cfg *Config) error
}

type pgxConfigRepository struct {
	pool *pgxpool.Pool
}

// NewPgxConfigRepository creates a new reservation config repository.
func NewPgxConfigRepository(pool *pgxpool.Pool) ConfigRepository {
	return &pgxConfigRepository{pool: pool}
}

func (r *pgxConfigRepository) Get(ctx context.Context, companyID string) (Config, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"company_id", "max_advance_days", "min_duration_minutes", "max_duration_minutes",
		"allow_weekend_booking", "work_start", "work_end", "require_approval", "auto_approval",
		"created_at", "updated_at",
	).
		From("public.reservation_configs").
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()
	if err != nil {
		return Config{}, fmt.Errorf("build get reservation config query failed: %w", err)
	}

	var cfg Config
	var minMinutes, maxMinutes int
	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(
		&cfg.CompanyID, &cfg.MaxAdvanceDays, &minMinutes, &maxMinutes,
		&cfg.AllowWeekendBooking, &cfg.WorkStart, &cfg.WorkEnd, &cfg.RequireApproval, &cfg.AutoApproval,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DefaultConfig(companyID), nil
		}
		return Config{}, fmt.Errorf("get reservation config failed: %w", err)
	}

	cfg.MinDuration = time.Duration(minMinutes) * time.Minute
	cfg.MaxDuration = time.Duration(maxMinutes) * time.Minute
	return cfg, nil
}

func (r *pgxConfigRepository) Upsert(ctx context.Context, cfg *Config) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservation_configs").
		Columns("company_id", "max_advance_days", "min_duration_minutes", "max_duration_minutes",
			"allow_weekend_booking", "work_start", "work_end", "require_approval", "auto_approval").
		Values(cfg.CompanyID, cfg.MaxAdvanceDays, int(cfg.MinDuration/time.Minute), int(cfg.MaxDuration/time.Minute),
			cfg.AllowWeekendBooking, cfg.WorkStart, cfg.WorkEnd, cfg.RequireApproval, cfg.AutoApproval).
		Suffix(`ON CONFLICT (company_id) DO UPDATE SET
			max_advance_days = EXCLUDED.max_advance_days,
			min_duration_minutes = EXCLUDED.min_duration_minutes,
			max_duration_minutes = EXCLUDED.max_duration_minutes,
			allow_weekend_booking = EXCLUDED.allow_weekend_booking,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			require_approval = EXCLUDED.require_approval,
			auto_approval = EXCLUDED.auto_approval,
			updated_at = now()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert reservation config query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return fmt.Errorf("upsert reservation config failed: %w", err)
	}
	return nil
}
