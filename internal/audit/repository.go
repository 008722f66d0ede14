package audit

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for storing and querying audit entries.
type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new audit repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Insert(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.audit_log").
		Columns("company_id", "user_id", "action", "entity", "entity_id", "description", "ip_address", "user_agent").
		Values(e.CompanyID, e.UserID, e.Action, e.Entity, e.EntityID, e.Description, e.IP, e.UserAgent).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert audit entry query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.Timestamp); err != nil {
		return fmt.Errorf("insert audit entry failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"id", "company_id", "user_id", "action", "entity", "entity_id",
		"description", "ip_address", "user_agent", "created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.audit_log").
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.UserID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Action != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"action": filter.Action})
	}
	if filter.Entity != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"entity": filter.Entity})
	}
	if filter.From != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"created_at": *filter.To})
	}

	queryBuilder = queryBuilder.OrderBy("created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list audit entries query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries failed: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	var total int

	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.UserID, &e.Action, &e.Entity, &e.EntityID,
			&e.Description, &e.IP, &e.UserAgent, &e.Timestamp, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan audit entry failed: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, total, nil
}
