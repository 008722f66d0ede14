package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/meeting-room-backend/internal/metrics"
)

// Stats aggregates reservation counts for a company dashboard.
type Stats struct {
	Total    int
	ByStatus map[Status]int
	TopRooms []RoomUsage
}

// RoomUsage counts reservations per room.
type RoomUsage struct {
	RoomID   string
	RoomName string
	Count    int
}

// Repository defines methods for accessing reservation data.
//
// CreateValidated and UpdateValidated run the supplied validate callback
// inside a transaction that holds a row lock on the room, so two concurrent
// writers for the same room serialize: the second sees the first's row and
// its conflict check fails. This is the only write path for time windows.
type Repository interface {
	CreateValidated(ctx context.Context, res *Reservation, validate func(existing []*Reservation) error) error
	UpdateValidated(ctx context.Context, res *Reservation, validate func(existing []*Reservation) error) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ListForRoomBetween returns the room's blocking reservations overlapping
	// [from, to), ordered by start time.
	ListForRoomBetween(ctx context.Context, roomID string, from, to time.Time) ([]*Reservation, error)
	// CountOverlapping counts blocking reservations overlapping [start, end),
	// excluding excludeID when non-empty.
	CountOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) (int, error)
	Stats(ctx context.Context, companyID string, from time.Time) (*Stats, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new reservation repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const reservationColumns = `r.id, r.company_id, r.room_id, r.user_id, r.title, r.description,
	r.start_time, r.end_time, r.participant_count, r.remarks, r.status, r.created_at, r.updated_at`

func scanReservation(row pgx.Row, res *Reservation, extra ...any) error {
	dest := []any{
		&res.ID, &res.CompanyID, &res.RoomID, &res.UserID, &res.Title, &res.Description,
		&res.StartTime, &res.EndTime, &res.ParticipantCount, &res.Remarks, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) CreateValidated(ctx context.Context, res *Reservation, validate func(existing []*Reservation) error) error {
	defer metrics.TrackDBOperation("reservation_create")(time.Now())

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create reservation tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := lockRoomAndListBlocking(ctx, tx, res.RoomID, res.StartTime, res.EndTime)
	if err != nil {
		return err
	}
	if err := validate(existing); err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns("company_id", "room_id", "user_id", "title", "description",
			"start_time", "end_time", "participant_count", "remarks", "status").
		Values(res.CompanyID, res.RoomID, res.UserID, res.Title, res.Description,
			res.StartTime, res.EndTime, res.ParticipantCount, res.Remarks, res.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return fmt.Errorf("create reservation failed: %w", err)
	}

	if err := replaceParticipants(ctx, tx, res.ID, res.ParticipantIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create reservation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateValidated(ctx context.Context, res *Reservation, validate func(existing []*Reservation) error) error {
	defer metrics.TrackDBOperation("reservation_update")(time.Now())

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update reservation tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := lockRoomAndListBlocking(ctx, tx, res.RoomID, res.StartTime, res.EndTime)
	if err != nil {
		return err
	}
	if err := validate(existing); err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("title", res.Title).
		Set("description", res.Description).
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("participant_count", res.ParticipantCount).
		Set("remarks", res.Remarks).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := replaceParticipants(ctx, tx, res.ID, res.ParticipantIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update reservation failed: %w", err)
	}
	return nil
}

// lockRoomAndListBlocking takes a row lock on the room and returns its
// blocking reservations overlapping [start, end). The lock is held until the
// surrounding transaction ends.
func lockRoomAndListBlocking(ctx context.Context, tx pgx.Tx, roomID string, start, end time.Time) ([]*Reservation, error) {
	var lockedID string
	if err := tx.QueryRow(ctx, "SELECT id FROM public.rooms WHERE id = $1 FOR UPDATE", roomID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("lock room failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "status", "start_time", "end_time").
		From("public.reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": blockingStatusStrings()}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlapping reservations query failed: %w", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list overlapping reservations failed: %w", err)
	}
	defer rows.Close()

	var existing []*Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(&res.ID, &res.Status, &res.StartTime, &res.EndTime); err != nil {
			return nil, fmt.Errorf("scan overlapping reservation failed: %w", err)
		}
		existing = append(existing, &res)
	}
	return existing, nil
}

func replaceParticipants(ctx context.Context, tx pgx.Tx, reservationID string, participantIDs []string) error {
	if _, err := tx.Exec(ctx, "DELETE FROM public.reservation_participants WHERE reservation_id = $1", reservationID); err != nil {
		return fmt.Errorf("clear reservation participants failed: %w", err)
	}
	if len(participantIDs) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Insert("public.reservation_participants").Columns("reservation_id", "user_id")
	for _, uid := range participantIDs {
		builder = builder.Values(reservationID, uid)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert participants query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert reservation participants failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reservationColumns, "rm.name AS room_name", "COALESCE(u.display_name, u.email) AS user_name").
		From("public.reservations r").
		Join("public.rooms rm ON rm.id = r.room_id").
		Join("public.users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	var res Reservation
	row := r.pool.QueryRow(ctx, query, args...)
	if err := scanReservation(row, &res, &res.RoomName, &res.UserName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}

	ids, err := r.participantIDs(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	res.ParticipantIDs = ids

	return &res, nil
}

func (r *pgxRepository) participantIDs(ctx context.Context, reservationID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT user_id FROM public.reservation_participants WHERE reservation_id = $1", reservationID)
	if err != nil {
		return nil, fmt.Errorf("list reservation participants failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan participant failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	defer metrics.TrackDBOperation("reservation_list")(time.Now())

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(reservationColumns,
		"rm.name AS room_name", "COALESCE(u.display_name, u.email) AS user_name",
		"count(*) OVER() AS total_count",
	).
		From("public.reservations r").
		Join("public.rooms rm ON rm.id = r.room_id").
		Join("public.users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.company_id": filter.CompanyID})

	if filter.RoomID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"r.room_id": filter.RoomID})
	}
	if filter.UserID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"r.user_id": filter.UserID})
	}
	if filter.Status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"r.status": filter.Status})
	}
	if filter.StartFrom != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"r.start_time": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		queryBuilder = queryBuilder.Where(squirrel.Lt{"r.start_time": *filter.StartTo})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		queryBuilder = queryBuilder.Where(squirrel.Or{
			squirrel.ILike{"r.title": pattern},
			squirrel.ILike{"r.description": pattern},
		})
	}

	queryBuilder = queryBuilder.OrderBy("r.start_time DESC")

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
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		var res Reservation
		if err := scanReservation(rows, &res, &res.RoomName, &res.UserName, &total); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update reservation status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListForRoomBetween(ctx context.Context, roomID string, from, to time.Time) ([]*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "company_id", "room_id", "user_id", "title", "status", "start_time", "end_time").
		From("public.reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": blockingStatusStrings()}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build room schedule query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list room schedule failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(&res.ID, &res.CompanyID, &res.RoomID, &res.UserID, &res.Title, &res.Status, &res.StartTime, &res.EndTime); err != nil {
			return nil, fmt.Errorf("scan room schedule row failed: %w", err)
		}
		reservations = append(reservations, &res)
	}
	return reservations, nil
}

func (r *pgxRepository) CountOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select("count(*)").
		From("public.reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": blockingStatusStrings()}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != "" {
		queryBuilder = queryBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count overlapping query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overlapping reservations failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) Stats(ctx context.Context, companyID string, from time.Time) (*Stats, error) {
	defer metrics.TrackDBOperation("reservation_stats")(time.Now())

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("status", "count(*)").
		From("public.reservations").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.GtOrEq{"created_at": from}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reservation stats query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reservation stats failed: %w", err)
	}
	defer rows.Close()

	stats := &Stats{ByStatus: make(map[Status]int)}
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan reservation stats failed: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}

	roomQuery, roomArgs, err := psql.Select("r.room_id", "rm.name", "count(*)").
		From("public.reservations r").
		Join("public.rooms rm ON rm.id = r.room_id").
		Where(squirrel.Eq{"r.company_id": companyID}).
		Where(squirrel.GtOrEq{"r.created_at": from}).
		GroupBy("r.room_id", "rm.name").
		OrderBy("count(*) DESC").
		Limit(5).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build room usage query failed: %w", err)
	}

	roomRows, err := r.pool.Query(ctx, roomQuery, roomArgs...)
	if err != nil {
		return nil, fmt.Errorf("room usage stats failed: %w", err)
	}
	defer roomRows.Close()

	for roomRows.Next() {
		var usage RoomUsage
		if err := roomRows.Scan(&usage.RoomID, &usage.RoomName, &usage.Count); err != nil {
			return nil, fmt.Errorf("scan room usage failed: %w", err)
		}
		stats.TopRooms = append(stats.TopRooms, usage)
	}

	return stats, nil
}

func blockingStatusStrings() []string {
	out := make([]string, len(BlockingStatuses))
	for i, s := range BlockingStatuses {
		out[i] = string(s)
	}
	return out
}
