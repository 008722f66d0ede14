package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing room photo metadata.
type Repository interface {
	Insert(ctx context.Context, photo *RoomPhoto) error
	GetByID(ctx context.Context, id string) (*RoomPhoto, error)
	ListForRoom(ctx context.Context, roomID string) ([]*RoomPhoto, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new room photo repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const photoColumns = "id, company_id, room_id, file_name, content_type, size_bytes, path, thumbnail_path, created_at"

func (r *pgxRepository) Insert(ctx context.Context, photo *RoomPhoto) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.room_photos").
		Columns("company_id", "room_id", "file_name", "content_type", "size_bytes", "path", "thumbnail_path").
		Values(photo.CompanyID, photo.RoomID, photo.FileName, photo.ContentType, photo.SizeBytes, photo.Path, photo.ThumbnailPath).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert photo query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&photo.ID, &photo.CreatedAt); err != nil {
		return fmt.Errorf("insert photo failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*RoomPhoto, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(photoColumns).
		From("public.room_photos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get photo query failed: %w", err)
	}

	var p RoomPhoto
	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&p.ID, &p.CompanyID, &p.RoomID, &p.FileName, &p.ContentType, &p.SizeBytes, &p.Path, &p.ThumbnailPath, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get photo failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListForRoom(ctx context.Context, roomID string) ([]*RoomPhoto, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(photoColumns).
		From("public.room_photos").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list photos query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list photos failed: %w", err)
	}
	defer rows.Close()

	var photos []*RoomPhoto
	for rows.Next() {
		var p RoomPhoto
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.RoomID, &p.FileName, &p.ContentType, &p.SizeBytes, &p.Path, &p.ThumbnailPath, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo failed: %w", err)
		}
		photos = append(photos, &p)
	}
	return photos, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.room_photos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete photo query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete photo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
