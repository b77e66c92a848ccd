package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, r *Room) error
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error

	AddImage(ctx context.Context, img *Image) error
	GetImageByID(ctx context.Context, id string) (*Image, error)
	ListImages(ctx context.Context, roomID string) ([]*Image, error)
	DeleteImage(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("floor_id", "room_number", "room_type", "price", "is_available").
		Values(rm.FloorID, rm.RoomNumber, rm.RoomType, rm.Price, rm.IsAvailable).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateNumber
		}
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.floor_id", "h.id", "h.name",
		"r.room_number", "r.room_type", "r.price", "r.is_available",
		"r.created_at", "r.updated_at",
	).
		From("public.rooms r").
		Join("public.floors f ON r.floor_id = f.id").
		Join("public.hostels h ON f.hostel_id = h.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	var rm Room
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&rm.ID, &rm.FloorID, &rm.HostelID, &rm.HostelName,
		&rm.RoomNumber, &rm.RoomType, &rm.Price, &rm.IsAvailable,
		&rm.CreatedAt, &rm.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"r.id", "r.floor_id", "h.id", "h.name",
		"r.room_number", "r.room_type", "r.price", "r.is_available",
		"r.created_at", "r.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.rooms r").
		Join("public.floors f ON r.floor_id = f.id").
		Join("public.hostels h ON f.hostel_id = h.id")

	if filter.FloorID != "" {
		query = query.Where(squirrel.Eq{"r.floor_id": filter.FloorID})
	}
	if filter.HostelID != "" {
		query = query.Where(squirrel.Eq{"h.id": filter.HostelID})
	}
	if filter.AvailableOnly {
		query = query.Where(squirrel.Eq{"r.is_available": true})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("r.room_number ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	var total int

	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.FloorID, &rm.HostelID, &rm.HostelName,
			&rm.RoomNumber, &rm.RoomType, &rm.Price, &rm.IsAvailable,
			&rm.CreatedAt, &rm.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}

	return rooms, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("room_number", rm.RoomNumber).
		Set("room_type", rm.RoomType).
		Set("price", rm.Price).
		Set("is_available", rm.IsAvailable).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rm.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateNumber
		}
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("is_available", available).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set availability query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set room availability failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddImage(ctx context.Context, img *Image) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.room_images").
		Columns("room_id", "path", "thumb_path").
		Values(img.RoomID, img.Path, img.ThumbPath).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add room image query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&img.ID, &img.CreatedAt)
}

func (r *pgxRepository) GetImageByID(ctx context.Context, id string) (*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "room_id", "path", "thumb_path", "created_at").
		From("public.room_images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room image query failed: %w", err)
	}

	var img Image
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&img.ID, &img.RoomID, &img.Path, &img.ThumbPath, &img.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("get room image failed: %w", err)
	}
	return &img, nil
}

func (r *pgxRepository) ListImages(ctx context.Context, roomID string) ([]*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "room_id", "path", "thumb_path", "created_at").
		From("public.room_images").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list room images query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list room images failed: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.RoomID, &img.Path, &img.ThumbPath, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room image failed: %w", err)
		}
		images = append(images, &img)
	}
	return images, nil
}

func (r *pgxRepository) DeleteImage(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.room_images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room image query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}
