package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatusIfCurrent transitions the booking from one status to
	// another in a single conditional UPDATE. It reports false when the
	// booking no longer has the expected status, which is how concurrent
	// deciders lose the race without ever observing each other.
	UpdateStatusIfCurrent(ctx context.Context, id string, from, to Status) (bool, error)

	SetPidx(ctx context.Context, id, pidx string) error

	// HasOverlap checks if any live booking for the room intersects the
	// given date range. Rejected and canceled bookings do not block dates.
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.student_id", "b.room_id", "b.check_in", "b.check_out",
	"b.status", "b.pidx",
	"u.username", "u.email",
	"r.room_number", "h.id", "h.name", "h.owner_id",
	"b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.StudentID, &b.RoomID, &b.CheckIn, &b.CheckOut,
		&b.Status, &b.Pidx,
		&b.StudentName, &b.StudentEmail,
		&b.RoomNumber, &b.HostelID, &b.HostelName, &b.HostelOwnerID,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func bookingSelect(columns []string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(columns...).
		From("public.bookings b").
		Join("public.users u ON b.student_id = u.id").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.floors f ON r.floor_id = f.id").
		Join("public.hostels h ON f.hostel_id = h.id")
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("student_id", "room_id", "check_in", "check_out", "status").
		Values(b.StudentID, b.RoomID, b.CheckIn, b.CheckOut, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := bookingSelect(bookingColumns).
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	columns := append(append([]string{}, bookingColumns...), "count(*) OVER() as total_count")
	query := bookingSelect(columns)

	if filter.StudentID != "" {
		query = query.Where(squirrel.Eq{"b.student_id": filter.StudentID})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.HostelID != "" {
		query = query.Where(squirrel.Eq{"h.id": filter.HostelID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"h.owner_id": filter.OwnerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.check_out": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"b.check_in": filter.To})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("b.created_at " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatusIfCurrent(ctx context.Context, id string, from, to Status) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (r *pgxRepository) SetPidx(ctx context.Context, id, pidx string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("pidx", pidx).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set pidx query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set pidx failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	// Overlap: (NewCheckIn < ExistingCheckOut) AND (NewCheckOut > ExistingCheckIn)
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.NotEq{"status": []string{string(StatusRejected), string(StatusCanceled)}}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
