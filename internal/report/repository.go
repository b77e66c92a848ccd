package report

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Dashboard(ctx context.Context, filter Filter) (*Dashboard, error)
	BookingRows(ctx context.Context, filter Filter) ([]*BookingRow, error)
	MonthlyEarnings(ctx context.Context, filter Filter) ([]MonthlyEarning, error)
	FeedbackRows(ctx context.Context, filter Filter) ([]*FeedbackRow, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Dashboard(ctx context.Context, filter Filter) (*Dashboard, error) {
	d := &Dashboard{
		TotalEarnings: decimal.Zero,
		AverageRating: decimal.Zero,
	}

	if err := r.bookingCounts(ctx, filter, d); err != nil {
		return nil, err
	}
	if err := r.earnings(ctx, filter, d); err != nil {
		return nil, err
	}
	if err := r.roomCounts(ctx, filter, d); err != nil {
		return nil, err
	}
	if err := r.feedbackStats(ctx, filter, d); err != nil {
		return nil, err
	}

	monthly, err := r.MonthlyEarnings(ctx, filter)
	if err != nil {
		return nil, err
	}
	d.MonthlyEarnings = monthly

	return d, nil
}

func scopeHostels(query squirrel.SelectBuilder, filter Filter) squirrel.SelectBuilder {
	query = query.Where(squirrel.Eq{"h.owner_id": filter.OwnerID})
	if filter.HostelID != "" {
		query = query.Where(squirrel.Eq{"h.id": filter.HostelID})
	}
	return query
}

func (r *pgxRepository) bookingCounts(ctx context.Context, filter Filter, d *Dashboard) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"count(*)",
		"count(*) FILTER (WHERE b.status = 'pending')",
		"count(*) FILTER (WHERE b.status = 'confirmed')",
		"count(*) FILTER (WHERE b.status = 'rejected')",
		"count(*) FILTER (WHERE b.status = 'canceled')",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.floors f ON r.floor_id = f.id").
		Join("public.hostels h ON f.hostel_id = h.id")
	query = scopeHostels(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build booking counts query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(
		&d.TotalBookings, &d.PendingBookings, &d.ConfirmedBookings,
		&d.RejectedBookings, &d.CanceledBookings,
	); err != nil {
		return fmt.Errorf("booking counts failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) earnings(ctx context.Context, filter Filter, d *Dashboard) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("coalesce(sum(p.amount), 0)").
		From("public.payments p").
		Join("public.bookings b ON p.booking_id = b.id").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.floors f ON r.floor_id = f.id").
		Join("public.hostels h ON f.hostel_id = h.id").
		Where(squirrel.Eq{"p.status": "success"})
	query = scopeHostels(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build earnings query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&d.TotalEarnings); err != nil {
		return fmt.Errorf("earnings failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) roomCounts(ctx context.Context, filter Filter, d *Dashboard) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"count(*)",
		"count(*) FILTER (WHERE r.is_available)",
	).
		From("public.rooms r").
		Join("public.floors f ON r.floor_id = f.id").
		Join("public.hostels h ON f.hostel_id = h.id")
	query = scopeHostels(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build room counts query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&d.TotalRooms, &d.AvailableRooms); err != nil {
		return fmt.Errorf("room counts failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) feedbackStats(ctx context.Context, filter Filter, d *Dashboard) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("coalesce(avg(fb.rating), 0)", "count(*)").
		From("public.feedbacks fb").
		Join("public.hostels h ON fb.hostel_id = h.id").
		Where("fb.parent_id IS NULL")
	query = scopeHostels(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build feedback stats query failed: %w", err)
	}

	var avg decimal.Decimal
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&avg, &d.FeedbackCount); err != nil {
		return fmt.Errorf("feedback stats failed: %w", err)
	}
	d.AverageRating = avg.Round(2)
	return nil
}

// MonthlyEarnings sums successful payments per calendar month, oldest first.
func (r *pgxRepository) MonthlyEarnings(ctx context.Context, filter Filter) ([]MonthlyEarning, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"to_char(p.created_at, 'YYYY-MM') as month",
		"coalesce(sum(p.amount), 0)",
	).
		From("public.payments p").
		Join("public.bookings b ON p.booking_id = b.id").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.floors f ON r.floor_id = f.id").
		Join("public.hostels h ON f.hostel_id = h.id").
		Where(squirrel.Eq{"p.status": "success"})
	query = scopeHostels(query, filter)

	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"p.created_at": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"p.created_at": filter.To})
	}

	query = query.GroupBy("month").OrderBy("month ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build monthly earnings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly earnings failed: %w", err)
	}
	defer rows.Close()

	var result []MonthlyEarning
	for rows.Next() {
		var m MonthlyEarning
		if err := rows.Scan(&m.Month, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan monthly earning failed: %w", err)
		}
		result = append(result, m)
	}
	return result, nil
}

func (r *pgxRepository) FeedbackRows(ctx context.Context, filter Filter) ([]*FeedbackRow, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"fb.id", "u.username", "h.name", "fb.rating", "fb.comment", "fb.created_at",
	).
		From("public.feedbacks fb").
		Join("public.users u ON fb.student_id = u.id").
		Join("public.hostels h ON fb.hostel_id = h.id").
		Where("fb.parent_id IS NULL")
	query = scopeHostels(query, filter)

	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"fb.created_at": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"fb.created_at": filter.To})
	}

	query = query.OrderBy("fb.created_at " + sortDirection(filter.SortOrder))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feedback rows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("feedback rows failed: %w", err)
	}
	defer rows.Close()

	var result []*FeedbackRow
	for rows.Next() {
		var row FeedbackRow
		if err := rows.Scan(
			&row.FeedbackID, &row.StudentName, &row.HostelName,
			&row.Rating, &row.Comment, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan feedback row failed: %w", err)
		}
		result = append(result, &row)
	}
	return result, nil
}

func sortDirection(order string) string {
	if order == "asc" {
		return "ASC"
	}
	return "DESC"
}

func (r *pgxRepository) BookingRows(ctx context.Context, filter Filter) ([]*BookingRow, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "u.username", "h.name", "r.room_number",
		"b.check_in", "b.check_out", "b.status",
		"coalesce(p.amount, 0)", "b.created_at",
	).
		From("public.bookings b").
		Join("public.users u ON b.student_id = u.id").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.floors f ON r.floor_id = f.id").
		Join("public.hostels h ON f.hostel_id = h.id").
		LeftJoin("public.payments p ON p.booking_id = b.id AND p.status = 'success'")
	query = scopeHostels(query, filter)

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.check_in": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"b.check_in": filter.To})
	}

	query = query.OrderBy("b.created_at " + sortDirection(filter.SortOrder))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking rows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("booking rows failed: %w", err)
	}
	defer rows.Close()

	var result []*BookingRow
	for rows.Next() {
		var row BookingRow
		if err := rows.Scan(
			&row.BookingID, &row.StudentName, &row.HostelName, &row.RoomNumber,
			&row.CheckIn, &row.CheckOut, &row.Status,
			&row.AmountPaid, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking row failed: %w", err)
		}
		result = append(result, &row)
	}

	return result, nil
}
