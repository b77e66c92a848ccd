package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByBookingID(ctx context.Context, bookingID string) (*Payment, error)
	List(ctx context.Context, filter Filter) ([]*Payment, int, error)

	// AmountPaid reports the successfully paid amount for a booking, if any.
	AmountPaid(ctx context.Context, bookingID string) (decimal.Decimal, bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Payment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.payments").
		Columns("booking_id", "student_id", "amount", "transaction_id", "status", "payment_method").
		Values(p.BookingID, p.StudentID, p.Amount, p.TransactionID, p.Status, p.PaymentMethod).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create payment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyPaid
		}
		return fmt.Errorf("create payment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByBookingID(ctx context.Context, bookingID string) (*Payment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "booking_id", "student_id", "amount", "transaction_id",
		"status", "payment_method", "created_at",
	).
		From("public.payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payment query failed: %w", err)
	}

	var p Payment
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.BookingID, &p.StudentID, &p.Amount, &p.TransactionID,
		&p.Status, &p.PaymentMethod, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Payment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"p.id", "p.booking_id", "p.student_id", "p.amount", "p.transaction_id",
		"p.status", "p.payment_method", "p.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.payments p")

	if filter.StudentID != "" {
		query = query.Where(squirrel.Eq{"p.student_id": filter.StudentID})
	}
	if filter.HostelID != "" {
		query = query.
			Join("public.bookings b ON p.booking_id = b.id").
			Join("public.rooms r ON b.room_id = r.id").
			Join("public.floors f ON r.floor_id = f.id").
			Where(squirrel.Eq{"f.hostel_id": filter.HostelID})
	}

	query = query.OrderBy("p.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list payments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments failed: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	var total int

	for rows.Next() {
		var p Payment
		if err := rows.Scan(
			&p.ID, &p.BookingID, &p.StudentID, &p.Amount, &p.TransactionID,
			&p.Status, &p.PaymentMethod, &p.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan payment failed: %w", err)
		}
		payments = append(payments, &p)
	}

	return payments, total, nil
}

func (r *pgxRepository) AmountPaid(ctx context.Context, bookingID string) (decimal.Decimal, bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("amount").
		From("public.payments").
		Where(squirrel.Eq{"booking_id": bookingID, "status": StatusSuccess}).
		ToSql()
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("build amount paid query failed: %w", err)
	}

	var amount decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("get amount paid failed: %w", err)
	}
	return amount, true, nil
}
