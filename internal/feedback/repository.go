package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	GetByID(ctx context.Context, id string) (*Feedback, error)
	List(ctx context.Context, filter Filter) ([]*Feedback, int, error)
	ListReplies(ctx context.Context, parentIDs []string) ([]*Feedback, error)
	Delete(ctx context.Context, id string) error

	// AverageRating computes the mean of top-level ratings for a hostel.
	// Replies carry rating 0 and are excluded.
	AverageRating(ctx context.Context, hostelID string) (decimal.Decimal, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const feedbackColumns = "f.id, f.student_id, u.username, f.hostel_id, f.parent_id, f.rating, f.comment, f.created_at"

func scanFeedback(row pgx.Row, extra ...any) (*Feedback, error) {
	var f Feedback
	dest := []any{
		&f.ID, &f.StudentID, &f.StudentName, &f.HostelID, &f.ParentID,
		&f.Rating, &f.Comment, &f.CreatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *pgxRepository) Create(ctx context.Context, f *Feedback) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.feedbacks").
		Columns("student_id", "hostel_id", "parent_id", "rating", "comment").
		Values(f.StudentID, f.HostelID, f.ParentID, f.Rating, f.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create feedback query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&f.ID, &f.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Feedback, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(feedbackColumns).
		From("public.feedbacks f").
		Join("public.users u ON f.student_id = u.id").
		Where(squirrel.Eq{"f.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get feedback query failed: %w", err)
	}

	f, err := scanFeedback(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get feedback failed: %w", err)
	}
	return f, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Feedback, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(feedbackColumns + ", count(*) OVER() as total_count").
		From("public.feedbacks f").
		Join("public.users u ON f.student_id = u.id").
		Where("f.parent_id IS NULL")

	if filter.HostelID != "" {
		query = query.Where(squirrel.Eq{"f.hostel_id": filter.HostelID})
	}
	if filter.StudentID != "" {
		query = query.Where(squirrel.Eq{"f.student_id": filter.StudentID})
	}

	query = query.OrderBy("f.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list feedback query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedback failed: %w", err)
	}
	defer rows.Close()

	var feedbacks []*Feedback
	var total int

	for rows.Next() {
		f, err := scanFeedback(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan feedback failed: %w", err)
		}
		feedbacks = append(feedbacks, f)
	}

	return feedbacks, total, nil
}

func (r *pgxRepository) ListReplies(ctx context.Context, parentIDs []string) ([]*Feedback, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(feedbackColumns).
		From("public.feedbacks f").
		Join("public.users u ON f.student_id = u.id").
		Where(squirrel.Eq{"f.parent_id": parentIDs}).
		OrderBy("f.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list replies query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list replies failed: %w", err)
	}
	defer rows.Close()

	var replies []*Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reply failed: %w", err)
		}
		replies = append(replies, f)
	}

	return replies, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.feedbacks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete feedback query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete feedback failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AverageRating(ctx context.Context, hostelID string) (decimal.Decimal, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("coalesce(avg(rating), 0)", "count(*)").
		From("public.feedbacks").
		Where(squirrel.Eq{"hostel_id": hostelID}).
		Where("parent_id IS NULL").
		ToSql()
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("build average rating query failed: %w", err)
	}

	var avg decimal.Decimal
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&avg, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("get average rating failed: %w", err)
	}
	return avg.Round(2), count, nil
}
