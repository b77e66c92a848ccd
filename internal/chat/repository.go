package chat

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	History(ctx context.Context, filter Filter) ([]*Message, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, m *Message) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.chat_messages").
		Columns("hostel_id", "sender_id", "receiver_id", "body").
		Values(m.HostelID, m.SenderID, m.ReceiverID, m.Body).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create chat message query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&m.ID, &m.CreatedAt)
}

func (r *pgxRepository) History(ctx context.Context, filter Filter) ([]*Message, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"m.id", "m.hostel_id", "m.sender_id", "u.username", "m.receiver_id",
		"m.body", "m.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.chat_messages m").
		Join("public.users u ON m.sender_id = u.id").
		Where(squirrel.Eq{"m.hostel_id": filter.HostelID})

	if filter.ParticipantID != "" {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"m.sender_id": filter.ParticipantID},
			squirrel.Eq{"m.receiver_id": filter.ParticipantID},
		})
	}

	query = query.OrderBy("m.created_at ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build chat history query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("chat history failed: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	var total int

	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.HostelID, &m.SenderID, &m.SenderName, &m.ReceiverID,
			&m.Body, &m.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan chat message failed: %w", err)
		}
		messages = append(messages, &m)
	}

	return messages, total, nil
}
