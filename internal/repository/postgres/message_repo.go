package postgres

import (
	"context"
	"time"

	"jobbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepo struct {
	db    *pgxpool.Pool
	table string
}

func NewMessageRepository(db *pgxpool.Pool) domain.MessageRepository {
	return &messageRepo{db: db, table: "messages"}
}

func NewDemoMessageRepository(db *pgxpool.Pool) domain.MessageRepository {
	return &messageRepo{db: db, table: "demo_messages"}
}

func (r *messageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `INSERT INTO ` + r.table + ` (application_id, sender_id, content, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	msg.CreatedAt = time.Now()
	return r.db.QueryRow(ctx, query,
		msg.ApplicationID, msg.SenderID, msg.Content, msg.CreatedAt,
	).Scan(&msg.ID)
}

func (r *messageRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.Message, error) {
	query := `SELECT id, application_id, sender_id, content, created_at, read_at
	          FROM ` + r.table + `
	          WHERE application_id = $1
	          ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ApplicationID, &m.SenderID, &m.Content, &m.CreatedAt, &m.ReadAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *messageRepo) MarkRead(ctx context.Context, applicationID, readerID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE `+r.table+` SET read_at = $3 WHERE application_id = $1 AND sender_id <> $2 AND read_at IS NULL`,
		applicationID, readerID, time.Now(),
	)
	return err
}
