package repository

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"bimbingan_service/internal/domain"
)

type replyRow struct {
	ID          uuid.UUID         `db:"id"`
	BimbinganID uuid.UUID         `db:"bimbingan_id"`
	SenderID    uuid.UUID         `db:"sender_id"`
	SenderRole  domain.SenderRole `db:"sender_role"`
	Message     string            `db:"message"`
	CreatedAt   time.Time         `db:"created_at"`
}

func (r *replyRow) toDomain() *domain.Reply {
	return &domain.Reply{
		ID:           r.ID,
		SubmissionID: r.BimbinganID,
		SenderID:     r.SenderID,
		SenderRole:   r.SenderRole,
		Message:      r.Message,
		CreatedAt:    r.CreatedAt,
	}
}

type ReplyRepository struct {
	db Querier
}

func NewReplyRepository(db Querier) *ReplyRepository {
	return &ReplyRepository{db: db}
}

func (r *ReplyRepository) Create(ctx context.Context, reply *domain.Reply) (*domain.Reply, error) {
	query := `
INSERT INTO bimbingan_replies (id, bimbingan_id, sender_id, sender_role, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, bimbingan_id, sender_id, sender_role, message, created_at`

	var row replyRow
	err := pgxscan.Get(ctx, r.db, &row, query,
		reply.ID,
		reply.SubmissionID,
		reply.SenderID,
		reply.SenderRole,
		reply.Message,
		time.Now(),
	)
	if err != nil {
		return nil, handleError(err)
	}
	return row.toDomain(), nil
}

func (r *ReplyRepository) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]*domain.Reply, error) {
	query := `
SELECT id, bimbingan_id, sender_id, sender_role, message, created_at
FROM bimbingan_replies
WHERE bimbingan_id = $1
ORDER BY created_at, id`

	var rows []*replyRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, submissionID); err != nil {
		return nil, handleError(err)
	}

	replies := make([]*domain.Reply, 0, len(rows))
	for _, row := range rows {
		replies = append(replies, row.toDomain())
	}
	return replies, nil
}
