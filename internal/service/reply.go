package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
)

// AddReply appends a message to a submission's thread. Replies are allowed in every status.
func (s *BimbinganService) AddReply(ctx context.Context, p domain.Principal, in *domain.ReplyInput) (*domain.ReplyView, error) {
	if err := requireActive(p); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, errdefs.ErrInvalidInput
	}

	in.Message = strings.TrimSpace(in.Message)
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	sub, err := s.getReadable(ctx, p, in.SubmissionID)
	if err != nil {
		return nil, err
	}

	senderRole, ok := domain.SenderRoleFor(p.Role)
	if !ok {
		return nil, ErrAccessDenied
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errdefs.Internal(err)
	}

	reply, err := s.replies.Create(ctx, &domain.Reply{
		ID:           id,
		SubmissionID: sub.ID,
		SenderID:     p.ID,
		SenderRole:   senderRole,
		Message:      in.Message,
	})
	if err != nil {
		return nil, errdefs.Internal(err)
	}

	s.logger.Debug(ctx, "Reply added",
		zap.String("submission_id", sub.ID.String()),
		zap.String("reply_id", reply.ID.String()),
	)

	people := s.identitiesAfterCommit(ctx, p.ID)
	return &domain.ReplyView{Reply: *reply, Sender: people[p.ID]}, nil
}

func (s *BimbinganService) ListReplies(ctx context.Context, p domain.Principal, submissionID uuid.UUID) ([]*domain.ReplyView, error) {
	if err := requireActive(p); err != nil {
		return nil, err
	}

	sub, err := s.getReadable(ctx, p, submissionID)
	if err != nil {
		return nil, err
	}

	replies, err := s.replies.ListBySubmission(ctx, sub.ID)
	if err != nil {
		return nil, errdefs.Internal(err)
	}
	if len(replies) == 0 {
		return []*domain.ReplyView{}, nil
	}

	senders := make([]uuid.UUID, 0, len(replies))
	for _, r := range replies {
		senders = append(senders, r.SenderID)
	}
	people, err := s.identities(ctx, senders...)
	if err != nil {
		return nil, err
	}

	res := make([]*domain.ReplyView, 0, len(replies))
	for _, r := range replies {
		res = append(res, &domain.ReplyView{Reply: *r, Sender: people[r.SenderID]})
	}
	return res, nil
}
