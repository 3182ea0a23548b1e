package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
	"bimbingan_service/internal/notification"
)

// identities resolves public identities for ids with a single directory lookup.
func (s *BimbinganService) identities(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.UserPublic, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := s.directory.GetPublicUsers(ctx, unique)
	if err != nil {
		return nil, errdefs.Internal(err)
	}

	res := make(map[uuid.UUID]*domain.UserPublic, len(users))
	for _, u := range users {
		res[u.ID] = u
	}
	return res, nil
}

// identitiesAfterCommit is identities for code paths whose write already succeeded:
// a lookup failure only costs the display fields.
func (s *BimbinganService) identitiesAfterCommit(ctx context.Context, ids ...uuid.UUID) map[uuid.UUID]*domain.UserPublic {
	people, err := s.identities(ctx, ids...)
	if err != nil {
		s.logger.Warn(ctx, "Failed to load identities", zap.Error(err))
		return map[uuid.UUID]*domain.UserPublic{}
	}
	return people
}

func (s *BimbinganService) views(ctx context.Context, subs []*domain.Submission) ([]*domain.SubmissionView, error) {
	ids := make([]uuid.UUID, 0, 2*len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.StudentID, sub.AdvisorID)
	}

	people := map[uuid.UUID]*domain.UserPublic{}
	if len(ids) > 0 {
		var err error
		if people, err = s.identities(ctx, ids...); err != nil {
			return nil, err
		}
	}

	res := make([]*domain.SubmissionView, 0, len(subs))
	for _, sub := range subs {
		res = append(res, domain.NewSubmissionView(sub, people[sub.StudentID], people[sub.AdvisorID]))
	}
	return res, nil
}

// notifyUser hands the message to the dispatcher. The recipient lookup runs inside the
// detached task, so nothing here waits on the directory or on delivery.
func (s *BimbinganService) notifyUser(ctx context.Context, userID uuid.UUID, kind notification.Kind, args ...string) {
	s.dispatcher.Go(ctx, func(ctx context.Context) {
		user, err := s.directory.GetUser(ctx, userID)
		if err != nil {
			s.logger.Warn(ctx, "Notification skipped: recipient lookup failed",
				zap.String("user_id", userID.String()),
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			return
		}
		s.dispatcher.Dispatch(ctx, user.PhoneNumber(), kind, args...)
	})
}

func displayName(u *domain.UserPublic) string {
	if u == nil || u.Name == "" {
		return "-"
	}
	return u.Name
}
