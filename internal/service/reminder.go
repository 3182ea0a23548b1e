package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
	"bimbingan_service/internal/notification"
)

// RemindStalePending nudges advisors about submissions that have waited longer than olderThan.
// It returns the number of reminders handed to the dispatcher.
func (s *BimbinganService) RemindStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	now := time.Now()
	stale, err := s.submissions.ListPendingBefore(ctx, now.Add(-olderThan))
	if err != nil {
		return 0, errdefs.Internal(err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	studentIDs := make([]uuid.UUID, 0, len(stale))
	for _, sub := range stale {
		studentIDs = append(studentIDs, sub.StudentID)
	}
	students := s.identitiesAfterCommit(ctx, studentIDs...)

	advisors := make(map[uuid.UUID]*domain.User)
	sent := 0
	for _, sub := range stale {
		advisor, ok := advisors[sub.AdvisorID]
		if !ok {
			advisor, err = s.directory.GetUser(ctx, sub.AdvisorID)
			if err != nil {
				s.logger.Warn(ctx, "Reminder skipped: advisor lookup failed",
					zap.String("advisor_id", sub.AdvisorID.String()),
					zap.Error(err),
				)
				continue
			}
			advisors[sub.AdvisorID] = advisor
		}

		phone := advisor.PhoneNumber()
		if phone == "" {
			continue
		}

		days := int(now.Sub(sub.CreatedAt).Hours() / 24)
		s.dispatcher.Dispatch(ctx, phone, notification.KindReminder,
			displayName(students[sub.StudentID]),
			sub.Title,
			sub.SequenceLabel(),
			strconv.Itoa(days),
		)
		sent++
	}

	s.logger.Info(ctx, "Pending reminders dispatched", zap.Int("count", sent), zap.Int("stale", len(stale)))
	return sent, nil
}
