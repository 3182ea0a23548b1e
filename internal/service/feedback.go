package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
	"bimbingan_service/internal/notification"
	"bimbingan_service/internal/utils"
)

// errProgressMoved reports a lost compare-and-swap on the progress marker. Re-reading the
// marker and trying again is always safe.
type errProgressMoved struct{}

func (errProgressMoved) Error() string     { return "progress marker changed concurrently" }
func (errProgressMoved) SafeToRetry() bool { return true }

// GiveFeedback records the assigned advisor's verdict on an awaiting submission.
// A rejected feedback document is removed from the blob store.
func (s *BimbinganService) GiveFeedback(ctx context.Context, p domain.Principal, in *domain.FeedbackInput) (*domain.SubmissionView, error) {
	if in == nil {
		return nil, errdefs.ErrInvalidInput
	}

	view, err := s.giveFeedback(ctx, p, in)
	if err != nil {
		if in.Document != nil {
			s.discardUpload(ctx, in.Document.Path)
		}
		return nil, err
	}
	return view, nil
}

func (s *BimbinganService) giveFeedback(ctx context.Context, p domain.Principal, in *domain.FeedbackInput) (*domain.SubmissionView, error) {
	if err := requireActive(p); err != nil {
		return nil, err
	}

	sub, err := s.submissions.GetByID(ctx, in.SubmissionID)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, errdefs.Internal(err)
	}
	if sub.AdvisorID != p.ID {
		return nil, ErrNotAdvisor
	}

	in.Feedback = trimOptional(in.Feedback)
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	if in.Document != nil {
		if err := in.Document.Validate(); err != nil {
			return nil, err
		}
	}

	if err := sub.ApplyFeedback(in.Status, in.Feedback, in.Document, time.Now()); err != nil {
		return nil, err
	}

	updated, err := s.submissions.ApplyFeedback(ctx, sub)
	if err != nil {
		switch {
		case errors.Is(err, errdefs.ErrConflict):
			return nil, domain.ErrAlreadyReviewed
		case errors.Is(err, errdefs.ErrNotFound):
			return nil, ErrSubmissionNotFound
		}
		return nil, errdefs.Internal(err)
	}

	s.logger.Info(ctx, "Feedback recorded",
		zap.String("submission_id", updated.ID.String()),
		zap.String("status", string(updated.Status)),
	)

	if updated.Status == domain.StatusAdvanceChapter {
		s.advanceProgress(ctx, updated.StudentID)
	}

	people := s.identitiesAfterCommit(ctx, updated.StudentID, updated.AdvisorID)

	feedback := "-"
	if updated.Feedback != nil {
		feedback = *updated.Feedback
	}
	s.notifyUser(ctx, updated.StudentID, notification.KindFeedback,
		displayName(people[updated.AdvisorID]),
		updated.Title,
		updated.SequenceLabel(),
		string(updated.Status),
		feedback,
	)

	return domain.NewSubmissionView(updated, people[updated.StudentID], people[updated.AdvisorID]), nil
}

// advanceProgress moves the student's marker one step forward. The feedback is already
// committed at this point, so failures are logged and never returned.
//
// The step is pinned by the first read. A later attempt that finds the marker already on
// the target treats it as done, since an earlier attempt may have committed without its
// acknowledgement arriving.
func (s *BimbinganService) advanceProgress(ctx context.Context, studentID uuid.UUID) {
	ctx = context.WithoutCancel(ctx)

	var (
		from, to domain.Progress
		pinned   bool
	)
	res, err := utils.RetryWithBackoff(ctx, s.progressRetries, s.progressRetryDelay, func() (advanceOutcome, error) {
		student, err := s.directory.GetUser(ctx, studentID)
		if err != nil {
			return advanceNone, err
		}
		if !pinned {
			next, ok := student.Progress.Next()
			if !ok {
				return advanceFinal, nil
			}
			from, to, pinned = student.Progress, next, true
		}

		switch student.Progress {
		case to:
			return advanceDone, nil
		case from:
		default:
			return advanceSuperseded, nil
		}

		advanced, err := s.directory.AdvanceProgress(ctx, studentID, from, to)
		if err != nil {
			return advanceNone, err
		}
		if !advanced {
			return advanceNone, errProgressMoved{}
		}
		return advanceDone, nil
	})
	if err != nil {
		s.logger.Error(ctx, "Failed to advance student progress",
			zap.String("student_id", studentID.String()),
			zap.Error(err),
		)
		return
	}

	switch res {
	case advanceFinal:
		s.logger.Debug(ctx, "Student progress already final", zap.String("student_id", studentID.String()))
	case advanceSuperseded:
		s.logger.Warn(ctx, "Student progress moved elsewhere, not advancing",
			zap.String("student_id", studentID.String()),
			zap.String("expected", string(from)),
		)
	default:
		s.logger.Info(ctx, "Student progress advanced",
			zap.String("student_id", studentID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
	}
}

type advanceOutcome int

const (
	advanceNone advanceOutcome = iota
	advanceDone
	advanceFinal
	advanceSuperseded
)
