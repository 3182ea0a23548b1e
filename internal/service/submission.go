package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
	"bimbingan_service/internal/notification"
)

// CreateSubmission files a new bimbingan version for one of the student's advisor slots.
// Whenever it fails, the uploaded document is removed from the blob store.
func (s *BimbinganService) CreateSubmission(ctx context.Context, p domain.Principal, in *domain.CreateSubmissionInput) (*domain.SubmissionView, error) {
	if in == nil {
		return nil, errdefs.ErrInvalidInput
	}

	view, err := s.createSubmission(ctx, p, in)
	if err != nil {
		s.discardUpload(ctx, in.Document.Path)
		return nil, err
	}
	return view, nil
}

func (s *BimbinganService) createSubmission(ctx context.Context, p domain.Principal, in *domain.CreateSubmissionInput) (*domain.SubmissionView, error) {
	if err := requireActive(p); err != nil {
		return nil, err
	}
	if !p.Is(domain.RoleStudent) {
		return nil, ErrNotStudent
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Note = trimOptional(in.Note)
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	if err := in.Document.Validate(); err != nil {
		return nil, err
	}

	advisorID, err := s.directory.GetAdvisorAssignment(ctx, p.ID, in.Slot)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, errdefs.Internal(err)
	}
	if advisorID == nil {
		return nil, ErrAdvisorNotAssigned
	}

	pending, err := s.submissions.HasPending(ctx, p.ID, *advisorID)
	if err != nil {
		return nil, errdefs.Internal(err)
	}
	if pending {
		return nil, ErrPendingExists
	}

	maxSeq, err := s.submissions.MaxSequence(ctx, p.ID, *advisorID)
	if err != nil {
		return nil, errdefs.Internal(err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errdefs.Internal(err)
	}

	created, err := s.submissions.Create(ctx, &domain.Submission{
		ID:        id,
		StudentID: p.ID,
		AdvisorID: *advisorID,
		Slot:      in.Slot,
		Sequence:  maxSeq + 1,
		Title:     in.Title,
		Note:      in.Note,
		Document:  in.Document,
		Status:    domain.StatusAwaiting,
	})
	if err != nil {
		// Either the single-pending index or the sequence constraint lost a race with a concurrent create.
		if errors.Is(err, errdefs.ErrAlreadyExists) {
			return nil, ErrPendingExists
		}
		return nil, errdefs.Internal(err)
	}

	s.logger.Info(ctx, "Submission created",
		zap.String("submission_id", created.ID.String()),
		zap.String("student_id", created.StudentID.String()),
		zap.String("advisor_id", created.AdvisorID.String()),
		zap.String("sequence", created.SequenceLabel()),
	)

	people := s.identitiesAfterCommit(ctx, created.StudentID, created.AdvisorID)
	view := domain.NewSubmissionView(created, people[created.StudentID], people[created.AdvisorID])

	studentName := displayName(people[created.StudentID])
	s.notifyUser(ctx, created.AdvisorID, notification.KindNewSubmission,
		studentName, created.Title, created.SequenceLabel())

	return view, nil
}

func (s *BimbinganService) discardUpload(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.blobs.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Error(ctx, "Failed to delete rejected upload", zap.String("key", key), zap.Error(err))
		return
	}
	s.logger.Debug(ctx, "Rejected upload deleted", zap.String("key", key))
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
