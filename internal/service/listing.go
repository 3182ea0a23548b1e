package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
)

var ErrAdvisorsOnly = fmt.Errorf("only advisors have a review queue: %w", errdefs.ErrForbidden)

// ListSubmissions returns the records visible to p, newest first. The student filter is
// honoured for admins only; students and advisors are always scoped to themselves.
func (s *BimbinganService) ListSubmissions(ctx context.Context, p domain.Principal, filter *domain.SubmissionFilter) ([]*domain.SubmissionView, error) {
	if err := requireActive(p); err != nil {
		return nil, err
	}

	var f domain.SubmissionFilter
	if filter != nil {
		f = *filter
	}
	if f.Status != nil && !f.Status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", *f.Status, errdefs.ErrInvalidInput)
	}
	if f.Slot != nil && !f.Slot.IsValid() {
		return nil, fmt.Errorf("unknown advisor slot %q: %w", *f.Slot, errdefs.ErrInvalidInput)
	}

	switch p.Role {
	case domain.RoleStudent:
		f.StudentID = &p.ID
		f.AdvisorID = nil
	case domain.RoleAdvisor:
		f.AdvisorID = &p.ID
		f.StudentID = nil
	case domain.RoleAdmin:
	default:
		return nil, ErrAccessDenied
	}

	subs, err := s.submissions.List(ctx, &f)
	if err != nil {
		return nil, errdefs.Internal(err)
	}
	return s.views(ctx, subs)
}

func (s *BimbinganService) GetSubmission(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.SubmissionView, error) {
	if err := requireActive(p); err != nil {
		return nil, err
	}

	sub, err := s.getReadable(ctx, p, id)
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, []*domain.Submission{sub})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// PendingCount is the number of submissions awaiting the advisor's review.
func (s *BimbinganService) PendingCount(ctx context.Context, p domain.Principal) (int, error) {
	if err := requireActive(p); err != nil {
		return 0, err
	}
	if !p.Is(domain.RoleAdvisor) {
		return 0, ErrAdvisorsOnly
	}

	n, err := s.submissions.CountPending(ctx, p.ID)
	if err != nil {
		return 0, errdefs.Internal(err)
	}
	return n, nil
}

// GetDocumentURL returns a short-lived download link for the submission's document or
// the advisor's feedback document.
func (s *BimbinganService) GetDocumentURL(ctx context.Context, p domain.Principal, id uuid.UUID, kind domain.DocumentKind) (string, error) {
	if err := requireActive(p); err != nil {
		return "", err
	}
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentKind, kind)
	}

	sub, err := s.getReadable(ctx, p, id)
	if err != nil {
		return "", err
	}

	key := sub.Document.Path
	if kind == domain.DocumentKindFeedback {
		if sub.FeedbackDocument == nil {
			return "", ErrNoFeedbackDocument
		}
		key = sub.FeedbackDocument.Path
	}

	url, err := s.blobs.PresignGet(ctx, key)
	if err != nil {
		return "", errdefs.Internal(err)
	}
	return url, nil
}

// GetStudentProgress exposes a student's progress marker to the student, their advisors and admins.
func (s *BimbinganService) GetStudentProgress(ctx context.Context, p domain.Principal, studentID uuid.UUID) (*domain.StudentProgress, error) {
	if err := requireActive(p); err != nil {
		return nil, err
	}

	student, err := s.directory.GetUser(ctx, studentID)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, errdefs.Internal(err)
	}
	if student.Role != domain.RoleStudent {
		return nil, ErrStudentNotFound
	}

	allowed := p.ID == student.ID ||
		p.Is(domain.RoleAdmin) ||
		(p.Is(domain.RoleAdvisor) && student.IsAdvisedBy(p.ID))
	if !allowed {
		return nil, ErrAccessDenied
	}

	return &domain.StudentProgress{StudentID: student.ID, Progress: student.Progress}, nil
}
