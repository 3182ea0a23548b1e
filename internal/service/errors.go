package service

import (
	"fmt"

	"bimbingan_service/internal/errdefs"
)

var (
	ErrInactivePrincipal   = fmt.Errorf("account is not active: %w", errdefs.ErrForbidden)
	ErrNotStudent          = fmt.Errorf("only students can submit bimbingan: %w", errdefs.ErrForbidden)
	ErrNotAdvisor          = fmt.Errorf("only the assigned advisor can review this submission: %w", errdefs.ErrForbidden)
	ErrAccessDenied        = fmt.Errorf("no access to this submission: %w", errdefs.ErrForbidden)
	ErrAdvisorNotAssigned  = fmt.Errorf("advisor not assigned: %w", errdefs.ErrInvalidInput)
	ErrPendingExists       = fmt.Errorf("pending submission exists: %w", errdefs.ErrConflict)
	ErrSubmissionNotFound  = fmt.Errorf("submission not found: %w", errdefs.ErrNotFound)
	ErrStudentNotFound     = fmt.Errorf("student not found: %w", errdefs.ErrNotFound)
	ErrNoFeedbackDocument  = fmt.Errorf("submission has no feedback document: %w", errdefs.ErrNotFound)
	ErrUnknownDocumentKind = fmt.Errorf("unknown document kind: %w", errdefs.ErrInvalidInput)
)
