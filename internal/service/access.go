package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
)

func requireActive(p domain.Principal) error {
	if !p.IsActive() {
		return ErrInactivePrincipal
	}
	return nil
}

// canRead applies the detail read rule: students their own records, advisors the records
// addressed to them, admins everything.
func canRead(p domain.Principal, s *domain.Submission) bool {
	switch p.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleStudent:
		return s.StudentID == p.ID
	case domain.RoleAdvisor:
		return s.AdvisorID == p.ID
	default:
		return false
	}
}

func (s *BimbinganService) getReadable(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, errdefs.Internal(err)
	}
	if !canRead(p, sub) {
		return nil, ErrAccessDenied
	}
	return sub, nil
}

func (s *BimbinganService) validateInput(in interface{}) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%s: %w", formatValidationErrors(err), errdefs.ErrInvalidInput)
	}
	return nil
}

func formatValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, field+" must be at most "+e.Param()+" characters")
		case "oneof":
			msgs = append(msgs, field+" must be one of: "+e.Param())
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
