package domain

import (
	"time"

	"github.com/google/uuid"
)

// SenderRole is how a reply author is displayed in the thread.
type SenderRole string

const (
	SenderStudent SenderRole = "mahasiswa"
	SenderAdvisor SenderRole = "dosen"
)

// SenderRoleFor maps a principal role to its thread role. Admins post as advisors.
func SenderRoleFor(role Role) (SenderRole, bool) {
	switch role {
	case RoleStudent:
		return SenderStudent, true
	case RoleAdvisor, RoleAdmin:
		return SenderAdvisor, true
	default:
		return "", false
	}
}

type Reply struct {
	ID           uuid.UUID  `json:"id"`
	SubmissionID uuid.UUID  `json:"bimbingan_id"`
	SenderID     uuid.UUID  `json:"sender_id"`
	SenderRole   SenderRole `json:"sender_role"`
	Message      string     `json:"message"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ReplyView struct {
	Reply
	Sender *UserPublic `json:"sender,omitempty"`
}

type ReplyInput struct {
	SubmissionID uuid.UUID `json:"-" validate:"required"`
	Message      string    `json:"message" validate:"required,max=2000"`
}
