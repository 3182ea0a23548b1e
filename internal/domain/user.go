package domain

import "github.com/google/uuid"

// User is the directory record the engine reads: identity, contact, progress and advisor slots.
type User struct {
	ID              uuid.UUID
	Name            string
	IdentityNumber  *string
	Role            Role
	Status          UserStatus
	Phone           *string
	Progress        Progress
	FirstAdvisorID  *uuid.UUID
	SecondAdvisorID *uuid.UUID
}

func (u *User) AdvisorFor(slot AdvisorSlot) *uuid.UUID {
	switch slot {
	case SlotFirst:
		return u.FirstAdvisorID
	case SlotSecond:
		return u.SecondAdvisorID
	default:
		return nil
	}
}

func (u *User) IsAdvisedBy(advisorID uuid.UUID) bool {
	return (u.FirstAdvisorID != nil && *u.FirstAdvisorID == advisorID) ||
		(u.SecondAdvisorID != nil && *u.SecondAdvisorID == advisorID)
}

func (u *User) PhoneNumber() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}

func (u *User) Public() *UserPublic {
	return &UserPublic{
		ID:             u.ID,
		Name:           u.Name,
		IdentityNumber: u.IdentityNumber,
		Role:           u.Role,
	}
}

// UserPublic is the minimal identity attached to records for display.
type UserPublic struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	IdentityNumber *string   `json:"identity_number,omitempty"`
	Role           Role      `json:"role"`
}

type StudentProgress struct {
	StudentID uuid.UUID `json:"student_id"`
	Progress  Progress  `json:"progress"`
}
