package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submission is a single bimbingan version sent by a student to one of their advisors.
type Submission struct {
	ID               uuid.UUID    `json:"id"`
	StudentID        uuid.UUID    `json:"student_id"`
	AdvisorID        uuid.UUID    `json:"advisor_id"`
	Slot             AdvisorSlot  `json:"advisor_slot"`
	Sequence         int          `json:"sequence"`
	Title            string       `json:"title"`
	Note             *string      `json:"note,omitempty"`
	Document         DocumentRef  `json:"document"`
	Status           Status       `json:"status"`
	Feedback         *string      `json:"feedback,omitempty"`
	FeedbackDocument *DocumentRef `json:"feedback_document,omitempty"`
	FeedbackAt       *time.Time   `json:"feedback_at,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (s *Submission) SequenceLabel() string {
	return FormatSequenceLabel(s.Sequence)
}

// ApplyFeedback moves the submission out of the awaiting state and records the advisor's response.
func (s *Submission) ApplyFeedback(to Status, feedback *string, doc *DocumentRef, at time.Time) error {
	next, err := Transition(s.Status, to)
	if err != nil {
		return err
	}
	s.Status = next
	s.Feedback = feedback
	s.FeedbackDocument = doc
	s.FeedbackAt = &at
	return nil
}

func (s *Submission) IsParticipant(userID uuid.UUID) bool {
	return s.StudentID == userID || s.AdvisorID == userID
}

func FormatSequenceLabel(n int) string {
	return "V" + strconv.Itoa(n)
}

func ParseSequenceLabel(label string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(label, "V"))
	if err != nil || !strings.HasPrefix(label, "V") || n < 1 {
		return 0, fmt.Errorf("invalid sequence label %q", label)
	}
	return n, nil
}

// SubmissionView is a submission with the participants' public identities attached.
type SubmissionView struct {
	Submission
	SequenceLabel string      `json:"sequence_label"`
	Student       *UserPublic `json:"student,omitempty"`
	Advisor       *UserPublic `json:"advisor,omitempty"`
}

func NewSubmissionView(s *Submission, student, advisor *UserPublic) *SubmissionView {
	return &SubmissionView{
		Submission:    *s,
		SequenceLabel: s.SequenceLabel(),
		Student:       student,
		Advisor:       advisor,
	}
}

type CreateSubmissionInput struct {
	Slot     AdvisorSlot `validate:"required,oneof=dospem_1 dospem_2"`
	Title    string      `validate:"required,max=200"`
	Note     *string     `validate:"omitempty,max=1000"`
	Document DocumentRef
}

type FeedbackInput struct {
	SubmissionID uuid.UUID    `validate:"required"`
	Status       Status       `validate:"required"`
	Feedback     *string      `validate:"omitempty,max=5000"`
	Document     *DocumentRef
}

type SubmissionFilter struct {
	StudentID *uuid.UUID
	AdvisorID *uuid.UUID
	Status    *Status
	Slot      *AdvisorSlot
}

type DocumentKind string

const (
	DocumentKindSubmission DocumentKind = "submission"
	DocumentKindFeedback   DocumentKind = "feedback"
)

func (k DocumentKind) IsValid() bool {
	return k == DocumentKindSubmission || k == DocumentKindFeedback
}
