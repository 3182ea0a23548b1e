package domain

import (
	"fmt"

	"bimbingan_service/internal/errdefs"
)

type Status string

const (
	StatusAwaiting       Status = "menunggu"
	StatusRevision       Status = "revisi"
	StatusApproved       Status = "acc"
	StatusAdvanceChapter Status = "lanjut_bab"
)

var (
	ErrAlreadyReviewed       = fmt.Errorf("submission already reviewed: %w", errdefs.ErrConflict)
	ErrInvalidFeedbackStatus = fmt.Errorf("invalid feedback status: %w", errdefs.ErrInvalidInput)
)

// transitions lists, per state, the states reachable from it.
var transitions = map[Status][]Status{
	StatusAwaiting: {StatusRevision, StatusApproved, StatusAdvanceChapter},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAwaiting, StatusRevision, StatusApproved, StatusAdvanceChapter:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates the edge from -> to and returns the new state.
func Transition(from, to Status) (Status, error) {
	if from.CanTransitionTo(to) {
		return to, nil
	}
	if from != StatusAwaiting {
		return from, ErrAlreadyReviewed
	}
	return from, fmt.Errorf("%w: %q", ErrInvalidFeedbackStatus, to)
}
