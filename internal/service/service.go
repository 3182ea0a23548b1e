//go:generate mockgen -source=service.go -destination=mocks/service_mocks.go -package=mocks

package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/logging"
	"bimbingan_service/internal/notification"
)

const (
	defaultProgressRetries    = 3
	defaultProgressRetryDelay = 100 * time.Millisecond
)

type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)

	HasPending(ctx context.Context, studentID, advisorID uuid.UUID) (bool, error)

	MaxSequence(ctx context.Context, studentID, advisorID uuid.UUID) (int, error)

	ApplyFeedback(ctx context.Context, s *domain.Submission) (*domain.Submission, error)

	List(ctx context.Context, filter *domain.SubmissionFilter) ([]*domain.Submission, error)

	CountPending(ctx context.Context, advisorID uuid.UUID) (int, error)

	ListPendingBefore(ctx context.Context, before time.Time) ([]*domain.Submission, error)
}

type ReplyRepository interface {
	Create(ctx context.Context, reply *domain.Reply) (*domain.Reply, error)

	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]*domain.Reply, error)
}

// Directory is the user-directory collaborator.
type Directory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	GetAdvisorAssignment(ctx context.Context, studentID uuid.UUID, slot domain.AdvisorSlot) (*uuid.UUID, error)

	GetPublicUsers(ctx context.Context, ids []uuid.UUID) ([]*domain.UserPublic, error)

	AdvanceProgress(ctx context.Context, studentID uuid.UUID, from, to domain.Progress) (bool, error)
}

// BlobStore is the part of the upload collaborator the engine drives.
type BlobStore interface {
	Delete(ctx context.Context, key string) error

	PresignGet(ctx context.Context, key string) (string, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, phone string, kind notification.Kind, args ...string)
	Go(ctx context.Context, task func(ctx context.Context))
}

type Options struct {
	ProgressRetries    int
	ProgressRetryDelay time.Duration
}

type BimbinganService struct {
	submissions SubmissionRepository
	replies     ReplyRepository
	directory   Directory
	blobs       BlobStore
	dispatcher  Dispatcher
	logger      *logging.Logger
	validate    *validator.Validate

	progressRetries    int
	progressRetryDelay time.Duration
}

func NewBimbinganService(
	submissions SubmissionRepository,
	replies ReplyRepository,
	directory Directory,
	blobs BlobStore,
	dispatcher Dispatcher,
	logger *logging.Logger,
	opts Options,
) *BimbinganService {
	if opts.ProgressRetries <= 0 {
		opts.ProgressRetries = defaultProgressRetries
	}
	if opts.ProgressRetryDelay <= 0 {
		opts.ProgressRetryDelay = defaultProgressRetryDelay
	}

	return &BimbinganService{
		submissions:        submissions,
		replies:            replies,
		directory:          directory,
		blobs:              blobs,
		dispatcher:         dispatcher,
		logger:             logger,
		validate:           validator.New(),
		progressRetries:    opts.ProgressRetries,
		progressRetryDelay: opts.ProgressRetryDelay,
	}
}
