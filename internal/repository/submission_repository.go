package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
)

// ErrStatusChanged means a compare-and-swap update found the row no longer awaiting.
var ErrStatusChanged = fmt.Errorf("submission status changed concurrently: %w", errdefs.ErrConflict)

const submissionColumns = `
	id, student_id, advisor_id, advisor_slot, sequence, title, note,
	document_path, document_name, document_size, document_type,
	status, feedback,
	feedback_document_path, feedback_document_name, feedback_document_size, feedback_document_type,
	feedback_at, created_at, updated_at`

type submissionRow struct {
	ID                   uuid.UUID          `db:"id"`
	StudentID            uuid.UUID          `db:"student_id"`
	AdvisorID            uuid.UUID          `db:"advisor_id"`
	AdvisorSlot          domain.AdvisorSlot `db:"advisor_slot"`
	Sequence             int                `db:"sequence"`
	Title                string             `db:"title"`
	Note                 *string            `db:"note"`
	DocumentPath         string             `db:"document_path"`
	DocumentName         string             `db:"document_name"`
	DocumentSize         int64              `db:"document_size"`
	DocumentType         string             `db:"document_type"`
	Status               domain.Status      `db:"status"`
	Feedback             *string            `db:"feedback"`
	FeedbackDocumentPath *string            `db:"feedback_document_path"`
	FeedbackDocumentName *string            `db:"feedback_document_name"`
	FeedbackDocumentSize *int64             `db:"feedback_document_size"`
	FeedbackDocumentType *string            `db:"feedback_document_type"`
	FeedbackAt           *time.Time         `db:"feedback_at"`
	CreatedAt            time.Time          `db:"created_at"`
	UpdatedAt            time.Time          `db:"updated_at"`
}

func (r *submissionRow) toDomain() *domain.Submission {
	s := &domain.Submission{
		ID:        r.ID,
		StudentID: r.StudentID,
		AdvisorID: r.AdvisorID,
		Slot:      r.AdvisorSlot,
		Sequence:  r.Sequence,
		Title:     r.Title,
		Note:      r.Note,
		Document: domain.DocumentRef{
			Path:         r.DocumentPath,
			OriginalName: r.DocumentName,
			Size:         r.DocumentSize,
			MediaType:    r.DocumentType,
		},
		Status:     r.Status,
		Feedback:   r.Feedback,
		FeedbackAt: r.FeedbackAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.FeedbackDocumentPath != nil {
		doc := domain.DocumentRef{Path: *r.FeedbackDocumentPath}
		if r.FeedbackDocumentName != nil {
			doc.OriginalName = *r.FeedbackDocumentName
		}
		if r.FeedbackDocumentSize != nil {
			doc.Size = *r.FeedbackDocumentSize
		}
		if r.FeedbackDocumentType != nil {
			doc.MediaType = *r.FeedbackDocumentType
		}
		s.FeedbackDocument = &doc
	}
	return s
}

type SubmissionRepository struct {
	db Querier
}

func NewSubmissionRepository(db Querier) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	query := `
INSERT INTO bimbingan (
	id, student_id, advisor_id, advisor_slot, sequence, title, note,
	document_path, document_name, document_size, document_type,
	status, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING` + submissionColumns

	now := time.Now()
	var row submissionRow
	err := pgxscan.Get(ctx, r.db, &row, query,
		s.ID,
		s.StudentID,
		s.AdvisorID,
		s.Slot,
		s.Sequence,
		s.Title,
		s.Note,
		s.Document.Path,
		s.Document.OriginalName,
		s.Document.Size,
		s.Document.MediaType,
		s.Status,
		now,
		now,
	)
	if err != nil {
		return nil, handleError(err)
	}
	return row.toDomain(), nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := `SELECT` + submissionColumns + `
FROM bimbingan WHERE id = $1`

	var row submissionRow
	if err := pgxscan.Get(ctx, r.db, &row, query, id); err != nil {
		return nil, handleError(err)
	}
	return row.toDomain(), nil
}

func (r *SubmissionRepository) HasPending(ctx context.Context, studentID, advisorID uuid.UUID) (bool, error) {
	query := `
SELECT EXISTS (
	SELECT 1 FROM bimbingan
	WHERE student_id = $1 AND advisor_id = $2 AND status = $3
)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, studentID, advisorID, domain.StatusAwaiting).Scan(&exists); err != nil {
		return false, handleError(err)
	}
	return exists, nil
}

// MaxSequence returns the highest sequence number used by the pair, or 0.
func (r *SubmissionRepository) MaxSequence(ctx context.Context, studentID, advisorID uuid.UUID) (int, error) {
	query := `
SELECT COALESCE(MAX(sequence), 0)
FROM bimbingan
WHERE student_id = $1 AND advisor_id = $2`
	var n int
	if err := r.db.QueryRow(ctx, query, studentID, advisorID).Scan(&n); err != nil {
		return 0, handleError(err)
	}
	return n, nil
}

// ApplyFeedback persists the feedback fields of s, but only while the stored row is still awaiting.
func (r *SubmissionRepository) ApplyFeedback(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	query := `
UPDATE bimbingan
SET status = $2,
	feedback = $3,
	feedback_document_path = $4,
	feedback_document_name = $5,
	feedback_document_size = $6,
	feedback_document_type = $7,
	feedback_at = $8,
	updated_at = $9
WHERE id = $1 AND status = $10
RETURNING` + submissionColumns

	var (
		docPath, docName, docType *string
		docSize                   *int64
	)
	if d := s.FeedbackDocument; d != nil {
		docPath, docName, docSize, docType = &d.Path, &d.OriginalName, &d.Size, &d.MediaType
	}

	var row submissionRow
	err := pgxscan.Get(ctx, r.db, &row, query,
		s.ID,
		s.Status,
		s.Feedback,
		docPath,
		docName,
		docSize,
		docType,
		s.FeedbackAt,
		time.Now(),
		domain.StatusAwaiting,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStatusChanged
		}
		return nil, handleError(err)
	}
	return row.toDomain(), nil
}

func (r *SubmissionRepository) List(ctx context.Context, filter *domain.SubmissionFilter) ([]*domain.Submission, error) {
	where, args := buildSubmissionFilter(filter)
	query := `SELECT` + submissionColumns + `
FROM bimbingan` + where + `
ORDER BY created_at DESC`

	var rows []*submissionRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, handleError(err)
	}
	return toSubmissions(rows), nil
}

func (r *SubmissionRepository) CountPending(ctx context.Context, advisorID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM bimbingan WHERE advisor_id = $1 AND status = $2`
	var n int
	if err := r.db.QueryRow(ctx, query, advisorID, domain.StatusAwaiting).Scan(&n); err != nil {
		return 0, handleError(err)
	}
	return n, nil
}

// ListPendingBefore returns awaiting submissions created before the given instant, oldest first.
func (r *SubmissionRepository) ListPendingBefore(ctx context.Context, before time.Time) ([]*domain.Submission, error) {
	query := `SELECT` + submissionColumns + `
FROM bimbingan
WHERE status = $1 AND created_at < $2
ORDER BY created_at`

	var rows []*submissionRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, domain.StatusAwaiting, before); err != nil {
		return nil, handleError(err)
	}
	return toSubmissions(rows), nil
}

func toSubmissions(rows []*submissionRow) []*domain.Submission {
	res := make([]*domain.Submission, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res
}

func buildSubmissionFilter(filter *domain.SubmissionFilter) (string, []any) {
	if filter == nil {
		return "", nil
	}

	var where []string
	var args []any
	argIdx := 1

	if filter.StudentID != nil {
		where = append(where, fmt.Sprintf("student_id = $%d", argIdx))
		args = append(args, *filter.StudentID)
		argIdx++
	}
	if filter.AdvisorID != nil {
		where = append(where, fmt.Sprintf("advisor_id = $%d", argIdx))
		args = append(args, *filter.AdvisorID)
		argIdx++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Slot != nil {
		where = append(where, fmt.Sprintf("advisor_slot = $%d", argIdx))
		args = append(args, *filter.Slot)
	}

	if len(where) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(where, " AND "), args
}
