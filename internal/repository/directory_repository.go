package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
)

type userRow struct {
	ID              uuid.UUID         `db:"id"`
	Name            string            `db:"name"`
	IdentityNumber  *string           `db:"identity_number"`
	Role            domain.Role       `db:"role"`
	Status          domain.UserStatus `db:"status"`
	Phone           *string           `db:"phone"`
	Progress        domain.Progress   `db:"progress"`
	FirstAdvisorID  *uuid.UUID        `db:"dospem_1"`
	SecondAdvisorID *uuid.UUID        `db:"dospem_2"`
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:              r.ID,
		Name:            r.Name,
		IdentityNumber:  r.IdentityNumber,
		Role:            r.Role,
		Status:          r.Status,
		Phone:           r.Phone,
		Progress:        r.Progress,
		FirstAdvisorID:  r.FirstAdvisorID,
		SecondAdvisorID: r.SecondAdvisorID,
	}
}

type userPublicRow struct {
	ID             uuid.UUID   `db:"id"`
	Name           string      `db:"name"`
	IdentityNumber *string     `db:"identity_number"`
	Role           domain.Role `db:"role"`
}

// DirectoryRepository reads the user directory and owns the progress marker update.
type DirectoryRepository struct {
	db Querier
}

func NewDirectoryRepository(db Querier) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
SELECT id, name, identity_number, role, status, phone, progress, dospem_1, dospem_2
FROM users
WHERE id = $1`

	var row userRow
	if err := pgxscan.Get(ctx, r.db, &row, query, id); err != nil {
		return nil, handleError(err)
	}
	return row.toDomain(), nil
}

// GetAdvisorAssignment returns the advisor assigned to the student's slot, or nil when the slot is empty.
func (r *DirectoryRepository) GetAdvisorAssignment(ctx context.Context, studentID uuid.UUID, slot domain.AdvisorSlot) (*uuid.UUID, error) {
	var column string
	switch slot {
	case domain.SlotFirst:
		column = "dospem_1"
	case domain.SlotSecond:
		column = "dospem_2"
	default:
		return nil, fmt.Errorf("unknown advisor slot %q: %w", slot, errdefs.ErrInvalidInput)
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND role = $2`, column)

	var advisorID *uuid.UUID
	if err := r.db.QueryRow(ctx, query, studentID, domain.RoleStudent).Scan(&advisorID); err != nil {
		return nil, handleError(err)
	}
	return advisorID, nil
}

func (r *DirectoryRepository) GetPublicUsers(ctx context.Context, ids []uuid.UUID) ([]*domain.UserPublic, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, identity_number, role FROM users WHERE id = ANY($1)`

	var rows []*userPublicRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, ids); err != nil {
		return nil, handleError(err)
	}

	users := make([]*domain.UserPublic, 0, len(rows))
	for _, row := range rows {
		users = append(users, &domain.UserPublic{
			ID:             row.ID,
			Name:           row.Name,
			IdentityNumber: row.IdentityNumber,
			Role:           row.Role,
		})
	}
	return users, nil
}

// AdvanceProgress moves the student's marker from -> to. It reports false when the stored
// marker no longer equals from.
func (r *DirectoryRepository) AdvanceProgress(ctx context.Context, studentID uuid.UUID, from, to domain.Progress) (bool, error) {
	query := `
UPDATE users
SET progress = $3, updated_at = now()
WHERE id = $1 AND progress = $2`

	tag, err := r.db.Exec(ctx, query, studentID, from, to)
	if err != nil {
		return false, handleError(err)
	}
	return tag.RowsAffected() == 1, nil
}
