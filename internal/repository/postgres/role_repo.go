package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fieldbooking/internal/domain"
)

const roleColumns = `r.id, r.code`

type roleRepository struct {
	DB *sql.DB
}

// NewRoleRepository returns the roles store. Roles are seeded by migrations and read-only here.
func NewRoleRepository(db *sql.DB) domain.RoleRepository {
	return &roleRepository{DB: db}
}

func scanRole(row rowScanner) (*domain.Role, error) {
	role := &domain.Role{}
	if err := row.Scan(&role.ID, &role.Code); err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleRepository) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	role, err := scanRole(r.DB.QueryRowContext(ctx, `SELECT id, code FROM roles WHERE code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return role, err
}

// ListByUserID returns the user's roles ordered by code; a user without roles gets an empty slice.
func (r *roleRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+roleColumns+`
		FROM roles r
		INNER JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.code`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []*domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
