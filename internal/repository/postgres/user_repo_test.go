package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fieldbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns generated id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("ana@example.com", "hash", "salt", "Ana", "Lopez", now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-uuid-1"))

		u := domain.NewUser("ana@example.com", "hash", "salt", "Ana", "Lopez", now, now)
		require.NoError(t, NewUserRepository(db).Create(ctx, u))
		assert.Equal(t, "user-uuid-1", u.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation returns ErrDuplicateEmail", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505"})

		u := domain.NewUser("ana@example.com", "hash", "salt", "Ana", "", now, now)
		err = NewUserRepository(db).Create(ctx, u)
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "email", "password_hash", "salt", "name", "last_name", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("user-uuid-1", "ana@example.com", "hash", "salt", "Ana", "Lopez", now, now))

		u, err := NewUserRepository(db).GetByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, "user-uuid-1", u.ID)
		assert.Equal(t, "Lopez", u.LastName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err = NewUserRepository(db).GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			user: &domain.User{
				ID:        "user-uuid-1",
				Email:     "alice@example.com",
				Name:      "Alice",
				UpdatedAt: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WithArgs("Alice", "", "alice@example.com", time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC), "user-uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: false,
		},
		{
			name: "not found zero rows affected",
			user: &domain.User{
				ID:        "nonexistent",
				Email:     "a@b.com",
				Name:      "A",
				UpdatedAt: time.Now(),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WithArgs("A", "", "a@b.com", sqlmock.AnyArg(), "nonexistent").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrUserNotFound,
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			user: &domain.User{
				ID:        "user-uuid-1",
				Email:     "taken@example.com",
				Name:      "Alice",
				UpdatedAt: time.Now(),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			user: &domain.User{
				ID:        "user-1",
				Email:     "a@b.com",
				Name:      "A",
				UpdatedAt: time.Now(),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.Update(ctx, tt.user)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoleRepository(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, code FROM roles WHERE code = \$1`).
		WithArgs("customer").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).AddRow("role-1", "customer"))
	mock.ExpectQuery(`SELECT id, code FROM roles WHERE code = \$1`).
		WithArgs("owner").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM roles r\s+INNER JOIN user_roles`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).AddRow("role-0", "admin").AddRow("role-1", "customer"))

	repo := NewRoleRepository(db)
	role, err := repo.GetByCode(ctx, "customer")
	require.NoError(t, err)
	assert.Equal(t, "role-1", role.ID)

	_, err = repo.GetByCode(ctx, "owner")
	require.ErrorIs(t, err, domain.ErrNotFound)

	roles, err := repo.ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "admin", roles[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_ListByUserID_noRoles(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM roles r\s+INNER JOIN user_roles`).
		WithArgs("user-9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}))

	roles, err := NewRoleRepository(db).ListByUserID(ctx, "user-9")
	require.NoError(t, err)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
	require.NoError(t, mock.ExpectationsWereMet())
}
