package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(users *fakeUserRepo, roles *fakeRoleRepo, issuer *fakeTokenIssuer, email domain.EmailService) domain.AuthService {
	return NewAuthService(users, roles, &fakePasswordHasher{salt: "salt"}, issuer, time.Hour, email, fixedClock(day(9, 0)), testLogger)
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer and sends welcome", func(t *testing.T) {
		users := newFakeUserRepo()
		email := &fakeEmailService{}
		svc := newTestAuthService(users, newFakeRoleRepo(), &fakeTokenIssuer{}, email)

		u, err := svc.SignUp(ctx, "  Ana@Example.com ", "password123", " Ana ", "Lopez")
		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		assert.Equal(t, "ana@example.com", u.Email)
		assert.Equal(t, "Ana", u.Name)
		assert.Equal(t, "hash-salt-password123", u.PasswordHash)
		assert.Equal(t, day(9, 0), u.CreatedAt)
		assert.Equal(t, []string{"role-customer"}, users.roles["user-1"])
		require.NotNil(t, email.lastWelcome)
		assert.Equal(t, "ana@example.com", email.lastWelcome.Email)
	})

	t.Run("welcome failure does not fail sign-up", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserRepo(), newFakeRoleRepo(), &fakeTokenIssuer{}, &fakeEmailService{err: errors.New("ses down")})
		_, err := svc.SignUp(ctx, "ana@example.com", "password123", "Ana", "")
		assert.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := newFakeUserRepo()
		users.add(domain.User{ID: "u-1", Email: "ana@example.com"})
		svc := newTestAuthService(users, newFakeRoleRepo(), &fakeTokenIssuer{}, nil)
		_, err := svc.SignUp(ctx, "ana@example.com", "password123", "Ana", "")
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"invalid email", "not-an-email", "password123"},
		{"short password", "ana@example.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepo()
			svc := newTestAuthService(users, newFakeRoleRepo(), &fakeTokenIssuer{}, nil)
			_, err := svc.SignUp(ctx, tt.email, tt.password, "Ana", "")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, users.byID)
		})
	}

	t.Run("missing role", func(t *testing.T) {
		roles := newFakeRoleRepo()
		roles.getErr = errors.New("db down")
		svc := newTestAuthService(newFakeUserRepo(), roles, &fakeTokenIssuer{}, nil)
		_, err := svc.SignUp(ctx, "ana@example.com", "password123", "Ana", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	users.add(domain.User{ID: "u-1", Email: "ana@example.com", Salt: "salt", PasswordHash: "hash-salt-password123"})
	roles := newFakeRoleRepo()
	roles.listByUID["u-1"] = []*domain.Role{{ID: "role-admin", Code: domain.RoleAdmin}}

	t.Run("success", func(t *testing.T) {
		issuer := &fakeTokenIssuer{}
		svc := newTestAuthService(users, roles, issuer, nil)
		token, u, err := svc.Login(ctx, "ANA@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "token-u-1", token)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, []string{domain.RoleAdmin}, issuer.lastRoles)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestAuthService(users, roles, &fakeTokenIssuer{}, nil)
		_, _, err := svc.Login(ctx, "ana@example.com", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := newTestAuthService(users, roles, &fakeTokenIssuer{}, nil)
		_, _, err := svc.Login(ctx, "bob@example.com", "password123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("issuer error", func(t *testing.T) {
		svc := newTestAuthService(users, roles, &fakeTokenIssuer{err: errors.New("sign")}, nil)
		_, _, err := svc.Login(ctx, "ana@example.com", "password123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
