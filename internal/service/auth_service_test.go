package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

type mockUserRepo struct {
	user *models.User
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if m.user == nil || m.user.Username != username {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func newTestAuthService(t *testing.T, password string, active bool) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &mockUserRepo{user: &models.User{
		ID:           "user-1",
		Username:     "admin",
		PasswordHash: string(hash),
		Active:       active,
	}}
	return NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "perjadin-api"})
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestAuthService(t, "rahasia123", true)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "rahasia123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t, "rahasia123", true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "salah"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(t, "rahasia123", true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "nobody", Password: "rahasia123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc := newTestAuthService(t, "rahasia123", false)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "rahasia123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := newTestAuthService(t, "rahasia123", true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := newTestAuthService(t, "rahasia123", true)
	other := newTestAuthService(t, "rahasia123", true)
	other.config.Secret = "different-secret"

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "rahasia123"})
	require.NoError(t, err)

	_, err = other.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
