package service

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, ttl time.Duration) (AuthService, *memory.KeyValueStore) {
	t.Helper()
	kv := memory.NewKeyValueStore()
	return NewAuthService(memory.NewUserRepository(), kv, "test-secret", ttl, 0, nil), kv
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", " Ana@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Register(ctx, "Ana again", "ana@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	token, loggedIn, err := svc.Login(ctx, "ANA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleMember, claims.Role)

	session, err := svc.Session(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated())
	assert.False(t, session.IsGuest())
	assert.Equal(t, "ana@example.com", session.User().Email)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()
	_, err := svc.Register(ctx, "Ana", "ana@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "", "")
	assert.Error(t, err)
}

func TestAuthService_RegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t, time.Hour)
	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "short")
	assert.Error(t, err)
}

func TestAuthService_GuestCountsAsLoggedIn(t *testing.T) {
	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	token, guestID, err := svc.ContinueAsGuest(ctx)
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, guestID, claims.UserID)
	assert.Equal(t, domain.RoleGuest, claims.Role)

	session, err := svc.Session(ctx, guestID)
	require.NoError(t, err)
	assert.True(t, session.IsGuest())
	assert.True(t, session.IsAuthenticated())

	require.NoError(t, svc.Logout(ctx, guestID))
	session, err = svc.Session(ctx, guestID)
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())
}

func TestAuthService_ParseTokenRejectsBadTokens(t *testing.T) {
	svc, _ := newAuthService(t, time.Hour)

	_, err := svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(memory.NewUserRepository(), memory.NewKeyValueStore(), "other-secret", time.Hour, 0, nil)
	token, _, err := other.ContinueAsGuest(context.Background())
	require.NoError(t, err)
	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := svc.(*authService).generateJWT("u1", domain.RoleMember, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ParseToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestNewAuthService_PanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() {
		NewAuthService(memory.NewUserRepository(), memory.NewKeyValueStore(), "", time.Hour, 0, nil)
	})
}
