package state

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository/memory"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct{ err error }

func (b brokenKV) Get(context.Context, string, string) (string, error) { return "", b.err }
func (b brokenKV) Set(context.Context, string, string, string) error   { return b.err }
func (b brokenKV) Delete(context.Context, string, string) error        { return b.err }

func TestSession_LoginPersistsAndClearsGuest(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()

	s := NewSession(kv, "device-1")
	require.NoError(t, s.ContinueAsGuest(ctx))
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsGuest())

	require.NoError(t, s.Login(ctx, domain.SessionUser{ID: "u1", Email: "a@example.com"}))

	reloaded := NewSession(kv, "device-1")
	require.NoError(t, reloaded.Load(ctx))
	assert.False(t, reloaded.IsGuest())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, "u1", reloaded.User().ID)
	assert.True(t, reloaded.IsAuthenticated())
}

func TestSession_GuestDropsUser(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()

	s := NewSession(kv, "device-1")
	require.NoError(t, s.Login(ctx, domain.SessionUser{ID: "u1", Email: "a@example.com"}))
	require.NoError(t, s.ContinueAsGuest(ctx))

	_, err := kv.Get(ctx, "device-1", UserStorageKey)
	assert.Error(t, err)
	v, err := kv.Get(ctx, "device-1", GuestStorageKey)
	require.NoError(t, err)
	assert.Equal(t, "true", v)
	assert.Nil(t, s.User())
}

func TestSession_LogoutDeletesBothKeys(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()

	s := NewSession(kv, "device-1")
	require.NoError(t, s.Login(ctx, domain.SessionUser{ID: "u1"}))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated())
	_, err := kv.Get(ctx, "device-1", UserStorageKey)
	assert.Error(t, err)
	_, err = kv.Get(ctx, "device-1", GuestStorageKey)
	assert.Error(t, err)

	fresh := NewSession(kv, "device-1")
	require.NoError(t, fresh.Load(ctx))
	assert.False(t, fresh.IsAuthenticated())
}

func TestSession_OwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()

	require.NoError(t, NewSession(kv, "a").ContinueAsGuest(ctx))

	other := NewSession(kv, "b")
	require.NoError(t, other.Load(ctx))
	assert.False(t, other.IsAuthenticated())
}

func TestSession_LoadRejectsCorruptUser(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()
	require.NoError(t, kv.Set(ctx, "d", UserStorageKey, "{not json"))

	s := NewSession(kv, "d")
	assert.Error(t, s.Load(ctx))
	assert.False(t, s.IsAuthenticated())
}

func TestSession_StorageErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	s := NewSession(brokenKV{err: boom}, "d")

	assert.ErrorIs(t, s.Load(context.Background()), boom)
	assert.ErrorIs(t, s.ContinueAsGuest(context.Background()), boom)
}

func TestSettings_DefaultsAndToggles(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()

	s := NewSettings(kv, "u1")
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, domain.DefaultSettings(), s.Value())

	// System theme on a dark device toggles to an explicit light theme.
	require.NoError(t, s.ToggleTheme(ctx, true))
	assert.Equal(t, domain.ThemeLight, s.Value().Theme)
	require.NoError(t, s.ToggleTheme(ctx, true))
	assert.Equal(t, domain.ThemeDark, s.Value().Theme)

	require.NoError(t, s.ToggleMeasurementSystem(ctx))
	assert.Equal(t, domain.Imperial, s.Value().Measurement)

	reloaded := NewSettings(kv, "u1")
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, domain.Settings{Theme: domain.ThemeDark, Measurement: domain.Imperial}, reloaded.Value())
}

func TestSettings_LoadIgnoresUnknownValues(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()
	require.NoError(t, kv.Set(ctx, "u1", ThemeStorageKey, "sepia"))
	require.NoError(t, kv.Set(ctx, "u1", MeasurementStorageKey, "imperial"))

	s := NewSettings(kv, "u1")
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, domain.ThemeSystem, s.Value().Theme)
	assert.Equal(t, domain.Imperial, s.Value().Measurement)
}

func TestSettings_UpdateValidates(t *testing.T) {
	s := NewSettings(memory.NewKeyValueStore(), "u1")

	err := s.Update(context.Background(), domain.Settings{Theme: "neon", Measurement: domain.Metric})
	assert.Error(t, err)
	assert.Equal(t, domain.DefaultSettings(), s.Value())

	require.NoError(t, s.Update(context.Background(), domain.Settings{Theme: domain.ThemeLight, Measurement: domain.Metric}))
	assert.False(t, s.Value().IsDark(true))
}
