package service

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository/memory"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService(t *testing.T) {
	svc := NewSettingsService(memory.NewKeyValueStore())
	ctx := context.Background()

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)

	got, err = svc.ToggleTheme(ctx, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, got.Theme)

	got, err = svc.ToggleMeasurementSystem(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.Imperial, got.Measurement)

	got, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.Settings{Theme: domain.ThemeDark, Measurement: domain.Imperial}, got)

	_, err = svc.Update(ctx, "u1", domain.Settings{Theme: "neon", Measurement: domain.Metric})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	got, err = svc.Update(ctx, "u1", domain.Settings{Theme: domain.ThemeSystem, Measurement: domain.Metric})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)

	other, err := svc.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), other)
}
