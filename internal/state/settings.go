package state

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository"
	"context"
	"errors"
	"fmt"
)

const (
	ThemeStorageKey       = "app_theme_preference"
	MeasurementStorageKey = "app_measurement_system"
)

// Settings is the display-preference container of one owner.
type Settings struct {
	kv    repository.KeyValueStore
	owner string
	value domain.Settings
}

func NewSettings(kv repository.KeyValueStore, owner string) *Settings {
	return &Settings{kv: kv, owner: owner, value: domain.DefaultSettings()}
}

// Load reads stored preferences over the defaults. Unknown stored values
// are ignored so a bad write can't wedge the settings screen.
func (s *Settings) Load(ctx context.Context) error {
	s.value = domain.DefaultSettings()

	theme, err := s.kv.Get(ctx, s.owner, ThemeStorageKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("load theme: %w", err)
	}
	if t := domain.ThemePreference(theme); t.IsValid() {
		s.value.Theme = t
	}

	measurement, err := s.kv.Get(ctx, s.owner, MeasurementStorageKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("load measurement system: %w", err)
	}
	if m := domain.MeasurementSystem(measurement); m.IsValid() {
		s.value.Measurement = m
	}
	return nil
}

func (s *Settings) Save(ctx context.Context) error {
	if err := s.kv.Set(ctx, s.owner, ThemeStorageKey, string(s.value.Theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	if err := s.kv.Set(ctx, s.owner, MeasurementStorageKey, string(s.value.Measurement)); err != nil {
		return fmt.Errorf("save measurement system: %w", err)
	}
	return nil
}

func (s *Settings) Value() domain.Settings { return s.value }

// Update replaces the preferences after validating them.
func (s *Settings) Update(ctx context.Context, v domain.Settings) error {
	if !v.Theme.IsValid() {
		return fmt.Errorf("invalid theme %q", v.Theme)
	}
	if !v.Measurement.IsValid() {
		return fmt.Errorf("invalid measurement system %q", v.Measurement)
	}
	s.value = v
	return s.Save(ctx)
}

// ToggleTheme flips between light and dark. A "system" preference is
// resolved against systemDark first, so the result is always explicit.
func (s *Settings) ToggleTheme(ctx context.Context, systemDark bool) error {
	if s.value.IsDark(systemDark) {
		s.value.Theme = domain.ThemeLight
	} else {
		s.value.Theme = domain.ThemeDark
	}
	return s.Save(ctx)
}

func (s *Settings) ToggleMeasurementSystem(ctx context.Context) error {
	if s.value.IsMetric() {
		s.value.Measurement = domain.Imperial
	} else {
		s.value.Measurement = domain.Metric
	}
	return s.Save(ctx)
}
