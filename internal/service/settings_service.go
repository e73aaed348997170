package service

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository"
	"alcyxob/coachy/internal/state"
	"context"
	"errors"
)

var ErrInvalidSettings = errors.New("invalid settings")

// SettingsService loads, mutates and saves one owner's preferences per call.
type SettingsService interface {
	Get(ctx context.Context, ownerID string) (domain.Settings, error)
	Update(ctx context.Context, ownerID string, settings domain.Settings) (domain.Settings, error)
	ToggleTheme(ctx context.Context, ownerID string, systemDark bool) (domain.Settings, error)
	ToggleMeasurementSystem(ctx context.Context, ownerID string) (domain.Settings, error)
}

type settingsService struct {
	store repository.KeyValueStore
}

func NewSettingsService(store repository.KeyValueStore) SettingsService {
	return &settingsService{store: store}
}

func (s *settingsService) load(ctx context.Context, ownerID string) (*state.Settings, error) {
	settings := state.NewSettings(s.store, ownerID)
	if err := settings.Load(ctx); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Get(ctx context.Context, ownerID string) (domain.Settings, error) {
	settings, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}
	return settings.Value(), nil
}

func (s *settingsService) Update(ctx context.Context, ownerID string, v domain.Settings) (domain.Settings, error) {
	if !v.Theme.IsValid() || !v.Measurement.IsValid() {
		return domain.Settings{}, ErrInvalidSettings
	}
	settings, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := settings.Update(ctx, v); err != nil {
		return domain.Settings{}, err
	}
	return settings.Value(), nil
}

func (s *settingsService) ToggleTheme(ctx context.Context, ownerID string, systemDark bool) (domain.Settings, error) {
	settings, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := settings.ToggleTheme(ctx, systemDark); err != nil {
		return domain.Settings{}, err
	}
	return settings.Value(), nil
}

func (s *settingsService) ToggleMeasurementSystem(ctx context.Context, ownerID string) (domain.Settings, error) {
	settings, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := settings.ToggleMeasurementSystem(ctx); err != nil {
		return domain.Settings{}, err
	}
	return settings.Value(), nil
}
