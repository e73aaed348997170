// Package state holds the small per-owner containers kept in secure storage:
// the signed-in user with the guest flag, and display settings. Each container
// is loaded explicitly and saved explicitly on mutation.
package state

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Storage keys shared with the app's secure store.
const (
	UserStorageKey  = "app_user_data"
	GuestStorageKey = "app_guest_mode"
)

// Session is the signed-in state of one owner (a user or guest id).
type Session struct {
	kv    repository.KeyValueStore
	owner string

	user    *domain.SessionUser
	isGuest bool
}

func NewSession(kv repository.KeyValueStore, owner string) *Session {
	return &Session{kv: kv, owner: owner}
}

// Load replaces in-memory state with what is stored. Missing keys mean
// signed out. A corrupt user record is reported but leaves the session
// signed out rather than half-loaded.
func (s *Session) Load(ctx context.Context) error {
	s.user = nil
	s.isGuest = false

	raw, err := s.kv.Get(ctx, s.owner, UserStorageKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return fmt.Errorf("load user: %w", err)
	default:
		var u domain.SessionUser
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return fmt.Errorf("decode user: %w", err)
		}
		s.user = &u
	}

	guest, err := s.kv.Get(ctx, s.owner, GuestStorageKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return fmt.Errorf("load guest flag: %w", err)
	default:
		s.isGuest = guest == "true"
	}
	return nil
}

// Save writes the current state. A nil user deletes the stored record.
func (s *Session) Save(ctx context.Context) error {
	if s.user != nil {
		raw, err := json.Marshal(s.user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		if err := s.kv.Set(ctx, s.owner, UserStorageKey, string(raw)); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
	} else if err := s.kv.Delete(ctx, s.owner, UserStorageKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}

	guest := "false"
	if s.isGuest {
		guest = "true"
	}
	if err := s.kv.Set(ctx, s.owner, GuestStorageKey, guest); err != nil {
		return fmt.Errorf("save guest flag: %w", err)
	}
	return nil
}

// Login signs the user in and turns guest mode off.
func (s *Session) Login(ctx context.Context, user domain.SessionUser) error {
	s.user = &user
	s.isGuest = false
	return s.Save(ctx)
}

// ContinueAsGuest drops any user and enters guest mode.
func (s *Session) ContinueAsGuest(ctx context.Context) error {
	s.user = nil
	s.isGuest = true
	return s.Save(ctx)
}

// Logout clears everything, including both stored keys.
func (s *Session) Logout(ctx context.Context) error {
	s.user = nil
	s.isGuest = false
	if err := s.kv.Delete(ctx, s.owner, UserStorageKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	if err := s.kv.Delete(ctx, s.owner, GuestStorageKey); err != nil {
		return fmt.Errorf("clear guest flag: %w", err)
	}
	return nil
}

func (s *Session) User() *domain.SessionUser {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsGuest() bool { return s.isGuest }

// IsAuthenticated is true for a signed-in user and for guest mode alike.
func (s *Session) IsAuthenticated() bool {
	return s.user != nil || s.isGuest
}
