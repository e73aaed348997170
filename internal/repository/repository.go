package repository

import (
	"alcyxob/coachy/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ExerciseRepository owns the canonical exercise catalog.
// Entries are never deleted.
type ExerciseRepository interface {
	// ListAll returns a snapshot; mutating it doesn't affect the catalog.
	ListAll(ctx context.Context) ([]domain.Exercise, error)
	// GetByID returns ErrNotFound when id matches no entry.
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
}

// KeyValueStore persists small scalar values (session flags, preferences)
// scoped by owner. Missing keys return ErrNotFound.
type KeyValueStore interface {
	Get(ctx context.Context, owner, key string) (string, error)
	Set(ctx context.Context, owner, key, value string) error
	Delete(ctx context.Context, owner, key string) error
}
