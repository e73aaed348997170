package memory

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default simulated latencies of the mock catalog.
const (
	DefaultListLatency = 300 * time.Millisecond
	DefaultGetLatency  = 200 * time.Millisecond
)

// ExerciseRepository is an in-memory stand-in for the future catalog API.
type ExerciseRepository struct {
	mu      sync.RWMutex
	order   []string                   // insertion order
	entries map[string]domain.Exercise // id -> exercise
	failErr error

	listLatency time.Duration
	getLatency  time.Duration
	now         func() time.Time
}

// Option configures an ExerciseRepository.
type Option func(*ExerciseRepository)

// WithLatency sets the simulated network delay for list and point lookups.
func WithLatency(list, get time.Duration) Option {
	return func(r *ExerciseRepository) {
		r.listLatency = list
		r.getLatency = get
	}
}

// WithExercises replaces the seed catalog.
func WithExercises(exercises []domain.Exercise) Option {
	return func(r *ExerciseRepository) {
		r.order = nil
		r.entries = make(map[string]domain.Exercise, len(exercises))
		for _, ex := range exercises {
			r.put(ex)
		}
	}
}

// NewExerciseRepository creates a catalog seeded with MockExercises and no latency.
func NewExerciseRepository(opts ...Option) *ExerciseRepository {
	r := &ExerciseRepository{
		entries: make(map[string]domain.Exercise),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, ex := range MockExercises() {
		r.put(ex)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FailWith makes every subsequent read return err. Pass nil to recover.
func (r *ExerciseRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
}

func (r *ExerciseRepository) put(ex domain.Exercise) {
	if _, exists := r.entries[ex.ID]; !exists {
		r.order = append(r.order, ex.ID)
	}
	r.entries[ex.ID] = ex.Clone()
}

func (r *ExerciseRepository) ListAll(ctx context.Context) ([]domain.Exercise, error) {
	if err := r.simulate(ctx, r.listLatency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Exercise, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].Clone())
	}
	return out, nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	if err := r.simulate(ctx, r.getLatency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ex, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := ex.Clone()
	return &clone, nil
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" || len(exercise.PrimaryMuscles) == 0 {
		return "", errors.New("exercise name and primary muscles are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	if _, exists := r.entries[exercise.ID]; exists {
		return "", repository.ErrDuplicate
	}
	now := r.now()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.put(*exercise)
	return exercise.ID, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" {
		return errors.New("exercise ID is required for update")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[exercise.ID]
	if !ok {
		return repository.ErrNotFound
	}
	// Provenance is fixed at creation.
	exercise.Source = existing.Source
	exercise.CreatedBy = existing.CreatedBy
	exercise.CreatedAt = existing.CreatedAt
	exercise.UpdatedAt = r.now()
	r.put(*exercise)
	return nil
}

// simulate waits out the configured latency and reports injected failures.
func (r *ExerciseRepository) simulate(ctx context.Context, d time.Duration) error {
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.failErr
}
