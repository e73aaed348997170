package service

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/platform/logger"
	"alcyxob/coachy/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrFetchFailed          = errors.New("failed to fetch exercises")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify this exercise")
	ErrValidationFailed     = errors.New("exercise validation failed")
	ErrGuestNotAllowed      = errors.New("guests cannot author exercises")
)

// ExerciseInput carries the editable fields of a custom exercise.
type ExerciseInput struct {
	Name             string
	Description      string
	PrimaryMuscles   []domain.MuscleGroup
	SecondaryMuscles []domain.MuscleGroup
	VariationOf      string
}

// ExerciseService is the catalog as the presentation layer sees it.
type ExerciseService interface {
	// ListAll returns a snapshot of the whole catalog. Failures wrap ErrFetchFailed.
	ListAll(ctx context.Context) ([]domain.Exercise, error)
	// GetByID returns (nil, nil) when id matches nothing.
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	// Search lists the catalog and applies filters to it.
	Search(ctx context.Context, filters domain.ExerciseFilters) ([]domain.Exercise, error)
	// GetDetails returns (nil, nil) when id matches nothing.
	GetDetails(ctx context.Context, id string) (*domain.ExerciseDetails, error)
	CreateCustomExercise(ctx context.Context, author Principal, input ExerciseInput) (*domain.Exercise, error)
	UpdateCustomExercise(ctx context.Context, author Principal, exerciseID string, input ExerciseInput) (*domain.Exercise, error)
}

// Principal identifies the caller of a write operation.
type Principal struct {
	UserID string
	Role   domain.Role
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	log          *logger.Logger
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, log *logger.Logger) ExerciseService {
	if log == nil {
		log = logger.Nop()
	}
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		log:          log.With("component", "exercise_service"),
	}
}

func (s *exerciseService) ListAll(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.ListAll(ctx)
	if err != nil {
		s.log.Error("Error fetching exercises", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return exercises, nil
}

func (s *exerciseService) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("Error fetching exercise", "exercise_id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return exercise, nil
}

func (s *exerciseService) Search(ctx context.Context, filters domain.ExerciseFilters) ([]domain.Exercise, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ApplyFilters(all, filters), nil
}

// GetDetails fetches the exercise and the catalog in parallel, then collects
// variations (children, plus the parent when this one is a variation) and
// similar exercises (sharing a primary muscle, excluding variations).
func (s *exerciseService) GetDetails(ctx context.Context, id string) (*domain.ExerciseDetails, error) {
	var (
		exercise *domain.Exercise
		all      []domain.Exercise
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exercise, err = s.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = s.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, nil
	}

	details := &domain.ExerciseDetails{Exercise: *exercise}
	related := make(map[string]bool)
	for _, other := range all {
		if other.ID == exercise.ID {
			continue
		}
		if other.VariationOf == exercise.ID || (exercise.VariationOf != "" && other.ID == exercise.VariationOf) {
			details.Variations = append(details.Variations, other)
			related[other.ID] = true
		}
	}
	for _, other := range all {
		if other.ID == exercise.ID || related[other.ID] {
			continue
		}
		if sharesMuscle(exercise.PrimaryMuscles, other.PrimaryMuscles) {
			details.SimilarExercises = append(details.SimilarExercises, other)
		}
	}
	return details, nil
}

func sharesMuscle(a, b []domain.MuscleGroup) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// CreateCustomExercise adds a user-authored exercise to the catalog.
func (s *exerciseService) CreateCustomExercise(ctx context.Context, author Principal, input ExerciseInput) (*domain.Exercise, error) {
	if err := checkAuthor(author); err != nil {
		return nil, err
	}
	exercise, err := s.buildExercise(ctx, input, "")
	if err != nil {
		return nil, err
	}
	exercise.Source = domain.SourceUser
	exercise.CreatedBy = author.UserID

	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	s.log.Info("Custom exercise created", "exercise_id", exercise.ID, "user_id", author.UserID)
	return exercise, nil
}

// UpdateCustomExercise edits an exercise the caller authored.
func (s *exerciseService) UpdateCustomExercise(ctx context.Context, author Principal, exerciseID string, input ExerciseInput) (*domain.Exercise, error) {
	if err := checkAuthor(author); err != nil {
		return nil, err
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if existing.Source != domain.SourceUser || existing.CreatedBy != author.UserID {
		return nil, ErrExerciseAccessDenied
	}

	updated, err := s.buildExercise(ctx, input, exerciseID)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Source = existing.Source
	updated.CreatedBy = existing.CreatedBy
	updated.MediaKey = existing.MediaKey
	updated.CreatedAt = existing.CreatedAt

	if err := s.exerciseRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return updated, nil
}

func checkAuthor(author Principal) error {
	if author.Role == domain.RoleGuest {
		return ErrGuestNotAllowed
	}
	if author.UserID == "" {
		return errors.New("author ID is required")
	}
	return nil
}

// buildExercise validates input the way the exercise form does: a name and
// at least one primary muscle are required, and a muscle can't be both
// primary and secondary (primary wins).
func (s *exerciseService) buildExercise(ctx context.Context, input ExerciseInput, selfID string) (*domain.Exercise, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}

	primary := dedupeMuscles(input.PrimaryMuscles, nil)
	if len(primary) == 0 {
		return nil, fmt.Errorf("%w: at least one primary muscle group is required", ErrValidationFailed)
	}
	for _, m := range append(append([]domain.MuscleGroup{}, input.PrimaryMuscles...), input.SecondaryMuscles...) {
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: unknown muscle group %q", ErrValidationFailed, m)
		}
	}
	secondary := dedupeMuscles(input.SecondaryMuscles, primary)

	if input.VariationOf != "" {
		if input.VariationOf == selfID {
			return nil, fmt.Errorf("%w: an exercise cannot be a variation of itself", ErrValidationFailed)
		}
		if _, err := s.exerciseRepo.GetByID(ctx, input.VariationOf); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent exercise %q does not exist", ErrValidationFailed, input.VariationOf)
			}
			return nil, err
		}
	}

	exercise := &domain.Exercise{
		Name:           name,
		Description:    strings.TrimSpace(input.Description),
		PrimaryMuscles: primary,
		VariationOf:    input.VariationOf,
	}
	if len(secondary) > 0 {
		exercise.SecondaryMuscles = secondary
	}
	exercise.BodyParts = domain.DeriveBodyParts(exercise.AllMuscles())
	return exercise, nil
}

// dedupeMuscles keeps first occurrences and drops anything in exclude.
func dedupeMuscles(in, exclude []domain.MuscleGroup) []domain.MuscleGroup {
	seen := make(map[domain.MuscleGroup]bool, len(in)+len(exclude))
	for _, m := range exclude {
		seen[m] = true
	}
	out := make([]domain.MuscleGroup, 0, len(in))
	for _, m := range in {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
