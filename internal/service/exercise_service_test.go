package service

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/repository/memory"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var member = Principal{UserID: "user-1", Role: domain.RoleMember}

func newExerciseService(t *testing.T, opts ...memory.Option) (ExerciseService, *memory.ExerciseRepository) {
	t.Helper()
	repo := memory.NewExerciseRepository(opts...)
	return NewExerciseService(repo, nil), repo
}

func exerciseNames(list []domain.Exercise) []string {
	out := make([]string, len(list))
	for i, ex := range list {
		out[i] = ex.Name
	}
	return out
}

func TestExerciseService_ListAllReturnsSnapshot(t *testing.T) {
	svc, _ := newExerciseService(t)
	ctx := context.Background()

	first, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 10)
	first[0].Name = "mutated"
	first[0].PrimaryMuscles[0] = domain.MuscleCalves

	second, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", second[0].Name)
	assert.Equal(t, domain.MuscleChest, second[0].PrimaryMuscles[0])
}

func TestExerciseService_GetByIDAbsentIsNotAnError(t *testing.T) {
	svc, _ := newExerciseService(t)

	ex, err := svc.GetByID(context.Background(), "nonexistent")
	assert.NoError(t, err)
	assert.Nil(t, ex)

	ex, err = svc.GetByID(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, ex)
	assert.Equal(t, "Squat", ex.Name)
}

func TestExerciseService_FetchFailureIsRecoverable(t *testing.T) {
	svc, repo := newExerciseService(t)
	ctx := context.Background()
	boom := errors.New("network down")

	repo.FailWith(boom)
	_, err := svc.ListAll(ctx)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, boom)

	_, err = svc.GetByID(ctx, "1")
	assert.ErrorIs(t, err, ErrFetchFailed)

	repo.FailWith(nil)
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestExerciseService_LatencyHonorsContext(t *testing.T) {
	svc, _ := newExerciseService(t, memory.WithLatency(time.Second, time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.ListAll(ctx)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExerciseService_Search(t *testing.T) {
	svc, _ := newExerciseService(t)
	ctx := context.Background()

	got, err := svc.Search(ctx, domain.ExerciseFilters{SearchQuery: "press"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bench Press", "Dumbbell Shoulder Press", "Leg Press", "Incline Bench Press"}, exerciseNames(got))

	got, err = svc.Search(ctx, domain.ExerciseFilters{BodyParts: []domain.BodyPart{domain.BodyPartCore}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Deadlift", "Crunches"}, exerciseNames(got))

	got, err = svc.Search(ctx, domain.ExerciseFilters{CustomOnly: true})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExerciseService_GetDetails(t *testing.T) {
	svc, _ := newExerciseService(t)
	ctx := context.Background()

	details, err := svc.GetDetails(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "Bench Press", details.Name)
	assert.Equal(t, []string{"Incline Bench Press"}, exerciseNames(details.Variations))
	assert.Empty(t, details.SimilarExercises)

	details, err = svc.GetDetails(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, []string{"Squat"}, exerciseNames(details.Variations))
	assert.Empty(t, details.SimilarExercises)

	details, err = svc.GetDetails(ctx, "6")
	require.NoError(t, err)
	assert.Empty(t, details.Variations)
	assert.Empty(t, details.SimilarExercises)

	details, err = svc.GetDetails(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, details)
}

func TestExerciseService_CreateCustomExercise(t *testing.T) {
	svc, _ := newExerciseService(t)
	ctx := context.Background()

	ex, err := svc.CreateCustomExercise(ctx, member, ExerciseInput{
		Name:             "  Close-Grip Bench  ",
		PrimaryMuscles:   []domain.MuscleGroup{domain.MuscleTriceps, domain.MuscleTriceps},
		SecondaryMuscles: []domain.MuscleGroup{domain.MuscleChest, domain.MuscleTriceps},
		VariationOf:      "1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, "Close-Grip Bench", ex.Name)
	assert.Equal(t, domain.SourceUser, ex.Source)
	assert.Equal(t, "user-1", ex.CreatedBy)
	assert.Equal(t, []domain.MuscleGroup{domain.MuscleTriceps}, ex.PrimaryMuscles)
	assert.Equal(t, []domain.MuscleGroup{domain.MuscleChest}, ex.SecondaryMuscles)
	assert.ElementsMatch(t, []domain.BodyPart{domain.BodyPartArms, domain.BodyPartChest}, ex.BodyParts)

	custom, err := svc.Search(ctx, domain.ExerciseFilters{CustomOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Close-Grip Bench"}, exerciseNames(custom))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 11)
}

func TestExerciseService_CreateCustomExerciseValidation(t *testing.T) {
	svc, _ := newExerciseService(t)

	tests := []struct {
		name    string
		author  Principal
		input   ExerciseInput
		wantErr error
	}{
		{"guest", Principal{UserID: "g", Role: domain.RoleGuest}, ExerciseInput{Name: "x", PrimaryMuscles: []domain.MuscleGroup{domain.MuscleAbs}}, ErrGuestNotAllowed},
		{"blank name", member, ExerciseInput{Name: "  ", PrimaryMuscles: []domain.MuscleGroup{domain.MuscleAbs}}, ErrValidationFailed},
		{"no primary", member, ExerciseInput{Name: "x"}, ErrValidationFailed},
		{"unknown muscle", member, ExerciseInput{Name: "x", PrimaryMuscles: []domain.MuscleGroup{"Neck"}}, ErrValidationFailed},
		{"missing parent", member, ExerciseInput{Name: "x", PrimaryMuscles: []domain.MuscleGroup{domain.MuscleAbs}, VariationOf: "404"}, ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCustomExercise(context.Background(), tt.author, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExerciseService_UpdateCustomExercise(t *testing.T) {
	svc, _ := newExerciseService(t)
	ctx := context.Background()

	created, err := svc.CreateCustomExercise(ctx, member, ExerciseInput{
		Name:           "Hollow Hold",
		PrimaryMuscles: []domain.MuscleGroup{domain.MuscleAbs},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateCustomExercise(ctx, member, created.ID, ExerciseInput{
		Name:           "Hollow Body Hold",
		Description:    "Isometric core hold",
		PrimaryMuscles: []domain.MuscleGroup{domain.MuscleAbs, domain.MuscleObliques},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hollow Body Hold", updated.Name)
	assert.Equal(t, []domain.BodyPart{domain.BodyPartCore}, updated.BodyParts)

	stored, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Isometric core hold", stored.Description)
	assert.Equal(t, domain.SourceUser, stored.Source)
	assert.Equal(t, "user-1", stored.CreatedBy)

	_, err = svc.UpdateCustomExercise(ctx, Principal{UserID: "someone-else", Role: domain.RoleMember}, created.ID, ExerciseInput{Name: "x", PrimaryMuscles: []domain.MuscleGroup{domain.MuscleAbs}})
	assert.ErrorIs(t, err, ErrExerciseAccessDenied)

	_, err = svc.UpdateCustomExercise(ctx, member, "1", ExerciseInput{Name: "x", PrimaryMuscles: []domain.MuscleGroup{domain.MuscleAbs}})
	assert.ErrorIs(t, err, ErrExerciseAccessDenied)

	_, err = svc.UpdateCustomExercise(ctx, member, "missing", ExerciseInput{Name: "x", PrimaryMuscles: []domain.MuscleGroup{domain.MuscleAbs}})
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	_, err = svc.UpdateCustomExercise(ctx, member, created.ID, ExerciseInput{Name: "x", PrimaryMuscles: []domain.MuscleGroup{domain.MuscleAbs}, VariationOf: created.ID})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
