package memory

import (
	"alcyxob/coachy/internal/domain"
	"time"
)

// seedTime keeps mock timestamps stable across runs.
var seedTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func predefined(id, name, description string, primary, secondary []domain.MuscleGroup, variationOf string) domain.Exercise {
	return domain.Exercise{
		ID:               id,
		Name:             name,
		Description:      description,
		PrimaryMuscles:   primary,
		SecondaryMuscles: secondary,
		BodyParts:        domain.DeriveBodyParts(append(append([]domain.MuscleGroup{}, primary...), secondary...)),
		Source:           domain.SourcePredefined,
		VariationOf:      variationOf,
		CreatedAt:        seedTime,
		UpdatedAt:        seedTime,
	}
}

// MockExercises returns a fresh copy of the built-in catalog.
func MockExercises() []domain.Exercise {
	m := func(groups ...domain.MuscleGroup) []domain.MuscleGroup { return groups }

	exercises := []domain.Exercise{
		predefined("1", "Bench Press",
			"A compound exercise that primarily targets the chest muscles, with secondary emphasis on the shoulders and triceps.",
			m(domain.MuscleChest), m(domain.MuscleShoulders, domain.MuscleTriceps), ""),
		predefined("2", "Squat",
			"A compound lower body exercise that primarily targets the quadriceps, with secondary emphasis on the hamstrings and glutes.",
			m(domain.MuscleQuadriceps), m(domain.MuscleHamstrings, domain.MuscleGlutes), ""),
		predefined("3", "Deadlift",
			"A compound full-body exercise that primarily targets the lower back, with secondary emphasis on the hamstrings, glutes, and traps.",
			m(domain.MuscleLowerBack), m(domain.MuscleHamstrings, domain.MuscleGlutes), ""),
		predefined("4", "Pull-up",
			"A compound upper body exercise that primarily targets the back muscles, with secondary emphasis on the biceps and shoulders.",
			m(domain.MuscleBack), m(domain.MuscleBiceps, domain.MuscleShoulders), ""),
		predefined("5", "Dumbbell Shoulder Press",
			"A compound upper body exercise that primarily targets the shoulder muscles, with secondary emphasis on the triceps.",
			m(domain.MuscleShoulders), m(domain.MuscleTriceps), ""),
		predefined("6", "Barbell Curl",
			"An isolation exercise that primarily targets the biceps muscles.",
			m(domain.MuscleBiceps), m(domain.MuscleForearms), ""),
		predefined("7", "Tricep Pushdown",
			"An isolation exercise that primarily targets the triceps muscles.",
			m(domain.MuscleTriceps), nil, ""),
		predefined("8", "Leg Press",
			"A compound lower body exercise that primarily targets the quadriceps, with secondary emphasis on the hamstrings and glutes.",
			m(domain.MuscleQuadriceps), m(domain.MuscleHamstrings, domain.MuscleGlutes), "2"),
		predefined("9", "Incline Bench Press",
			"A variation of the bench press that puts more emphasis on the upper chest.",
			m(domain.MuscleChest), m(domain.MuscleShoulders, domain.MuscleTriceps), "1"),
		predefined("10", "Crunches",
			"An isolation exercise that primarily targets the abdominal muscles.",
			m(domain.MuscleAbs), nil, ""),
	}
	// Creation times follow catalog order so createdAt sorts match it.
	for i := range exercises {
		exercises[i].CreatedAt = seedTime.Add(time.Duration(i) * time.Second)
		exercises[i].UpdatedAt = exercises[i].CreatedAt
	}
	return exercises
}
