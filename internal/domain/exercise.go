// internal/domain/exercise.go
package domain

import (
	"time"
)

// MuscleGroup is an anatomical target of an exercise.
type MuscleGroup string

const (
	// Upper body
	MuscleChest     MuscleGroup = "Chest"
	MuscleBack      MuscleGroup = "Back"
	MuscleShoulders MuscleGroup = "Shoulders"
	MuscleBiceps    MuscleGroup = "Biceps"
	MuscleTriceps   MuscleGroup = "Triceps"
	MuscleForearms  MuscleGroup = "Forearms"

	// Core
	MuscleAbs       MuscleGroup = "Abs"
	MuscleObliques  MuscleGroup = "Obliques"
	MuscleLowerBack MuscleGroup = "Lower Back"

	// Lower body
	MuscleQuadriceps MuscleGroup = "Quadriceps"
	MuscleHamstrings MuscleGroup = "Hamstrings"
	MuscleGlutes     MuscleGroup = "Glutes"
	MuscleCalves     MuscleGroup = "Calves"

	MuscleFullBody MuscleGroup = "Full Body"
)

// BodyPart is a coarser region grouping one or more muscle groups.
type BodyPart string

const (
	BodyPartArms      BodyPart = "Arms"
	BodyPartChest     BodyPart = "Chest"
	BodyPartBack      BodyPart = "Back"
	BodyPartShoulders BodyPart = "Shoulders"
	BodyPartCore      BodyPart = "Core"
	BodyPartLegs      BodyPart = "Legs"
	BodyPartFullBody  BodyPart = "Full Body"
)

// ExerciseSource tags where a catalog entry came from.
type ExerciseSource string

const (
	SourcePredefined ExerciseSource = "predefined"
	SourceUser       ExerciseSource = "user"
	SourceCommunity  ExerciseSource = "community"
)

// AllMuscleGroups lists every muscle group in display order.
var AllMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps, MuscleForearms,
	MuscleAbs, MuscleObliques, MuscleLowerBack,
	MuscleQuadriceps, MuscleHamstrings, MuscleGlutes, MuscleCalves,
	MuscleFullBody,
}

// AllBodyParts lists every body part in display order.
var AllBodyParts = []BodyPart{
	BodyPartArms, BodyPartChest, BodyPartBack, BodyPartShoulders, BodyPartCore, BodyPartLegs, BodyPartFullBody,
}

// AllSources lists every exercise source.
var AllSources = []ExerciseSource{SourcePredefined, SourceUser, SourceCommunity}

// IsValid reports whether m is one of the known muscle groups.
func (m MuscleGroup) IsValid() bool {
	_, ok := muscleToBodyPart[m]
	return ok
}

// IsValid reports whether b is one of the known body parts.
func (b BodyPart) IsValid() bool {
	for _, known := range AllBodyParts {
		if b == known {
			return true
		}
	}
	return false
}

// IsValid reports whether s is one of the known sources.
func (s ExerciseSource) IsValid() bool {
	for _, known := range AllSources {
		if s == known {
			return true
		}
	}
	return false
}

// Exercise represents a single exercise definition in the catalog.
type Exercise struct {
	ID               string         `bson:"_id" json:"id"`
	Name             string         `bson:"name" json:"name"`
	Description      string         `bson:"description,omitempty" json:"description,omitempty"`
	PrimaryMuscles   []MuscleGroup  `bson:"primaryMuscles" json:"primaryMuscles"`
	SecondaryMuscles []MuscleGroup  `bson:"secondaryMuscles,omitempty" json:"secondaryMuscles,omitempty"`
	BodyParts        []BodyPart     `bson:"bodyParts" json:"bodyParts"` // Derived from muscles, never authoritative
	Source           ExerciseSource `bson:"source" json:"source"`
	CreatedBy        string         `bson:"createdBy,omitempty" json:"createdBy,omitempty"`     // Only for non-predefined entries
	VariationOf      string         `bson:"variationOf,omitempty" json:"variationOf,omitempty"` // ID of the parent exercise
	MediaKey         string         `bson:"mediaKey,omitempty" json:"mediaKey,omitempty"`       // Object storage key of the demo video/image

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AllMuscles returns primary followed by secondary muscles.
func (e Exercise) AllMuscles() []MuscleGroup {
	out := make([]MuscleGroup, 0, len(e.PrimaryMuscles)+len(e.SecondaryMuscles))
	out = append(out, e.PrimaryMuscles...)
	return append(out, e.SecondaryMuscles...)
}

// IsCustom reports whether the entry was authored by a user or the community.
func (e Exercise) IsCustom() bool {
	return e.Source != SourcePredefined
}

// Clone returns a deep copy so callers can't alias the catalog's slices.
func (e Exercise) Clone() Exercise {
	e.PrimaryMuscles = append([]MuscleGroup(nil), e.PrimaryMuscles...)
	if e.SecondaryMuscles != nil {
		e.SecondaryMuscles = append([]MuscleGroup(nil), e.SecondaryMuscles...)
	}
	e.BodyParts = append([]BodyPart(nil), e.BodyParts...)
	return e
}

// ExerciseDetails is an exercise together with related catalog entries.
type ExerciseDetails struct {
	Exercise
	Variations       []Exercise `json:"variations,omitempty"`
	SimilarExercises []Exercise `json:"similarExercises,omitempty"`
}
