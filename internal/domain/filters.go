package domain

import (
	"strings"
)

// ExerciseFilters is a transient catalog query. Empty fields don't narrow.
type ExerciseFilters struct {
	MuscleGroups []MuscleGroup    `json:"muscleGroups,omitempty"`
	BodyParts    []BodyPart       `json:"bodyParts,omitempty"`
	Sources      []ExerciseSource `json:"sources,omitempty"`
	SearchQuery  string           `json:"searchQuery,omitempty"`
	// CustomOnly predates Sources and is ignored whenever Sources is set.
	CustomOnly bool `json:"customOnly,omitempty"`
}

// IsActive reports whether any structured filter is set. The search query
// doesn't count; the UI shows it separately from the filter badge.
func (f ExerciseFilters) IsActive() bool {
	return len(f.MuscleGroups) > 0 ||
		len(f.BodyParts) > 0 ||
		len(f.Sources) > 0 ||
		f.CustomOnly
}

// ApplyFilters returns the exercises of all that survive every active filter,
// in their original order. all is never modified.
func ApplyFilters(all []Exercise, f ExerciseFilters) []Exercise {
	query := strings.ToLower(f.SearchQuery)

	out := make([]Exercise, 0, len(all))
	for _, ex := range all {
		if query != "" && !matchesSearch(ex, query) {
			continue
		}
		if len(f.MuscleGroups) > 0 && !intersects(ex.AllMuscles(), f.MuscleGroups) {
			continue
		}
		if len(f.BodyParts) > 0 && !intersects(ex.BodyParts, f.BodyParts) {
			continue
		}
		if len(f.Sources) > 0 {
			if !contains(f.Sources, ex.Source) {
				continue
			}
		} else if f.CustomOnly && !ex.IsCustom() {
			continue
		}
		out = append(out, ex)
	}
	return out
}

// matchesSearch expects query to be lower-cased already.
func matchesSearch(ex Exercise, query string) bool {
	if strings.Contains(strings.ToLower(ex.Name), query) {
		return true
	}
	if ex.Description != "" && strings.Contains(strings.ToLower(ex.Description), query) {
		return true
	}
	for _, m := range ex.AllMuscles() {
		if strings.Contains(strings.ToLower(string(m)), query) {
			return true
		}
	}
	return false
}

func intersects[T comparable](have, want []T) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
