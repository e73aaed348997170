package domain

// muscleToBodyPart is total over AllMuscleGroups.
var muscleToBodyPart = map[MuscleGroup]BodyPart{
	MuscleChest:      BodyPartChest,
	MuscleBack:       BodyPartBack,
	MuscleShoulders:  BodyPartShoulders,
	MuscleBiceps:     BodyPartArms,
	MuscleTriceps:    BodyPartArms,
	MuscleForearms:   BodyPartArms,
	MuscleAbs:        BodyPartCore,
	MuscleObliques:   BodyPartCore,
	MuscleLowerBack:  BodyPartCore,
	MuscleQuadriceps: BodyPartLegs,
	MuscleHamstrings: BodyPartLegs,
	MuscleGlutes:     BodyPartLegs,
	MuscleCalves:     BodyPartLegs,
	MuscleFullBody:   BodyPartFullBody,
}

// BodyPartOf returns the body part a muscle group belongs to.
func BodyPartOf(m MuscleGroup) (BodyPart, bool) {
	bp, ok := muscleToBodyPart[m]
	return bp, ok
}

// DeriveBodyParts maps muscles to the distinct body parts they belong to.
// Callers must treat the result as a set; order is not part of the contract.
func DeriveBodyParts(muscles []MuscleGroup) []BodyPart {
	seen := make(map[BodyPart]struct{}, len(muscles))
	out := make([]BodyPart, 0, len(muscles))
	for _, m := range muscles {
		bp, ok := muscleToBodyPart[m]
		if !ok {
			continue
		}
		if _, dup := seen[bp]; dup {
			continue
		}
		seen[bp] = struct{}{}
		out = append(out, bp)
	}
	return out
}
