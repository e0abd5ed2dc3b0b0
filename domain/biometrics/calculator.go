package biometrics

import (
	"math"

	"fitcoach/domain/core"
	"fitcoach/domain/quiz"
)

// KcalPerKGFat is the empirical energy density of adipose tissue.
const KcalPerKGFat = 7700

// activityMultipliers maps activity levels to their TDEE multiplier.
// This is the single source of truth for valid activity levels.
var activityMultipliers = map[quiz.ActivityLevel]float64{
	quiz.ActivitySedentary:        1.2,
	quiz.ActivityLightlyActive:    1.375,
	quiz.ActivityModeratelyActive: 1.55,
	quiz.ActivityVeryActive:       1.725,
}

// Multiplier returns the TDEE multiplier for an activity level.
func Multiplier(level quiz.ActivityLevel) (float64, error) {
	m, ok := activityMultipliers[level]
	if !ok {
		return 0, core.NewActivityLevelError(string(level))
	}
	return m, nil
}

// Energy holds the derived energy quantities for one assessment.
type Energy struct {
	BMR                float64 `json:"bmr_kcal"`
	TDEE               float64 `json:"tdee_kcal"`
	ExcessFatKG        float64 `json:"excess_fat_kg"`
	TotalGapKcal       float64 `json:"total_gap_kcal"`
	DailyDeficitNeeded float64 `json:"daily_deficit_needed_kcal"`
}

// BMR computes the basal metabolic rate via Mifflin-St Jeor.
func BMR(weightKG, heightCM float64, age int, gender quiz.Gender) (float64, error) {
	if weightKG <= 0 {
		return 0, core.NewUnsafeInputError("weight_kg", weightKG)
	}
	if heightCM <= 0 {
		return 0, core.NewUnsafeInputError("height_cm", heightCM)
	}
	if age <= 0 {
		return 0, core.NewUnsafeInputError("age", float64(age))
	}

	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	switch gender {
	case quiz.GenderMale:
		bmr += 5
	case quiz.GenderFemale:
		bmr -= 161
	default:
		return 0, core.NewUnsafeInputError("gender", 0)
	}
	return bmr, nil
}

// TDEE scales BMR by the activity multiplier for the given level.
func TDEE(bmr float64, level quiz.ActivityLevel) (float64, error) {
	m, err := Multiplier(level)
	if err != nil {
		return 0, err
	}
	return bmr * m, nil
}

// Compute derives all energy quantities from a quiz snapshot. Pure function
// of its inputs: no side effects, no randomness.
func Compute(d quiz.Data) (Energy, error) {
	if err := d.Validate(); err != nil {
		return Energy{}, err
	}

	bmr, err := BMR(d.WeightKG, d.HeightCM, d.Age, d.Gender)
	if err != nil {
		return Energy{}, err
	}
	tdee, err := TDEE(bmr, d.ActivityLevel)
	if err != nil {
		return Energy{}, err
	}

	// Excess fat is zero when the user is not aiming to lose (e.g. muscle gain
	// or target above current weight).
	excess := math.Max(0, d.WeightKG-d.TargetWeightKG)
	gap := excess * KcalPerKGFat

	if d.TargetPeriodWeeks <= 0 {
		return Energy{}, core.NewPeriodError(d.TargetPeriodWeeks)
	}
	deficit := gap / (d.TargetPeriodWeeks * 7)

	return Energy{
		BMR:                bmr,
		TDEE:               tdee,
		ExcessFatKG:        excess,
		TotalGapKcal:       gap,
		DailyDeficitNeeded: deficit,
	}, nil
}
