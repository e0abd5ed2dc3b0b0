package quiz

import (
	"fitcoach/domain/core"
)

// Gender is the biological sex used by the Mifflin-St Jeor equation
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel describes habitual daily activity outside training
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
)

// Goal is the user's stated training objective
type Goal string

const (
	GoalLoseWeight  Goal = "lose_weight"
	GoalGainMuscle  Goal = "gain_muscle"
	GoalGetShredded Goal = "get_shredded"
)

// Data is an immutable snapshot of one user's biometric and lifestyle inputs.
// Created once per assessment and never mutated after submission.
type Data struct {
	WeightKG          float64       `json:"weight_kg"`
	HeightCM          float64       `json:"height_cm"`
	Age               int           `json:"age"`
	Gender            Gender        `json:"gender"`
	ActivityLevel     ActivityLevel `json:"activity_level"`
	Goal              Goal          `json:"goal"`
	TargetWeightKG    float64       `json:"target_weight_kg"`
	TargetPeriodWeeks float64       `json:"target_period_weeks"`
	GymDaysPerWeek    int           `json:"gym_days_per_week"`

	// BodyImageRef is an opaque reference to an uploaded body photo.
	// The core never dereferences it.
	BodyImageRef string `json:"body_image_ref,omitempty"`
}

// Validate re-checks numeric ranges. Upstream collectors are treated as
// validated-enough, but the core still guards against implausible values.
func (d Data) Validate() error {
	if d.WeightKG <= 0 {
		return core.NewUnsafeInputError("weight_kg", d.WeightKG)
	}
	if d.HeightCM <= 0 {
		return core.NewUnsafeInputError("height_cm", d.HeightCM)
	}
	if d.Age <= 0 {
		return core.NewUnsafeInputError("age", float64(d.Age))
	}
	if d.Gender != GenderMale && d.Gender != GenderFemale {
		return core.NewUnsafeInputError("gender", 0)
	}
	if d.TargetPeriodWeeks <= 0 {
		return core.NewPeriodError(d.TargetPeriodWeeks)
	}
	return nil
}

// WantsFatLoss reports whether the snapshot implies a fat-loss plan rather
// than a surplus plan.
func (d Data) WantsFatLoss() bool {
	return d.Goal != GoalGainMuscle
}
