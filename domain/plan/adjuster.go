// Package plan applies safety bounds to a requested fat-loss plan and
// recomputes a feasible timeline when the requested goal is unsafe.
package plan

import (
	"fitcoach/domain/biometrics"
	"fitcoach/domain/core"
	"fitcoach/domain/quiz"
)

// Safety bounds. Minimum intakes follow standard clinical guidance; the
// deficit ceiling is a soft cap tightened by a body-weight-relative limit
// of 1% body weight per week.
const (
	MinIntakeFemale = 1200.0
	MinIntakeMale   = 1500.0

	MaxDailyDeficit = 1000.0

	SafeDeficitFloor   = 500.0
	SafeDeficitCeiling = 750.0

	SurplusMin = 250.0
	SurplusMax = 500.0

	ActivityBurnMin = 300.0
	ActivityBurnMax = 500.0
)

// DeficitStrategy selects the clamped deficit inside [SafeDeficitFloor,
// SafeDeficitCeiling] when a requested plan is unrealistic.
type DeficitStrategy string

const (
	// StrategyLeastAggressive always picks the floor: slowest still-meaningful
	// weekly loss.
	StrategyLeastAggressive DeficitStrategy = "least_aggressive"
	// StrategyProportional scales with excess fat, so users further from goal
	// get a firmer (still bounded) deficit.
	StrategyProportional DeficitStrategy = "proportional"
)

// Policy holds the tunable knobs of the realism adjustment.
type Policy struct {
	Strategy         DeficitStrategy `json:"strategy"`
	SurplusKcal      float64         `json:"surplus_kcal"`
	ActivityBurnKcal float64         `json:"activity_burn_kcal"`
}

// DefaultPolicy returns the shipped defaults: least-aggressive clamping,
// 300 kcal bulk surplus, 400 kcal suggested activity burn.
func DefaultPolicy() Policy {
	return Policy{
		Strategy:         StrategyLeastAggressive,
		SurplusKcal:      300,
		ActivityBurnKcal: 400,
	}
}

// Adjustment is the outcome of the realism check for one assessment.
type Adjustment struct {
	TargetIntakeKcal  float64  `json:"target_intake_kcal"`
	IsRealistic       bool     `json:"is_realistic"`
	AdjustedWeeks     *float64 `json:"adjusted_weeks,omitempty"`
	AppliedDeficit    float64  `json:"applied_deficit_kcal"`
	ActivityBurnKcal  float64  `json:"target_burn_per_day_activity"`
	MaxSafeDeficit    float64  `json:"max_safe_deficit_kcal"`
	MinSafeIntakeKcal float64  `json:"min_safe_intake_kcal"`
}

// MinSafeIntake returns the minimum safe daily intake for a gender.
func MinSafeIntake(g quiz.Gender) float64 {
	if g == quiz.GenderFemale {
		return MinIntakeFemale
	}
	return MinIntakeMale
}

// maxSafeDeficit is the global ceiling tightened by the 1%-of-body-weight-
// per-week bound when body weight is known.
func maxSafeDeficit(weightKG float64) float64 {
	limit := MaxDailyDeficit
	if weightKG > 0 {
		relative := weightKG * 0.01 * biometrics.KcalPerKGFat / 7
		if relative < limit {
			limit = relative
		}
	}
	return limit
}

// pickSafeDeficit chooses the clamped deficit per the policy strategy.
func (p Policy) pickSafeDeficit(excessFatKG float64) float64 {
	switch p.Strategy {
	case StrategyProportional:
		// 25 kg of excess fat saturates the range.
		frac := excessFatKG / 25
		if frac > 1 {
			frac = 1
		}
		if frac < 0 {
			frac = 0
		}
		return SafeDeficitFloor + frac*(SafeDeficitCeiling-SafeDeficitFloor)
	default:
		return SafeDeficitFloor
	}
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Adjust applies the realism check to the computed energy figures.
//
// A plan is unrealistic when the needed deficit exceeds the safe ceiling or
// would push intake below the gender minimum. Unrealistic plans are clamped
// to a safe deficit and the timeline recomputed; realistic plans pass
// through. Muscle-gain goals skip the check entirely and get a surplus.
//
// The only hard failure is ErrUnsafeInput: the inputs are so implausible
// that even the clamped minimum cannot produce a safe answer.
func (p Policy) Adjust(e biometrics.Energy, d quiz.Data) (Adjustment, error) {
	if d.WeightKG <= 0 {
		return Adjustment{}, core.NewUnsafeInputError("weight_kg", d.WeightKG)
	}
	if e.TDEE <= 0 {
		return Adjustment{}, core.NewUnsafeInputError("tdee_kcal", e.TDEE)
	}

	burn := clamp(p.ActivityBurnKcal, ActivityBurnMin, ActivityBurnMax)
	minIntake := MinSafeIntake(d.Gender)

	// Surplus goals have no deficit to bound.
	if !d.WantsFatLoss() {
		surplus := clamp(p.SurplusKcal, SurplusMin, SurplusMax)
		return Adjustment{
			TargetIntakeKcal:  e.TDEE + surplus,
			IsRealistic:       true,
			ActivityBurnKcal:  burn,
			MaxSafeDeficit:    maxSafeDeficit(d.WeightKG),
			MinSafeIntakeKcal: minIntake,
		}, nil
	}

	// A TDEE at or below the minimum safe intake leaves no room for any
	// deficit; only implausible biometrics produce this.
	if e.TDEE <= minIntake {
		return Adjustment{}, core.NewUnsafeInputError("tdee_kcal", e.TDEE)
	}

	maxSafe := maxSafeDeficit(d.WeightKG)
	realistic := e.DailyDeficitNeeded <= maxSafe && e.TDEE-e.DailyDeficitNeeded >= minIntake

	if realistic {
		return Adjustment{
			TargetIntakeKcal:  e.TDEE - e.DailyDeficitNeeded,
			IsRealistic:       true,
			AppliedDeficit:    e.DailyDeficitNeeded,
			ActivityBurnKcal:  burn,
			MaxSafeDeficit:    maxSafe,
			MinSafeIntakeKcal: minIntake,
		}, nil
	}

	safe := p.pickSafeDeficit(e.ExcessFatKG)
	// The clamped deficit must still respect the minimum intake.
	if e.TDEE-safe < minIntake {
		safe = e.TDEE - minIntake
	}

	adjusted := 0.0
	if safe > 0 {
		adjusted = e.TotalGapKcal / (safe * 7)
	}

	return Adjustment{
		TargetIntakeKcal:  e.TDEE - safe,
		IsRealistic:       false,
		AdjustedWeeks:     &adjusted,
		AppliedDeficit:    safe,
		ActivityBurnKcal:  burn,
		MaxSafeDeficit:    maxSafe,
		MinSafeIntakeKcal: minIntake,
	}, nil
}
