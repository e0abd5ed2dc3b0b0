// Package report defines the shape an assembled assessment report must
// satisfy before it is handed to rendering, plus the degraded fallback used
// when assembly fails. Validation is a tagged-variant result, never a panic.
package report

import (
	"fmt"
	"math"

	"fitcoach/domain/core"
)

// Numbers holds the core-owned calorie figures.
type Numbers struct {
	CurrentMaintenanceCalories float64 `json:"current_maintenance_calories"`
	DailyCalorieDeficitNeeded  float64 `json:"daily_calorie_deficit_needed"`
	TargetIntakeKcal           float64 `json:"target_intake_kcal"`
	TargetBurnPerDayActivity   float64 `json:"target_burn_per_day_activity"`
}

// Timeline holds the core-owned feasibility figures.
// AdjustedTimelineWeeks is present iff IsTimelineRealistic is false.
type Timeline struct {
	ExcessFatKG           float64  `json:"excess_fat_kg"`
	WeeksToGoal           float64  `json:"weeks_to_goal"`
	ProjectedLossPerWeek  float64  `json:"projected_loss_per_week_kg"`
	IsTimelineRealistic   bool     `json:"is_timeline_realistic"`
	AdjustedTimelineWeeks *float64 `json:"adjusted_timeline_weeks,omitempty"`
}

// NutritionTargets is AI-populated macro guidance. Gram ranges are either an
// ordered [min,max] pair or absent entirely; never a placeholder string.
type NutritionTargets struct {
	ProteinG    float64   `json:"protein_g"`
	CarbsGRange []float64 `json:"carbs_g_range,omitempty"`
	FatsGRange  []float64 `json:"fats_g_range,omitempty"`
	WaterL      float64   `json:"water_l,omitempty"`
}

// BodyComp is the AI's body-composition commentary; opaque to the core.
type BodyComp struct {
	EstimatedBodyFatPct string `json:"estimated_body_fat_pct,omitempty"`
	Assessment          string `json:"assessment,omitempty"`
}

// Flag is a single AI-raised caution attached to the report.
type Flag struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Data is the full assembled report payload.
type Data struct {
	Numbers          Numbers          `json:"numbers"`
	Timeline         Timeline         `json:"timeline"`
	NutritionTargets NutritionTargets `json:"nutrition_targets"`
	BodyComp         BodyComp         `json:"body_comp"`
	Flags            []Flag           `json:"flags"`
	Methodology      string           `json:"methodology"`
	ReportMarkdown   string           `json:"report_markdown"`
}

// Result is the tagged outcome of contract validation: either OK or a named
// violation. Callers substitute a fallback report on violation instead of
// propagating a partial object to rendering.
type Result struct {
	OK        bool
	Violation *Violation
}

// Violation names the missing or malformed field.
type Violation struct {
	Field  string
	Reason string
}

// Err converts a violation into the domain error taxonomy.
func (v Violation) Err() error {
	return core.NewSchemaViolationError(v.Field, v.Reason)
}

func ok() Result {
	return Result{OK: true}
}

func violated(field, reason string) Result {
	return Result{Violation: &Violation{Field: field, Reason: reason}}
}

// Validate checks the assembled report against the assembly contract.
func Validate(d Data) Result {
	numberFields := []struct {
		field string
		value float64
	}{
		{"numbers.current_maintenance_calories", d.Numbers.CurrentMaintenanceCalories},
		{"numbers.daily_calorie_deficit_needed", d.Numbers.DailyCalorieDeficitNeeded},
		{"numbers.target_intake_kcal", d.Numbers.TargetIntakeKcal},
		{"numbers.target_burn_per_day_activity", d.Numbers.TargetBurnPerDayActivity},
		{"timeline.excess_fat_kg", d.Timeline.ExcessFatKG},
		{"timeline.weeks_to_goal", d.Timeline.WeeksToGoal},
	}
	for _, nf := range numberFields {
		if math.IsNaN(nf.value) || math.IsInf(nf.value, 0) {
			return violated(nf.field, "must be a finite number")
		}
		if nf.value < 0 {
			return violated(nf.field, "must not be negative")
		}
	}

	if d.Timeline.IsTimelineRealistic && d.Timeline.AdjustedTimelineWeeks != nil {
		return violated("timeline.adjusted_timeline_weeks", "present on realistic timeline")
	}
	if !d.Timeline.IsTimelineRealistic {
		if d.Timeline.AdjustedTimelineWeeks == nil {
			return violated("timeline.adjusted_timeline_weeks", "missing on unrealistic timeline")
		}
		if *d.Timeline.AdjustedTimelineWeeks <= 0 {
			return violated("timeline.adjusted_timeline_weeks", "must be positive")
		}
	}

	if r := checkGramRange("nutrition_targets.carbs_g_range", d.NutritionTargets.CarbsGRange); r.Violation != nil {
		return r
	}
	if r := checkGramRange("nutrition_targets.fats_g_range", d.NutritionTargets.FatsGRange); r.Violation != nil {
		return r
	}

	for i, f := range d.Flags {
		if f.Message == "" {
			return violated(fmt.Sprintf("flags[%d].message", i), "must not be empty")
		}
	}

	if d.Methodology == "" {
		return violated("methodology", "must not be empty")
	}
	if d.ReportMarkdown == "" {
		return violated("report_markdown", "must not be empty")
	}

	return ok()
}

// checkGramRange enforces the ordered-pair-or-absent rule.
func checkGramRange(field string, r []float64) Result {
	if r == nil {
		return ok()
	}
	if len(r) != 2 {
		return violated(field, fmt.Sprintf("must have exactly 2 elements, has %d", len(r)))
	}
	if r[0] < 0 {
		return violated(field, "minimum must not be negative")
	}
	if r[0] > r[1] {
		return violated(field, "minimum exceeds maximum")
	}
	return ok()
}

const fallbackMarkdown = `# Assessment Report Unavailable

We could not assemble your full report this time. The calorie and timeline
figures below are placeholders; please retry the assessment to get your
personalized numbers.
`

// Fallback builds the documented degraded report: zeroed numbers and
// explanatory markdown. The result always passes Validate.
func Fallback(reason string) Data {
	return Data{
		Numbers: Numbers{},
		Timeline: Timeline{
			IsTimelineRealistic: true,
		},
		Flags: []Flag{
			{Severity: "error", Message: "report generation failed: " + reason},
		},
		Methodology:    "fallback: report assembly failed, placeholder values substituted",
		ReportMarkdown: fallbackMarkdown,
	}
}
