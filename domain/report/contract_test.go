package report

import (
	"strings"
	"testing"

	"fitcoach/domain/core"
)

func validData() Data {
	return Data{
		Numbers: Numbers{
			CurrentMaintenanceCalories: 2710.56,
			DailyCalorieDeficitNeeded:  2750,
			TargetIntakeKcal:           2210.56,
			TargetBurnPerDayActivity:   400,
		},
		Timeline: Timeline{
			ExcessFatKG:          20,
			WeeksToGoal:          8,
			ProjectedLossPerWeek: 0.45,
			IsTimelineRealistic:  true,
		},
		NutritionTargets: NutritionTargets{
			ProteinG:    160,
			CarbsGRange: []float64{180, 240},
			FatsGRange:  []float64{55, 75},
		},
		BodyComp: BodyComp{
			EstimatedBodyFatPct: "24-27%",
			Assessment:          "carrying excess fat around the midsection",
		},
		Flags: []Flag{
			{Severity: "warn", Message: "requested timeline is aggressive"},
		},
		Methodology:    "Mifflin-St Jeor BMR, activity-scaled TDEE, 7700 kcal/kg fat",
		ReportMarkdown: "# Your Assessment\n\nAll good.",
	}
}

func TestValidateAcceptsWellFormedReport(t *testing.T) {
	res := Validate(validData())
	if !res.OK {
		t.Fatalf("expected OK, got violation %+v", res.Violation)
	}
	if res.Violation != nil {
		t.Error("OK result must carry no violation")
	}
}

func TestValidateNamesViolatedField(t *testing.T) {
	adjusted := 44.0
	negAdjusted := -3.0

	tests := []struct {
		name   string
		mutate func(*Data)
		field  string
	}{
		{
			"negative maintenance calories",
			func(d *Data) { d.Numbers.CurrentMaintenanceCalories = -1 },
			"numbers.current_maintenance_calories",
		},
		{
			"missing methodology",
			func(d *Data) { d.Methodology = "" },
			"methodology",
		},
		{
			"missing markdown",
			func(d *Data) { d.ReportMarkdown = "" },
			"report_markdown",
		},
		{
			"adjusted weeks on realistic timeline",
			func(d *Data) { d.Timeline.AdjustedTimelineWeeks = &adjusted },
			"timeline.adjusted_timeline_weeks",
		},
		{
			"adjusted weeks missing on unrealistic timeline",
			func(d *Data) { d.Timeline.IsTimelineRealistic = false },
			"timeline.adjusted_timeline_weeks",
		},
		{
			"non-positive adjusted weeks",
			func(d *Data) {
				d.Timeline.IsTimelineRealistic = false
				d.Timeline.AdjustedTimelineWeeks = &negAdjusted
			},
			"timeline.adjusted_timeline_weeks",
		},
		{
			"one-element carbs range",
			func(d *Data) { d.NutritionTargets.CarbsGRange = []float64{200} },
			"nutrition_targets.carbs_g_range",
		},
		{
			"unordered fats range",
			func(d *Data) { d.NutritionTargets.FatsGRange = []float64{80, 40} },
			"nutrition_targets.fats_g_range",
		},
		{
			"empty flag message",
			func(d *Data) { d.Flags = append(d.Flags, Flag{Severity: "info"}) },
			"flags[1].message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validData()
			tt.mutate(&d)

			res := Validate(d)
			if res.OK {
				t.Fatal("expected violation, got OK")
			}
			if res.Violation.Field != tt.field {
				t.Errorf("violation field = %q, want %q", res.Violation.Field, tt.field)
			}
			if !core.IsSchemaViolation(res.Violation.Err()) {
				t.Errorf("Err() = %v, want schema violation", res.Violation.Err())
			}
		})
	}
}

func TestValidateAbsentRangesAllowed(t *testing.T) {
	d := validData()
	d.NutritionTargets.CarbsGRange = nil
	d.NutritionTargets.FatsGRange = nil

	if res := Validate(d); !res.OK {
		t.Errorf("absent ranges should be valid, got %+v", res.Violation)
	}
}

func TestValidateUnrealisticTimeline(t *testing.T) {
	adjusted := 44.0
	d := validData()
	d.Timeline.IsTimelineRealistic = false
	d.Timeline.AdjustedTimelineWeeks = &adjusted

	if res := Validate(d); !res.OK {
		t.Errorf("unrealistic timeline with adjusted weeks should be valid, got %+v", res.Violation)
	}
}

// TestFallbackPassesValidation: the degraded report must itself satisfy the
// contract, so rendering never receives a partial object.
func TestFallbackPassesValidation(t *testing.T) {
	fb := Fallback("upstream model returned malformed payload")

	if res := Validate(fb); !res.OK {
		t.Fatalf("fallback report failed its own contract: %+v", res.Violation)
	}
	if fb.Numbers.CurrentMaintenanceCalories != 0 {
		t.Error("fallback numbers should be zeroed")
	}
	if !strings.Contains(fb.ReportMarkdown, "Unavailable") {
		t.Error("fallback markdown should explain the failure")
	}
	if len(fb.Flags) == 0 || !strings.Contains(fb.Flags[0].Message, "malformed payload") {
		t.Error("fallback should flag the failure reason")
	}
}
