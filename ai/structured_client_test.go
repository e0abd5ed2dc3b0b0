package ai

import (
	"strings"
	"testing"

	"fitcoach/domain/quiz"
	"fitcoach/domain/report"
)

func TestCleanJSONContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"plain object untouched",
			`{"a": 1}`,
			`{"a": 1}`,
		},
		{
			"json fence removed",
			"```json\n{\"a\": 1}\n```",
			`{"a": 1}`,
		},
		{
			"bare fence removed",
			"```\n[1, 2]\n```",
			`[1, 2]`,
		},
		{
			"chatter before object dropped",
			"Here is the report you asked for:\n{\"a\": 1}",
			`{"a": 1}`,
		},
		{
			"chatter before array dropped",
			"The JSON output:\n[1]",
			`[1]`,
		},
		{
			"surrounding whitespace trimmed",
			"  \n {\"a\": 1} \n ",
			`{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONContent(tt.input); got != tt.want {
				t.Errorf("cleanJSONContent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildNarrativePromptEmbedsFigures(t *testing.T) {
	q := quiz.Data{
		WeightKG: 100, HeightCM: 175, Age: 30,
		Gender: quiz.GenderMale, ActivityLevel: quiz.ActivityModeratelyActive,
		Goal: quiz.GoalLoseWeight, TargetWeightKG: 80, TargetPeriodWeeks: 8,
	}
	numbers := report.Numbers{
		CurrentMaintenanceCalories: 2710.56,
		DailyCalorieDeficitNeeded:  2750,
		TargetIntakeKcal:           2210.56,
		TargetBurnPerDayActivity:   400,
	}
	adjusted := 44.0
	timeline := report.Timeline{
		ExcessFatKG: 20, WeeksToGoal: 8,
		IsTimelineRealistic: false, AdjustedTimelineWeeks: &adjusted,
	}

	prompt := BuildNarrativePrompt(q, numbers, timeline)

	for _, want := range []string{
		`"current_maintenance_calories": 2710.56`,
		`"adjusted_timeline_weeks": 44`,
		`"excess_fat_kg": 20`,
		`"report_markdown"`,
		`"nutrition_targets"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildWorkoutPromptUsesTrainerAndFrequency(t *testing.T) {
	q := quiz.Data{Goal: quiz.GoalGetShredded, GymDaysPerWeek: 4}

	prompt := BuildWorkoutPrompt(q, "Saieel")
	if !strings.Contains(prompt, "4-day weekly workout plan") {
		t.Error("prompt should use the client's gym frequency")
	}
	if !strings.Contains(prompt, "Saieel") {
		t.Error("prompt should name the assigned trainer")
	}

	// Zero frequency falls back to three days.
	q.GymDaysPerWeek = 0
	prompt = BuildWorkoutPrompt(q, "Athul")
	if !strings.Contains(prompt, "3-day weekly workout plan") {
		t.Error("prompt should default to 3 days when frequency is unset")
	}
}
