// Package heuristic generates assessment narratives and workout plans
// without a model call: deterministic templates filled from the computed
// figures. Used as the offline fallback and in the CLI.
package heuristic

import (
	"context"
	"fmt"
	"math"
	"strings"

	"fitcoach/domain/plan"
	"fitcoach/domain/quiz"
	"fitcoach/domain/report"
	"fitcoach/ports"
)

// Generator creates reports and plans using fixed rules.
type Generator struct{}

// NewGenerator creates a new heuristic generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateReport fills the AI-owned report fields from simple rules:
// protein at 1.6 g/kg, carbs and fats as intake fractions, flags from the
// timeline verdict.
func (g *Generator) GenerateReport(ctx context.Context, req ports.NarrativeRequest) (*report.Data, error) {
	intake := req.Numbers.TargetIntakeKcal

	proteinG := math.Round(1.6 * req.Quiz.WeightKG)
	// Carbs at 35-45% of intake, fats at 25-35%, both rounded to grams.
	carbs := []float64{math.Round(intake * 0.35 / 4), math.Round(intake * 0.45 / 4)}
	fats := []float64{math.Round(intake * 0.25 / 9), math.Round(intake * 0.35 / 9)}

	flags := []report.Flag{}
	if !req.Timeline.IsTimelineRealistic {
		flags = append(flags, report.Flag{
			Severity: "warn",
			Message: fmt.Sprintf(
				"requested %.0f-week timeline is not safely achievable; plan adjusted",
				req.Timeline.WeeksToGoal),
		})
	}
	if req.Quiz.GymDaysPerWeek == 0 {
		flags = append(flags, report.Flag{
			Severity: "info",
			Message:  "no gym frequency given; activity suggestions assume walking only",
		})
	}

	data := &report.Data{
		Numbers:  req.Numbers,
		Timeline: req.Timeline,
		NutritionTargets: report.NutritionTargets{
			ProteinG:    proteinG,
			CarbsGRange: carbs,
			FatsGRange:  fats,
			WaterL:      math.Round(req.Quiz.WeightKG*0.033*10) / 10,
		},
		BodyComp: report.BodyComp{
			Assessment: "estimate based on quiz data only; no body photo analyzed",
		},
		Flags: flags,
		Methodology: "Mifflin-St Jeor BMR scaled by activity multiplier; " +
			"energy gap at 7700 kcal per kg of fat; deficit clamped to safe bounds",
		ReportMarkdown: buildMarkdown(req),
	}
	return data, nil
}

// buildMarkdown renders the client-facing report body.
func buildMarkdown(req ports.NarrativeRequest) string {
	var b strings.Builder
	b.WriteString("# Your Fitness Assessment\n\n")
	fmt.Fprintf(&b, "Maintenance calories: **%.0f kcal/day**\n\n", req.Numbers.CurrentMaintenanceCalories)
	fmt.Fprintf(&b, "Daily intake target: **%.0f kcal/day**\n\n", req.Numbers.TargetIntakeKcal)
	fmt.Fprintf(&b, "Suggested extra activity burn: **%.0f kcal/day**\n\n", req.Numbers.TargetBurnPerDayActivity)

	if req.Timeline.ExcessFatKG > 0 {
		fmt.Fprintf(&b, "Estimated excess fat: **%.1f kg**\n\n", req.Timeline.ExcessFatKG)
	}
	if req.Timeline.IsTimelineRealistic {
		fmt.Fprintf(&b, "Your %.0f-week goal is achievable at this deficit.\n", req.Timeline.WeeksToGoal)
	} else if req.Timeline.AdjustedTimelineWeeks != nil {
		fmt.Fprintf(&b,
			"Your requested %.0f-week timeline is too aggressive to be safe. "+
				"A sustainable plan reaches the same goal in about **%.0f weeks**.\n",
			req.Timeline.WeeksToGoal, *req.Timeline.AdjustedTimelineWeeks)
	}
	return b.String()
}

// Plan templates per goal. Each entry is day focus plus its exercise block.
var planTemplates = map[quiz.Goal][]ports.WorkoutDay{
	quiz.GoalLoseWeight: {
		{Day: "Monday", Focus: "Full body + intervals", Exercises: []ports.Exercise{
			{Name: "Goblet Squat", Sets: 3, Reps: "10-12"},
			{Name: "Push-Up", Sets: 3, Reps: "8-12"},
			{Name: "Rowing Intervals", Sets: 6, Reps: "1 min hard / 1 min easy"},
		}},
		{Day: "Wednesday", Focus: "Lower body + steady cardio", Exercises: []ports.Exercise{
			{Name: "Romanian Deadlift", Sets: 3, Reps: "8-10"},
			{Name: "Walking Lunge", Sets: 3, Reps: "12 per leg"},
			{Name: "Incline Walk", Sets: 1, Reps: "25 min"},
		}},
		{Day: "Friday", Focus: "Upper body + core", Exercises: []ports.Exercise{
			{Name: "Dumbbell Bench Press", Sets: 3, Reps: "8-10"},
			{Name: "Lat Pulldown", Sets: 3, Reps: "10-12"},
			{Name: "Plank", Sets: 3, Reps: "45 sec"},
		}},
	},
	quiz.GoalGainMuscle: {
		{Day: "Monday", Focus: "Push", Exercises: []ports.Exercise{
			{Name: "Barbell Bench Press", Sets: 4, Reps: "6-8"},
			{Name: "Overhead Press", Sets: 3, Reps: "8-10"},
			{Name: "Cable Fly", Sets: 3, Reps: "12-15"},
		}},
		{Day: "Wednesday", Focus: "Pull", Exercises: []ports.Exercise{
			{Name: "Deadlift", Sets: 4, Reps: "5"},
			{Name: "Barbell Row", Sets: 3, Reps: "8-10"},
			{Name: "Bicep Curl", Sets: 3, Reps: "10-12"},
		}},
		{Day: "Friday", Focus: "Legs", Exercises: []ports.Exercise{
			{Name: "Back Squat", Sets: 4, Reps: "6-8"},
			{Name: "Leg Press", Sets: 3, Reps: "10-12"},
			{Name: "Standing Calf Raise", Sets: 4, Reps: "12-15"},
		}},
	},
	quiz.GoalGetShredded: {
		{Day: "Monday", Focus: "Upper body circuit", Exercises: []ports.Exercise{
			{Name: "Incline Dumbbell Press", Sets: 4, Reps: "10-12"},
			{Name: "Pull-Up", Sets: 4, Reps: "max"},
			{Name: "Battle Ropes", Sets: 5, Reps: "30 sec"},
		}},
		{Day: "Wednesday", Focus: "Lower body circuit", Exercises: []ports.Exercise{
			{Name: "Front Squat", Sets: 4, Reps: "8-10"},
			{Name: "Kettlebell Swing", Sets: 4, Reps: "15"},
			{Name: "Sled Push", Sets: 5, Reps: "20 m"},
		}},
		{Day: "Friday", Focus: "Conditioning + core", Exercises: []ports.Exercise{
			{Name: "Assault Bike Intervals", Sets: 8, Reps: "20 sec on / 40 sec off"},
			{Name: "Hanging Leg Raise", Sets: 3, Reps: "10-12"},
			{Name: "Ab Wheel Rollout", Sets: 3, Reps: "8-10"},
		}},
	},
}

// GeneratePlan returns the goal's template plan attributed to the trainer.
func (g *Generator) GeneratePlan(ctx context.Context, req ports.WorkoutRequest) (*ports.WorkoutPlan, error) {
	days, ok := planTemplates[req.Quiz.Goal]
	if !ok {
		days = planTemplates[quiz.GoalLoseWeight]
	}

	minIntake := plan.MinSafeIntake(req.Quiz.Gender)
	notes := fmt.Sprintf(
		"Stick to the plan for at least four weeks before changing anything. "+
			"Keep daily intake at or above %.0f kcal and prioritize sleep. - %s",
		minIntake, req.TrainerName)

	return &ports.WorkoutPlan{
		TrainerName: req.TrainerName,
		Days:        days,
		CoachNotes:  notes,
	}, nil
}
