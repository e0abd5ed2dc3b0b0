package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach/domain/plan"
	"fitcoach/domain/quiz"
	"fitcoach/internal/logging"
	"fitcoach/internal/rng"
	"fitcoach/internal/testkit"
	"fitcoach/ports"
)

func TestComputeFigures(t *testing.T) {
	svc := NewAssessmentService(plan.DefaultPolicy(), nil, nil, nil, logging.NewNop())

	q := testkit.SampleQuiz()
	numbers, timeline, err := svc.ComputeFigures(q)
	require.NoError(t, err)

	// BMR = 10*100 + 6.25*175 - 5*30 + 5 = 1748.75; TDEE = BMR * 1.55.
	wantTDEE := 1748.75 * 1.55
	assert.InDelta(t, wantTDEE, numbers.CurrentMaintenanceCalories, 0.01)
	assert.InDelta(t, 154000.0/(8*7), numbers.DailyCalorieDeficitNeeded, 0.01)

	// 20 kg in 8 weeks needs ~2750 kcal/day: not realistic.
	assert.False(t, timeline.IsTimelineRealistic)
	require.NotNil(t, timeline.AdjustedTimelineWeeks)
	assert.InDelta(t, 44.0, *timeline.AdjustedTimelineWeeks, 0.01)
	assert.Equal(t, 20.0, timeline.ExcessFatKG)
	assert.Equal(t, 8.0, timeline.WeeksToGoal)

	// Projected loss reflects the clamped deficit, not the requested one.
	assert.InDelta(t, 500.0*7/7700, timeline.ProjectedLossPerWeek, 1e-9)
}

func TestComputeFiguresRejectsInvalidQuiz(t *testing.T) {
	svc := NewAssessmentService(plan.DefaultPolicy(), nil, nil, nil, logging.NewNop())

	q := testkit.SampleQuiz()
	q.ActivityLevel = "couch_potato"
	if _, _, err := svc.ComputeFigures(q); err == nil {
		t.Fatal("expected validation error for unknown activity level")
	}
}

func TestRunKeepsValidNarrative(t *testing.T) {
	svc := NewAssessmentService(plan.DefaultPolicy(), nil, nil, nil, logging.NewNop())
	q := testkit.SampleQuiz()
	numbers, timeline, err := svc.ComputeFigures(q)
	require.NoError(t, err)

	gen := &testkit.StubNarrativeGenerator{Response: testkit.ValidNarrative(numbers, timeline)}
	repo := testkit.NewInMemoryAssessmentRepository()
	svc = NewAssessmentService(plan.DefaultPolicy(), gen, repo, nil, logging.NewNop())

	a, err := svc.Run(context.Background(), q)
	require.NoError(t, err)

	assert.False(t, a.UsedFallback)
	assert.Equal(t, 160.0, a.Report.NutritionTargets.ProteinG)
	assert.InDelta(t, numbers.TargetIntakeKcal, a.Report.Numbers.TargetIntakeKcal, 1e-9)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, 1, gen.Calls)
	assert.Equal(t, 1, repo.Count())

	stored, err := svc.GetAssessment(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, stored.ID)
}

func TestRunSubstitutesFallbackOnGeneratorError(t *testing.T) {
	gen := &testkit.StubNarrativeGenerator{Err: errors.New("model unavailable")}
	repo := testkit.NewInMemoryAssessmentRepository()
	svc := NewAssessmentService(plan.DefaultPolicy(), gen, repo, nil, logging.NewNop())

	a, err := svc.Run(context.Background(), testkit.SampleQuiz())
	require.NoError(t, err)

	assert.True(t, a.UsedFallback)
	assert.NotEmpty(t, a.Report.ReportMarkdown)
	assert.True(t, a.Report.Timeline.IsTimelineRealistic)
	assert.Equal(t, 1, repo.Count())
}

func TestRunSubstitutesFallbackOnContractViolation(t *testing.T) {
	svcFigures := NewAssessmentService(plan.DefaultPolicy(), nil, nil, nil, logging.NewNop())
	q := testkit.SampleQuiz()
	numbers, timeline, err := svcFigures.ComputeFigures(q)
	require.NoError(t, err)

	bad := testkit.ValidNarrative(numbers, timeline)
	bad.Numbers.TargetIntakeKcal = math.NaN()
	gen := &testkit.StubNarrativeGenerator{Response: bad}
	svc := NewAssessmentService(plan.DefaultPolicy(), gen, nil, nil, logging.NewNop())

	a, err := svc.Run(context.Background(), q)
	require.NoError(t, err)

	assert.True(t, a.UsedFallback)
	assert.Equal(t, 0.0, a.Report.Numbers.TargetIntakeKcal)
}

func TestRunWithWorkoutAttachesPlan(t *testing.T) {
	svcFigures := NewAssessmentService(plan.DefaultPolicy(), nil, nil, nil, logging.NewNop())
	q := testkit.SampleQuiz()
	numbers, timeline, err := svcFigures.ComputeFigures(q)
	require.NoError(t, err)

	planner := &testkit.StubWorkoutPlanner{Plan: &ports.WorkoutPlan{
		Days: []ports.WorkoutDay{{Day: "Monday", Focus: "Full Body"}},
	}}
	workout := NewWorkoutService(rng.NewSeeded(42), planner, logging.NewNop())
	gen := &testkit.StubNarrativeGenerator{Response: testkit.ValidNarrative(numbers, timeline)}
	svc := NewAssessmentService(plan.DefaultPolicy(), gen, nil, workout, logging.NewNop())

	a, result, err := svc.RunWithWorkout(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Trainer.Name)
	assert.Equal(t, result.Trainer.Name, a.TrainerName)
	assert.Equal(t, result.Trainer.Name, result.Plan.TrainerName)
	assert.Equal(t, 1, planner.Calls)
}

func TestRunWithWorkoutDegradesOnPlannerError(t *testing.T) {
	svcFigures := NewAssessmentService(plan.DefaultPolicy(), nil, nil, nil, logging.NewNop())
	q := testkit.SampleQuiz()
	numbers, timeline, err := svcFigures.ComputeFigures(q)
	require.NoError(t, err)

	planner := &testkit.StubWorkoutPlanner{Err: errors.New("planner down")}
	workout := NewWorkoutService(rng.NewSeeded(42), planner, logging.NewNop())
	gen := &testkit.StubNarrativeGenerator{Response: testkit.ValidNarrative(numbers, timeline)}
	svc := NewAssessmentService(plan.DefaultPolicy(), gen, nil, workout, logging.NewNop())

	a, result, err := svc.RunWithWorkout(context.Background(), q)
	require.NoError(t, err)

	assert.Nil(t, result)
	assert.Empty(t, a.TrainerName)
	assert.False(t, a.UsedFallback)
}

func TestAssignTrainerDeterministicPerAssessment(t *testing.T) {
	workout := NewWorkoutService(rng.NewSeeded(7), nil, logging.NewNop())

	first, err := workout.AssignTrainer(context.Background(), "assessment-1", quiz.GoalLoseWeight)
	require.NoError(t, err)
	second, err := workout.AssignTrainer(context.Background(), "assessment-1", quiz.GoalLoseWeight)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
}
