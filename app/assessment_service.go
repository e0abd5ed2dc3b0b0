// Package app orchestrates assessments: deterministic calculation, model
// narrative, contract validation, fallback substitution, persistence.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fitcoach/domain/biometrics"
	"fitcoach/domain/core"
	"fitcoach/domain/plan"
	"fitcoach/domain/quiz"
	"fitcoach/domain/report"
	"fitcoach/internal/logging"
	"fitcoach/models"
	"fitcoach/ports"
)

// AssessmentService runs one quiz snapshot through the full pipeline.
type AssessmentService struct {
	policy    plan.Policy
	narrative ports.NarrativeGenerator
	repo      ports.AssessmentRepository // nil: no persistence (CLI runs)
	workout   *WorkoutService            // nil: workout endpoints disabled
	log       *logging.Logger
}

// NewAssessmentService creates the service.
func NewAssessmentService(
	policy plan.Policy,
	narrative ports.NarrativeGenerator,
	repo ports.AssessmentRepository,
	workout *WorkoutService,
	log *logging.Logger,
) *AssessmentService {
	return &AssessmentService{
		policy:    policy,
		narrative: narrative,
		repo:      repo,
		workout:   workout,
		log:       log,
	}
}

// ComputeFigures runs the deterministic core only: validation, biometrics,
// realism adjustment. No model call, no persistence.
func (s *AssessmentService) ComputeFigures(q quiz.Data) (report.Numbers, report.Timeline, error) {
	if err := q.Validate(); err != nil {
		return report.Numbers{}, report.Timeline{}, err
	}

	energy, err := biometrics.Compute(q)
	if err != nil {
		return report.Numbers{}, report.Timeline{}, err
	}

	adj, err := s.policy.Adjust(energy, q)
	if err != nil {
		return report.Numbers{}, report.Timeline{}, err
	}

	numbers := report.Numbers{
		CurrentMaintenanceCalories: energy.TDEE,
		DailyCalorieDeficitNeeded:  energy.DailyDeficitNeeded,
		TargetIntakeKcal:           adj.TargetIntakeKcal,
		TargetBurnPerDayActivity:   adj.ActivityBurnKcal,
	}
	timeline := report.Timeline{
		ExcessFatKG:           energy.ExcessFatKG,
		WeeksToGoal:           q.TargetPeriodWeeks,
		ProjectedLossPerWeek:  adj.AppliedDeficit * 7 / biometrics.KcalPerKGFat,
		IsTimelineRealistic:   adj.IsRealistic,
		AdjustedTimelineWeeks: adj.AdjustedWeeks,
	}
	return numbers, timeline, nil
}

// Run executes the full assessment pipeline for one quiz snapshot.
//
// Narrative failures and contract violations never fail the request: the
// documented degraded report is substituted and the assessment flagged, so
// rendering always receives a well-formed payload.
func (s *AssessmentService) Run(ctx context.Context, q quiz.Data) (*models.Assessment, error) {
	numbers, timeline, err := s.ComputeFigures(q)
	if err != nil {
		return nil, err
	}

	data, usedFallback := s.assemble(ctx, q, numbers, timeline)

	a := &models.Assessment{
		ID:           core.NewUUID(),
		Quiz:         q,
		Report:       *data,
		UsedFallback: usedFallback,
		CreatedAt:    time.Now().UTC(),
	}
	s.persist(ctx, a)
	return a, nil
}

// RunWithWorkout runs the assessment and the workout draft concurrently.
// A workout failure degrades to an assessment without a plan rather than
// failing the whole request.
func (s *AssessmentService) RunWithWorkout(ctx context.Context, q quiz.Data) (*models.Assessment, *WorkoutResult, error) {
	numbers, timeline, err := s.ComputeFigures(q)
	if err != nil {
		return nil, nil, err
	}

	id := core.NewUUID()

	var (
		data         *report.Data
		usedFallback bool
		workout      *WorkoutResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, usedFallback = s.assemble(gctx, q, numbers, timeline)
		return nil
	})
	if s.workout != nil {
		g.Go(func() error {
			w, err := s.workout.BuildPlan(gctx, id.String(), q)
			if err != nil {
				s.log.Warnw("workout draft failed", "assessment_id", id, "error", err)
				return nil
			}
			workout = w
			return nil
		})
	}
	_ = g.Wait()

	a := &models.Assessment{
		ID:           id,
		Quiz:         q,
		Report:       *data,
		UsedFallback: usedFallback,
		CreatedAt:    time.Now().UTC(),
	}
	if workout != nil {
		a.TrainerName = workout.Trainer.Name
	}
	s.persist(ctx, a)
	return a, workout, nil
}

// assemble produces a contract-satisfying report: model narrative when
// possible, the degraded fallback otherwise.
func (s *AssessmentService) assemble(ctx context.Context, q quiz.Data, numbers report.Numbers, timeline report.Timeline) (*report.Data, bool) {
	data, err := s.narrative.GenerateReport(ctx, ports.NarrativeRequest{
		Quiz:     q,
		Numbers:  numbers,
		Timeline: timeline,
	})
	if err != nil {
		s.log.Warnw("narrative generation failed, substituting fallback", "error", err)
		fb := report.Fallback("narrative generation failed")
		return &fb, true
	}

	if res := report.Validate(*data); !res.OK {
		s.log.Warnw("assembled report violates contract, substituting fallback",
			"field", res.Violation.Field, "reason", res.Violation.Reason)
		fb := report.Fallback(res.Violation.Err().Error())
		return &fb, true
	}
	return data, false
}

// persist saves when a repository is wired. Storage failures are logged,
// not surfaced: the computed report is still valid for the caller.
func (s *AssessmentService) persist(ctx context.Context, a *models.Assessment) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, a); err != nil {
		s.log.Errorw("persisting assessment failed", "assessment_id", a.ID, "error", err)
	}
}

// GetAssessment fetches a stored assessment.
func (s *AssessmentService) GetAssessment(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListRecent fetches the newest stored assessments.
func (s *AssessmentService) ListRecent(ctx context.Context, limit int) ([]*models.Assessment, error) {
	return s.repo.ListRecent(ctx, limit)
}
