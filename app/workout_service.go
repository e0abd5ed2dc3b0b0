package app

import (
	"context"

	"fitcoach/domain/quiz"
	"fitcoach/domain/trainer"
	"fitcoach/internal/errors"
	"fitcoach/internal/logging"
	"fitcoach/ports"
)

// trainerDrawSeed keeps the assignment stream separate from any other
// randomized operation sharing the RNG port.
const trainerDrawSeed = 1755

// WorkoutService assigns a trainer and drafts the weekly plan.
type WorkoutService struct {
	rng     ports.RNGPort
	planner ports.WorkoutPlanner
	log     *logging.Logger
}

// NewWorkoutService creates the service.
func NewWorkoutService(rng ports.RNGPort, planner ports.WorkoutPlanner, log *logging.Logger) *WorkoutService {
	return &WorkoutService{rng: rng, planner: planner, log: log}
}

// WorkoutResult pairs the assigned trainer with the drafted plan.
type WorkoutResult struct {
	Trainer trainer.Trainer    `json:"trainer"`
	Plan    *ports.WorkoutPlan `json:"plan"`
}

// AssignTrainer performs the weighted draw for one assessment. The stream is
// scoped to the assessment ID so a retried request reproduces the same
// assignment.
func (s *WorkoutService) AssignTrainer(ctx context.Context, assessmentID string, goal quiz.Goal) (trainer.Trainer, error) {
	stream, err := s.rng.Stream(ctx, assessmentID, "trainer_assignment", trainerDrawSeed)
	if err != nil {
		return trainer.Trainer{}, errors.Wrap(err, "creating assignment stream")
	}

	assigned := trainer.NewAssignmentPolicy(stream).Assign(goal)
	s.log.Infow("trainer assigned", "assessment_id", assessmentID, "goal", goal, "trainer", assigned.Name)
	return assigned, nil
}

// BuildPlan assigns a trainer and drafts the plan in their voice.
func (s *WorkoutService) BuildPlan(ctx context.Context, assessmentID string, q quiz.Data) (*WorkoutResult, error) {
	assigned, err := s.AssignTrainer(ctx, assessmentID, q.Goal)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.GeneratePlan(ctx, ports.WorkoutRequest{
		Quiz:        q,
		TrainerName: assigned.Name,
	})
	if err != nil {
		return nil, errors.Wrap(err, "drafting workout plan")
	}

	return &WorkoutResult{Trainer: assigned, Plan: plan}, nil
}
