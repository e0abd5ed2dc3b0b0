package llm

import (
	"context"
	"fmt"

	"fitcoach/ai"
	"fitcoach/internal/logging"
	"fitcoach/ports"
)

// WorkoutAdapter implements ports.WorkoutPlanner over the structured model
// client.
type WorkoutAdapter struct {
	config      Config
	client      *ai.StructuredClient[ports.WorkoutPlan]
	fallbackGen ports.WorkoutPlanner
	log         *logging.Logger
}

// NewWorkoutAdapter creates the adapter. fallbackGen may be nil when
// FallbackToHeuristic is false.
func NewWorkoutAdapter(cfg Config, fallbackGen ports.WorkoutPlanner, log *logging.Logger) *WorkoutAdapter {
	return &WorkoutAdapter{
		config: cfg,
		client: ai.NewStructuredClient[ports.WorkoutPlan](ai.Config{
			APIKey:        cfg.APIKey,
			Model:         cfg.Model,
			Temperature:   cfg.Temperature,
			MaxTokens:     cfg.MaxTokens,
			Timeout:       cfg.Timeout,
			MaxConcurrent: cfg.MaxConcurrent,
		}, log),
		fallbackGen: fallbackGen,
		log:         log,
	}
}

// GeneratePlan asks the model for a weekly plan in the assigned trainer's
// voice. The trainer name in the response is pinned to the request value.
func (a *WorkoutAdapter) GeneratePlan(ctx context.Context, req ports.WorkoutRequest) (*ports.WorkoutPlan, error) {
	prompt := ai.BuildWorkoutPrompt(req.Quiz, req.TrainerName)

	plan, err := a.client.GetJSONResponse(ctx, ai.WorkoutSystemContext, prompt)
	if err != nil {
		if a.config.FallbackToHeuristic && a.fallbackGen != nil {
			a.log.Warnw("model workout plan failed, using offline generator", "error", err)
			return a.fallbackGen.GeneratePlan(ctx, req)
		}
		return nil, fmt.Errorf("workout plan generation failed: %w", err)
	}

	plan.TrainerName = req.TrainerName
	if len(plan.Days) == 0 {
		return nil, fmt.Errorf("workout plan generation returned no training days")
	}
	return plan, nil
}
