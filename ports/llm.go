package ports

import (
	"context"

	"fitcoach/domain/quiz"
	"fitcoach/domain/report"
)

// NarrativeRequest carries the quiz snapshot plus the core-computed figures
// the model must narrate around. The figures are authoritative; the model
// fills in the opaque fields only.
type NarrativeRequest struct {
	Quiz     quiz.Data       `json:"quiz"`
	Numbers  report.Numbers  `json:"numbers"`
	Timeline report.Timeline `json:"timeline"`
}

// NarrativeGenerator produces the AI-populated portion of an assessment
// report. Implementations may call an external model or run offline.
type NarrativeGenerator interface {
	GenerateReport(ctx context.Context, req NarrativeRequest) (*report.Data, error)
}

// Exercise is one movement in a workout day.
type Exercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps string `json:"reps"`
}

// WorkoutDay is one scheduled session in the weekly plan.
type WorkoutDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// WorkoutPlan is a draft weekly plan attributed to the assigned trainer.
type WorkoutPlan struct {
	TrainerName string       `json:"trainer_name"`
	Days        []WorkoutDay `json:"days"`
	CoachNotes  string       `json:"coach_notes"`
}

// WorkoutRequest asks for a draft plan in the assigned trainer's voice.
type WorkoutRequest struct {
	Quiz        quiz.Data `json:"quiz"`
	TrainerName string    `json:"trainer_name"`
}

// WorkoutPlanner drafts weekly workout plans.
type WorkoutPlanner interface {
	GeneratePlan(ctx context.Context, req WorkoutRequest) (*WorkoutPlan, error)
}
