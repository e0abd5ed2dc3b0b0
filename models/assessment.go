package models

import (
	"time"

	"github.com/google/uuid"

	"fitcoach/domain/quiz"
	"fitcoach/domain/report"
)

// Assessment is one completed quiz-to-report cycle.
type Assessment struct {
	ID           uuid.UUID   `json:"id"`
	Quiz         quiz.Data   `json:"quiz"`
	Report       report.Data `json:"report"`
	TrainerName  string      `json:"trainer_name,omitempty"`
	UsedFallback bool        `json:"used_fallback"`
	CreatedAt    time.Time   `json:"created_at"`
}

// WeighIn is one progress check-in after an assessment.
type WeighIn struct {
	ID           uuid.UUID `json:"id"`
	AssessmentID uuid.UUID `json:"assessment_id"`
	WeightKG     float64   `json:"weight_kg"`
	RecordedAt   time.Time `json:"recorded_at"`
}
