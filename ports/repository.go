package ports

import (
	"context"

	"github.com/google/uuid"

	"fitcoach/models"
)

// AssessmentRepository persists completed assessments. The core never talks
// to storage directly; persistence is an external collaborator behind this
// interface.
type AssessmentRepository interface {
	Save(ctx context.Context, a *models.Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Assessment, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Assessment, error)
}

// WeighInRepository stores progress check-ins for an assessment.
type WeighInRepository interface {
	Add(ctx context.Context, w *models.WeighIn) error
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*models.WeighIn, error)
}
