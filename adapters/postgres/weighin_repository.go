package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fitcoach/models"
	"fitcoach/ports"
)

// WeighInRepositoryImpl implements WeighInRepository for PostgreSQL
type WeighInRepositoryImpl struct {
	db *sqlx.DB
}

// NewWeighInRepository creates a new PostgreSQL weigh-in repository
func NewWeighInRepository(db *sqlx.DB) ports.WeighInRepository {
	return &WeighInRepositoryImpl{db: db}
}

// Add records one weigh-in
func (r *WeighInRepositoryImpl) Add(ctx context.Context, w *models.WeighIn) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weigh_ins (id, assessment_id, weight_kg, recorded_at)
		VALUES ($1, $2, $3, $4)
	`, w.ID, w.AssessmentID, w.WeightKG, w.RecordedAt)
	return err
}

// ListByAssessment returns weigh-ins for one assessment, oldest first
func (r *WeighInRepositoryImpl) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*models.WeighIn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, assessment_id, weight_kg, recorded_at
		FROM weigh_ins
		WHERE assessment_id = $1
		ORDER BY recorded_at ASC
	`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.WeighIn
	for rows.Next() {
		var w models.WeighIn
		if err := rows.Scan(&w.ID, &w.AssessmentID, &w.WeightKG, &w.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}
