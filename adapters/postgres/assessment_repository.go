// Package postgres implements the repository ports on PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fitcoach/domain/core"
	"fitcoach/domain/quiz"
	"fitcoach/domain/report"
	"fitcoach/models"
	"fitcoach/ports"
)

// AssessmentRepositoryImpl implements AssessmentRepository for PostgreSQL
type AssessmentRepositoryImpl struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new PostgreSQL assessment repository
func NewAssessmentRepository(db *sqlx.DB) ports.AssessmentRepository {
	return &AssessmentRepositoryImpl{db: db}
}

// assessmentRow maps the assessments table. Quiz and report travel as JSONB.
type assessmentRow struct {
	ID           uuid.UUID       `db:"id"`
	Quiz         json.RawMessage `db:"quiz"`
	Report       json.RawMessage `db:"report"`
	TrainerName  sql.NullString  `db:"trainer_name"`
	UsedFallback bool            `db:"used_fallback"`
	CreatedAt    sql.NullTime    `db:"created_at"`
}

func (row *assessmentRow) toModel() (*models.Assessment, error) {
	a := &models.Assessment{
		ID:           row.ID,
		TrainerName:  row.TrainerName.String,
		UsedFallback: row.UsedFallback,
	}
	if row.CreatedAt.Valid {
		a.CreatedAt = row.CreatedAt.Time
	}

	var q quiz.Data
	if err := json.Unmarshal(row.Quiz, &q); err != nil {
		return nil, fmt.Errorf("decoding quiz payload: %w", err)
	}
	a.Quiz = q

	var rep report.Data
	if err := json.Unmarshal(row.Report, &rep); err != nil {
		return nil, fmt.Errorf("decoding report payload: %w", err)
	}
	a.Report = rep

	return a, nil
}

// Save inserts or replaces an assessment
func (r *AssessmentRepositoryImpl) Save(ctx context.Context, a *models.Assessment) error {
	quizJSON, err := json.Marshal(a.Quiz)
	if err != nil {
		return fmt.Errorf("encoding quiz payload: %w", err)
	}
	reportJSON, err := json.Marshal(a.Report)
	if err != nil {
		return fmt.Errorf("encoding report payload: %w", err)
	}

	var trainerName interface{}
	if a.TrainerName != "" {
		trainerName = a.TrainerName
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO assessments (id, quiz, report, trainer_name, used_fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET quiz = EXCLUDED.quiz, report = EXCLUDED.report,
		    trainer_name = EXCLUDED.trainer_name, used_fallback = EXCLUDED.used_fallback
	`, a.ID, quizJSON, reportJSON, trainerName, a.UsedFallback, a.CreatedAt)
	return err
}

// GetByID retrieves an assessment by ID
func (r *AssessmentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	var row assessmentRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, quiz, report, trainer_name, used_fallback, created_at
		FROM assessments
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("assessment", id.String())
		}
		return nil, err
	}
	return row.toModel()
}

// ListRecent returns the newest assessments, optionally limited
func (r *AssessmentRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*models.Assessment, error) {
	query := `
		SELECT id, quiz, report, trainer_name, used_fallback, created_at
		FROM assessments
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var rows []assessmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]*models.Assessment, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
