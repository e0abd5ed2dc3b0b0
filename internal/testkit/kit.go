// Package testkit provides fixtures and in-memory adapters shared by tests
// and local demo runs.
package testkit

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"fitcoach/domain/core"
	"fitcoach/domain/quiz"
	"fitcoach/domain/report"
	"fitcoach/models"
	"fitcoach/ports"
)

// SampleQuiz is the reference assessment used across tests: 100 kg male,
// 175 cm, 30 years, moderately active, targeting 80 kg in 8 weeks.
func SampleQuiz() quiz.Data {
	return quiz.Data{
		WeightKG:          100,
		HeightCM:          175,
		Age:               30,
		Gender:            quiz.GenderMale,
		ActivityLevel:     quiz.ActivityModeratelyActive,
		Goal:              quiz.GoalLoseWeight,
		TargetWeightKG:    80,
		TargetPeriodWeeks: 8,
		GymDaysPerWeek:    3,
	}
}

// InMemoryAssessmentRepository implements ports.AssessmentRepository with a
// map; safe for concurrent use.
type InMemoryAssessmentRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*models.Assessment
}

// NewInMemoryAssessmentRepository creates an empty repository.
func NewInMemoryAssessmentRepository() *InMemoryAssessmentRepository {
	return &InMemoryAssessmentRepository{items: map[uuid.UUID]*models.Assessment{}}
}

func (r *InMemoryAssessmentRepository) Save(ctx context.Context, a *models.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *InMemoryAssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, core.NewNotFoundError("assessment", id.String())
	}
	cp := *a
	return &cp, nil
}

func (r *InMemoryAssessmentRepository) ListRecent(ctx context.Context, limit int) ([]*models.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*models.Assessment, 0, len(r.items))
	for _, a := range r.items {
		cp := *a
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Count returns the number of stored assessments.
func (r *InMemoryAssessmentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// InMemoryWeighInRepository implements ports.WeighInRepository with a slice;
// safe for concurrent use.
type InMemoryWeighInRepository struct {
	mu    sync.RWMutex
	items []models.WeighIn
}

// NewInMemoryWeighInRepository creates an empty repository.
func NewInMemoryWeighInRepository() *InMemoryWeighInRepository {
	return &InMemoryWeighInRepository{}
}

func (r *InMemoryWeighInRepository) Add(ctx context.Context, w *models.WeighIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *w)
	return nil
}

func (r *InMemoryWeighInRepository) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*models.WeighIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.WeighIn
	for i := range r.items {
		if r.items[i].AssessmentID == assessmentID {
			cp := r.items[i]
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out, nil
}

// StubNarrativeGenerator returns a canned response or error; lets tests
// force fallback paths.
type StubNarrativeGenerator struct {
	Response *report.Data
	Err      error
	Calls    int
}

func (g *StubNarrativeGenerator) GenerateReport(ctx context.Context, req ports.NarrativeRequest) (*report.Data, error) {
	g.Calls++
	if g.Err != nil {
		return nil, g.Err
	}
	cp := *g.Response
	return &cp, nil
}

// StubWorkoutPlanner returns a canned plan or error.
type StubWorkoutPlanner struct {
	Plan  *ports.WorkoutPlan
	Err   error
	Calls int
}

func (p *StubWorkoutPlanner) GeneratePlan(ctx context.Context, req ports.WorkoutRequest) (*ports.WorkoutPlan, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	cp := *p.Plan
	cp.TrainerName = req.TrainerName
	return &cp, nil
}

// ValidNarrative builds a contract-satisfying narrative response around the
// supplied figures.
func ValidNarrative(numbers report.Numbers, timeline report.Timeline) *report.Data {
	return &report.Data{
		Numbers:  numbers,
		Timeline: timeline,
		NutritionTargets: report.NutritionTargets{
			ProteinG:    160,
			CarbsGRange: []float64{190, 250},
			FatsGRange:  []float64{60, 85},
		},
		BodyComp: report.BodyComp{Assessment: "stub assessment"},
		Flags: []report.Flag{
			{Severity: "info", Message: "stub flag"},
		},
		Methodology:    "stub methodology",
		ReportMarkdown: "# Stub Report\n\nBody.",
	}
}
