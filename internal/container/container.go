// Package container wires configuration, infrastructure, adapters and
// services into a running application.
package container

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"fitcoach/adapters/db/postgres/migrations"
	"fitcoach/adapters/excel"
	"fitcoach/adapters/llm"
	"fitcoach/adapters/llm/heuristic"
	"fitcoach/adapters/postgres"
	"fitcoach/app"
	"fitcoach/domain/plan"
	"fitcoach/internal/config"
	"fitcoach/internal/errors"
	"fitcoach/internal/logging"
	"fitcoach/internal/rng"
	"fitcoach/internal/testkit"
	"fitcoach/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Log    *logging.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	AssessmentRepo ports.AssessmentRepository
	WeighInRepo    ports.WeighInRepository

	// Generators
	Narrative ports.NarrativeGenerator
	Planner   ports.WorkoutPlanner

	// Services
	AssessmentService *app.AssessmentService
	WorkoutService    *app.WorkoutService

	// Export
	ReportWriter *excel.ReportWriter
}

// New builds the dependency graph from configuration. The database is
// optional; without DATABASE_URL the app runs with no persistence.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}

	var log *logging.Logger
	if cfg.Log.Development {
		log = logging.NewDevelopment()
	} else {
		log = logging.New()
	}

	c := &Container{
		Config:       cfg,
		Log:          log,
		ReportWriter: excel.NewReportWriter(),
	}

	if cfg.Database.URL != "" {
		if err := c.initDatabase(ctx); err != nil {
			return nil, err
		}
	} else {
		// Demo mode: everything lives in process memory.
		log.Infow("no database configured, using in-memory storage")
		c.AssessmentRepo = testkit.NewInMemoryAssessmentRepository()
		c.WeighInRepo = testkit.NewInMemoryWeighInRepository()
	}

	c.initGenerators()
	c.initServices()
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}

	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnLifetime)

	if err := migrations.NewMigrator(db.DB).Up(ctx); err != nil {
		return errors.Wrap(err, "running migrations")
	}

	c.DB = db
	c.AssessmentRepo = postgres.NewAssessmentRepository(db)
	c.WeighInRepo = postgres.NewWeighInRepository(db)
	c.Log.Infow("database connected", "max_open_conns", c.Config.Database.MaxOpenConns)
	return nil
}

func (c *Container) initGenerators() {
	offline := heuristic.NewGenerator()

	if c.Config.AI.APIKey == "" {
		// No model credentials: run fully offline.
		c.Log.Infow("no AI key configured, using offline generators")
		c.Narrative = offline
		c.Planner = offline
		return
	}

	llmCfg := llm.Config{
		Model:               c.Config.AI.Model,
		APIKey:              c.Config.AI.APIKey,
		Temperature:         float32(c.Config.AI.Temperature),
		MaxTokens:           c.Config.AI.MaxTokens,
		Timeout:             c.Config.AI.Timeout,
		MaxConcurrent:       c.Config.AI.MaxConcurrent,
		FallbackToHeuristic: c.Config.AI.FallbackToHeuristic,
	}

	var narrativeFallback ports.NarrativeGenerator
	var plannerFallback ports.WorkoutPlanner
	if c.Config.AI.FallbackToHeuristic {
		narrativeFallback = offline
		plannerFallback = offline
	}
	c.Narrative = llm.NewNarrativeAdapter(llmCfg, narrativeFallback, c.Log)
	c.Planner = llm.NewWorkoutAdapter(llmCfg, plannerFallback, c.Log)
}

func (c *Container) initServices() {
	policy := plan.Policy{
		Strategy:         plan.DeficitStrategy(c.Config.Plan.DeficitStrategy),
		SurplusKcal:      c.Config.Plan.SurplusKcal,
		ActivityBurnKcal: c.Config.Plan.ActivityBurnKcal,
	}

	c.WorkoutService = app.NewWorkoutService(rng.New(), c.Planner, c.Log)
	c.AssessmentService = app.NewAssessmentService(policy, c.Narrative, c.AssessmentRepo, c.WorkoutService, c.Log)
}

// Close releases infrastructure resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
