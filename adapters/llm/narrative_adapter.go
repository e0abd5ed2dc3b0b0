package llm

import (
	"context"
	"fmt"
	"time"

	"fitcoach/ai"
	"fitcoach/domain/report"
	"fitcoach/internal/logging"
	"fitcoach/ports"
)

// Config holds LLM adapter configuration.
type Config struct {
	Model               string
	APIKey              string
	Temperature         float32
	MaxTokens           int
	Timeout             time.Duration
	MaxConcurrent       int64
	FallbackToHeuristic bool // substitute the offline generator on model errors
}

// NarrativeAdapter implements ports.NarrativeGenerator over the structured
// model client, optionally falling back to an offline generator.
type NarrativeAdapter struct {
	config      Config
	client      *ai.StructuredClient[report.Data]
	fallbackGen ports.NarrativeGenerator
	log         *logging.Logger
}

// NewNarrativeAdapter creates the adapter. fallbackGen may be nil when
// FallbackToHeuristic is false.
func NewNarrativeAdapter(cfg Config, fallbackGen ports.NarrativeGenerator, log *logging.Logger) *NarrativeAdapter {
	return &NarrativeAdapter{
		config: cfg,
		client: ai.NewStructuredClient[report.Data](ai.Config{
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

// GenerateReport asks the model for the narrative portion of the report.
// The core-owned numbers and timeline in the response are overwritten with
// the authoritative request values, so a drifting model cannot corrupt them.
func (a *NarrativeAdapter) GenerateReport(ctx context.Context, req ports.NarrativeRequest) (*report.Data, error) {
	prompt := ai.BuildNarrativePrompt(req.Quiz, req.Numbers, req.Timeline)

	data, err := a.client.GetJSONResponse(ctx, ai.NarrativeSystemContext, prompt)
	if err != nil {
		if a.config.FallbackToHeuristic && a.fallbackGen != nil {
			a.log.Warnw("model narrative failed, using offline generator", "error", err)
			return a.fallbackGen.GenerateReport(ctx, req)
		}
		return nil, fmt.Errorf("narrative generation failed: %w", err)
	}

	data.Numbers = req.Numbers
	data.Timeline = req.Timeline
	return data, nil
}
