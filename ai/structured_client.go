package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/semaphore"

	"fitcoach/internal/logging"
)

// Config holds model call settings.
type Config struct {
	APIKey        string
	Model         string
	Temperature   float32
	MaxTokens     int
	Timeout       time.Duration
	MaxConcurrent int64 // concurrent in-flight model calls across requests
}

// StructuredClient provides typed JSON responses from model calls. The type
// parameter is the schema of the expected payload; responses that fail to
// unmarshal into it are errors, never partial values.
type StructuredClient[T any] struct {
	client *openai.Client
	config Config
	sem    *semaphore.Weighted
	log    *logging.Logger
}

// NewStructuredClient creates a structured client around the OpenAI API.
func NewStructuredClient[T any](cfg Config, log *logging.Logger) *StructuredClient[T] {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	log.Infow("structured client initialized",
		"model", cfg.Model, "max_tokens", cfg.MaxTokens, "timeout", cfg.Timeout)

	return &StructuredClient[T]{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
		sem:    semaphore.NewWeighted(cfg.MaxConcurrent),
		log:    log,
	}
}

// GetJSONResponse makes a typed model call and parses the JSON response.
// JSON mode is always requested; the content is still cleaned defensively
// because models occasionally wrap output in markdown fences.
func (c *StructuredClient[T]) GetJSONResponse(ctx context.Context, systemMessage, prompt string) (*T, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for model call slot: %w", err)
	}
	defer c.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	c.log.Debugw("sending model request", "model", c.config.Model, "prompt_len", len(prompt))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("model request timeout after %v: %w", c.config.Timeout, err)
		}
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in model response")
	}

	content := cleanJSONContent(resp.Choices[0].Message.Content)

	var result T
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		c.log.Warnw("model returned unparseable JSON", "error", err, "content_len", len(content))
		return nil, fmt.Errorf("parsing model JSON into result type: %w", err)
	}

	return &result, nil
}

// cleanJSONContent strips markdown code fences and common chatter that
// models prepend to JSON output.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Drop chatter lines before the first JSON bracket.
	if !strings.HasPrefix(content, "{") && !strings.HasPrefix(content, "[") {
		for _, open := range []string{"\n{", "\n["} {
			if idx := strings.Index(content, open); idx >= 0 {
				prefix := content[:idx]
				if !strings.ContainsAny(prefix, "{[") {
					content = content[idx+1:]
					break
				}
			}
		}
	}

	return strings.TrimSpace(content)
}
