package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

// GeminiOpts configures a Gemini generator.
type GeminiOpts struct {
	APIKey  string
	Model   string        // default: gemini-2.0-flash
	Timeout time.Duration // per-request timeout (default: 60s)
}

// Gemini is a Generator backed by Google's Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewGemini creates a new Gemini-based generator.
func NewGemini(ctx context.Context, opts GeminiOpts, logger *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: opts.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// GenerateUses asks the model for alternative uses of an item and
// parses the response into normalized content.
func (g *Gemini) GenerateUses(ctx context.Context, itemName string) (*GeneratedContent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := BuildPrompt(itemName)

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	g.logger.Debug("llm response received",
		"item", itemName,
		"model", g.model,
		"duration", time.Since(start),
	)

	content, err := ParseContent(result.Text(), itemName)
	if err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	g.logger.Info("content generated",
		"item", itemName,
		"uses", len(content.Uses),
		"categories", len(content.Categories),
		"tags", len(content.Tags),
	)

	return content, nil
}
