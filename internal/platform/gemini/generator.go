// Package gemini implements the generation.Generator interface using
// Google's Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/cardloop/cardloop-api/internal/generation"
)

const (
	defaultModel    = "gemini-2.0-flash"
	maxDraftsPerReq = 20
)

// promptTemplate instructs the model to answer with a bare JSON array so
// the response parses without post-processing.
const promptTemplate = `You are a flashcard author. Write %d concise flashcards about the topic below.
Respond with ONLY a JSON array, no markdown fences, where each element is
{"front": "...", "back": "..."}. Fronts are questions or terms; backs are
short factual answers.

Topic: %s`

// Generator calls the Gemini API to draft flashcards.
type Generator struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// Ensure Generator implements generation.Generator
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed generator. An empty model selects
// the package default.
func NewGenerator(ctx context.Context, apiKey, model string, log *slog.Logger) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	if model == "" {
		model = defaultModel
	}
	if log == nil {
		log = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Generator{
		client: client,
		model:  model,
		logger: log.With(slog.String("component", "gemini_generator")),
	}, nil
}

// GenerateCards implements generation.Generator.GenerateCards.
func (g *Generator) GenerateCards(
	ctx context.Context,
	topic string,
	count int,
) ([]generation.CardDraft, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, generation.ErrEmptyTopic
	}
	if count < 1 {
		count = 1
	}
	if count > maxDraftsPerReq {
		count = maxDraftsPerReq
	}

	prompt := fmt.Sprintf(promptTemplate, count, topic)

	g.logger.DebugContext(ctx, "calling gemini",
		slog.String("model", g.model),
		slog.Int("requested_cards", count))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, generation.ErrContentBlocked
	}

	drafts, err := parseDrafts(resp.Text())
	if err != nil {
		g.logger.WarnContext(ctx, "unparseable gemini response",
			slog.String("error", err.Error()))
		return nil, err
	}

	g.logger.DebugContext(ctx, "gemini call succeeded",
		slog.Int("generated_cards", len(drafts)))
	return drafts, nil
}

// parseDrafts decodes the model output into card drafts, tolerating
// markdown code fences the model sometimes adds despite instructions.
func parseDrafts(text string) ([]generation.CardDraft, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var drafts []generation.CardDraft
	if err := json.Unmarshal([]byte(text), &drafts); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	kept := drafts[:0]
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Front) == "" || strings.TrimSpace(draft.Back) == "" {
			continue
		}
		kept = append(kept, draft)
	}
	if len(kept) == 0 {
		return nil, errors.Join(generation.ErrInvalidResponse,
			errors.New("response contained no usable cards"))
	}
	return kept, nil
}
