// Package study turns a topic and material kind into generated study
// material via the generative-text service.
package study

import (
	"context"
	"errors"
	"log/slog"

	"github.com/p-n-ai/studymate/internal/ai"
)

// Generator is the content generation client. It makes exactly one service
// call per Generate and never retries.
type Generator struct {
	provider ai.Provider
	exam     string
}

// NewGenerator creates a generator. A nil provider means no credential is
// configured; every Generate then fails with ErrConfiguration.
func NewGenerator(provider ai.Provider, exam string) *Generator {
	return &Generator{provider: provider, exam: exam}
}

// Generate requests material of the given kind for topic.
func (g *Generator) Generate(ctx context.Context, topic string, kind Kind) (Result, error) {
	if g.provider == nil {
		return Result{}, configurationError("API key is not configured: set STUDY_AI_GOOGLE_API_KEY")
	}

	req := ai.GenerateRequest{Prompt: buildPrompt(topic, g.exam, kind)}
	switch kind {
	case KindMCQ:
		req.Mode = ai.ModeJSON
		req.Schema = mcqResponseSchema
	case KindResources:
		req.Mode = ai.ModeGrounded
	default:
		req.Mode = ai.ModeText
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyResponse) {
			return Result{}, emptyResponseError(err)
		}
		return Result{}, serviceError(err)
	}
	if resp.Text == "" {
		return Result{}, emptyResponseError(ai.ErrEmptyResponse)
	}

	slog.Debug("study material generated",
		"topic", topic,
		"kind", kind,
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
	)

	switch kind {
	case KindMCQ:
		questions, err := parseQuestions(resp.Text)
		if err != nil {
			return Result{}, parseError(err)
		}
		return Result{Kind: kind, Questions: questions}, nil
	case KindResources:
		return Result{Kind: kind, Resources: &Resources{
			Summary: resp.Text,
			Links:   dedupeLinks(resp.Grounding),
		}}, nil
	default:
		return Result{Kind: kind, Text: resp.Text}, nil
	}
}

// dedupeLinks keeps the first reference seen for each URI, in order.
// References without a URI are dropped; a missing title falls back to the URI.
func dedupeLinks(refs []ai.GroundingRef) []Link {
	links := []Link{}
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if ref.URI == "" || seen[ref.URI] {
			continue
		}
		seen[ref.URI] = true
		title := ref.Title
		if title == "" {
			title = ref.URI
		}
		links = append(links, Link{Title: title, URI: ref.URI})
	}
	return links
}
