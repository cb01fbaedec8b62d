// Package ai is the boundary to the generative-text service: one logical
// generate operation in one of three output modes.
package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the service answered successfully but
// produced no usable text.
var ErrEmptyResponse = errors.New("no content generated")

// OutputMode selects how the service should shape its output.
type OutputMode int

const (
	// ModeText asks for free-form (markdown) text.
	ModeText OutputMode = iota
	// ModeGrounded asks for free-form text backed by web search, returning
	// grounding references alongside the text.
	ModeGrounded
	// ModeJSON asks for output constrained to GenerateRequest.Schema.
	ModeJSON
)

func (m OutputMode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeGrounded:
		return "grounded"
	case ModeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// GenerateRequest is the input to a single generation call.
type GenerateRequest struct {
	Prompt string         `json:"prompt"`
	Mode   OutputMode     `json:"mode"`
	Schema map[string]any `json:"schema,omitempty"` // used with ModeJSON
	Model  string         `json:"model,omitempty"`
}

// GroundingRef is a citation returned by a web-search-grounded call.
type GroundingRef struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// GenerateResponse is the output of a generation call.
type GenerateResponse struct {
	Text         string         `json:"text"`
	Grounding    []GroundingRef `json:"grounding,omitempty"`
	Model        string         `json:"model"`
	InputTokens  int            `json:"input_tokens"`
	OutputTokens int            `json:"output_tokens"`
}

// TotalTokens returns the sum of input and output tokens.
func (r GenerateResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// ModelInfo describes an available model.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxTokens   int    `json:"max_tokens"`
	Description string `json:"description"`
}

// Provider is the interface a generative-text backend must implement.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Models() []ModelInfo
	HealthCheck(ctx context.Context) error
}
