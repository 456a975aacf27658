package ai

import (
	"context"

	"github.com/thomas-vilte/prtitle/internal/models"
)

// TextGenerator is the text-generation collaborator: prompt in, text out.
type TextGenerator interface {
	// Generate returns the raw model output for prompt. Usage may be nil when
	// the provider does not report it.
	Generate(ctx context.Context, prompt string) (string, *models.TokenUsage, error)
}

// ModelInfo is implemented by generators that can report what they talk to.
type ModelInfo interface {
	// GetModelName returns the name of the current model (e.g.: "gemini-2.5-flash")
	GetModelName() string

	// GetProviderName returns the name of the provider (e.g.: "gemini", "openai", "anthropic")
	GetProviderName() string
}
