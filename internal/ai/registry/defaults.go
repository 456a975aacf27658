package registry

import (
	"context"

	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/ai/anthropic"
	"github.com/thomas-vilte/prtitle/internal/ai/gemini"
	"github.com/thomas-vilte/prtitle/internal/ai/openai"
	"github.com/thomas-vilte/prtitle/internal/config"
)

// NewDefault returns a registry with every built-in provider.
func NewDefault() *Registry {
	r := NewRegistry()

	builtins := []FactoryFunc{
		{
			ProviderName: string(config.AIGemini),
			New: func(ctx context.Context, cfg *config.Config) (ai.TextGenerator, error) {
				g, err := gemini.NewGenerator(ctx, cfg)
				if err != nil {
					return nil, err
				}
				return g, nil
			},
		},
		{
			ProviderName: string(config.AIAnthropic),
			New: func(ctx context.Context, cfg *config.Config) (ai.TextGenerator, error) {
				g, err := anthropic.NewGenerator(ctx, cfg)
				if err != nil {
					return nil, err
				}
				return g, nil
			},
		},
		{
			ProviderName: string(config.AIOpenAI),
			New: func(ctx context.Context, cfg *config.Config) (ai.TextGenerator, error) {
				g, err := openai.NewGenerator(ctx, cfg)
				if err != nil {
					return nil, err
				}
				return g, nil
			},
		},
	}

	for _, f := range builtins {
		// names are unique, Register cannot fail here
		_ = r.Register(f.ProviderName, f)
	}
	return r
}
