package gemini

import (
	"context"
	"time"

	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
	"google.golang.org/genai"
)

const providerName = "gemini"

var (
	_ ai.TextGenerator = (*Generator)(nil)
	_ ai.ModelInfo     = (*Generator)(nil)
)

type generateFunc func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)

// Generator produces text with the Gemini API.
type Generator struct {
	client     *genai.Client
	model      string
	generateFn generateFunc
}

// NewGenerator builds a Gemini client for cfg.APIKey and cfg.Model.
func NewGenerator(ctx context.Context, cfg *config.Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", providerName)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, ai.ClassifyError(providerName, 0, err)
	}

	model := cfg.Model
	if model == "" {
		model = string(config.DefaultModelForAI(config.AIGemini))
	}

	g := &Generator{
		client: client,
		model:  model,
	}
	g.generateFn = g.defaultGenerate
	return g, nil
}

func (g *Generator) defaultGenerate(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), GetGenerateConfig(model))
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	log.Debug("calling gemini API",
		"model", g.model,
		"prompt_length", len(prompt))

	start := time.Now()
	resp, err := g.generateFn(ctx, g.model, prompt)
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", g.model)
		return "", nil, ai.ClassifyError(providerName, statusCode(err), err)
	}

	usage := extractUsage(resp)
	if usage != nil {
		usage.Model = g.model
		usage.DurationMs = time.Since(start).Milliseconds()
	}

	text := formatResponse(resp)
	log.Debug("gemini response received",
		"response_length", len(text),
		"duration_ms", time.Since(start).Milliseconds())

	return text, usage, nil
}

func (g *Generator) GetModelName() string {
	return g.model
}

func (g *Generator) GetProviderName() string {
	return providerName
}
