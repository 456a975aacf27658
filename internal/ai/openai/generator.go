package openai

import (
	"context"
	"errors"
	"time"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
)

const (
	providerName = "openai"
	maxTokens    = 256
	temperature  = 0.2
)

var (
	_ ai.TextGenerator = (*Generator)(nil)
	_ ai.ModelInfo     = (*Generator)(nil)
)

type completionsAPI interface {
	New(ctx context.Context, body sdk.ChatCompletionNewParams, opts ...option.RequestOption) (*sdk.ChatCompletion, error)
}

// Generator produces text with the OpenAI Chat Completions API.
type Generator struct {
	completions completionsAPI
	model       string
}

// NewGenerator builds an OpenAI client for cfg.APIKey and cfg.Model.
func NewGenerator(_ context.Context, cfg *config.Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", providerName)
	}

	client := sdk.NewClient(option.WithAPIKey(cfg.APIKey))

	return newGenerator(&client.Chat.Completions, cfg.Model), nil
}

func newGenerator(completions completionsAPI, model string) *Generator {
	if model == "" {
		model = string(config.DefaultModelForAI(config.AIOpenAI))
	}
	return &Generator{
		completions: completions,
		model:       model,
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	log.Debug("calling openai API",
		"model", g.model,
		"prompt_length", len(prompt))

	params := sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(g.model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.UserMessage(prompt),
		},
		MaxCompletionTokens: sdk.Int(maxTokens),
		Temperature:         sdk.Float(temperature),
	}

	start := time.Now()
	completion, err := g.completions.New(ctx, params)
	if err != nil {
		log.Error("openai API call failed",
			"error", err,
			"model", g.model)
		return "", nil, ai.ClassifyError(providerName, statusCode(err), err)
	}

	var text string
	if len(completion.Choices) > 0 {
		text = completion.Choices[0].Message.Content
	}

	usage := &models.TokenUsage{
		InputTokens:  int(completion.Usage.PromptTokens),
		OutputTokens: int(completion.Usage.CompletionTokens),
		TotalTokens:  int(completion.Usage.TotalTokens),
		Model:        g.model,
		DurationMs:   time.Since(start).Milliseconds(),
	}

	log.Debug("openai response received",
		"response_length", len(text),
		"choices", len(completion.Choices),
		"duration_ms", usage.DurationMs)

	return text, usage, nil
}

func (g *Generator) GetModelName() string {
	return g.model
}

func (g *Generator) GetProviderName() string {
	return providerName
}

func statusCode(err error) int {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
