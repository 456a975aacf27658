package anthropic

import (
	"context"
	"errors"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
)

const (
	providerName = "anthropic"
	maxTokens    = 256
	temperature  = 0.2
)

var (
	_ ai.TextGenerator = (*Generator)(nil)
	_ ai.ModelInfo     = (*Generator)(nil)
)

// messagesAPI is the subset of the Messages service the generator uses.
type messagesAPI interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Generator produces text with the Claude Messages API.
type Generator struct {
	messages messagesAPI
	model    string
}

// NewGenerator builds a Claude client for cfg.APIKey and cfg.Model.
func NewGenerator(_ context.Context, cfg *config.Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", providerName)
	}

	client := sdk.NewClient(option.WithAPIKey(cfg.APIKey))

	return newGenerator(&client.Messages, cfg.Model), nil
}

func newGenerator(messages messagesAPI, model string) *Generator {
	if model == "" {
		model = string(config.DefaultModelForAI(config.AIAnthropic))
	}
	return &Generator{
		messages: messages,
		model:    model,
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	log.Debug("calling anthropic API",
		"model", g.model,
		"prompt_length", len(prompt))

	params := sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{{
			Role: sdk.MessageParamRoleUser,
			Content: []sdk.ContentBlockParamUnion{
				sdk.NewTextBlock(prompt),
			},
		}},
		Temperature: sdk.Float(temperature),
	}

	start := time.Now()
	message, err := g.messages.New(ctx, params)
	if err != nil {
		log.Error("anthropic API call failed",
			"error", err,
			"model", g.model)
		return "", nil, ai.ClassifyError(providerName, statusCode(err), err)
	}

	var text strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}

	usage := &models.TokenUsage{
		InputTokens:  int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
		TotalTokens:  int(message.Usage.InputTokens + message.Usage.OutputTokens),
		Model:        g.model,
		DurationMs:   time.Since(start).Milliseconds(),
	}

	log.Debug("anthropic response received",
		"response_length", text.Len(),
		"stop_reason", string(message.StopReason),
		"duration_ms", usage.DurationMs)

	return text.String(), usage, nil
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
