package gemini

import (
	"errors"
	"strings"

	"github.com/thomas-vilte/prtitle/internal/models"
	"google.golang.org/genai"
)

// extractUsage extracts usage metadata from the Gemini response
func extractUsage(resp *genai.GenerateContentResponse) *models.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return nil
	}
	return &models.TokenUsage{
		InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
		OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
	}
}

// GetGenerateConfig returns the configuration for a short single-line answer.
// Thinking is kept off or minimal since the whole answer is a title.
func GetGenerateConfig(modelName string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:     float32Ptr(0.2),
		MaxOutputTokens: int32(1024),
	}

	switch {
	case strings.HasPrefix(modelName, "gemini-3"):
		config.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingLevel: genai.ThinkingLevelLow,
		}
	case strings.HasPrefix(modelName, "gemini-2.5-flash"):
		config.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: int32Ptr(0),
		}
	}

	return config
}

// formatResponse joins the text parts of every candidate, skipping thoughts.
func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			formattedContent.WriteString(part.Text)
		}
	}
	return formattedContent.String()
}

// statusCode returns the HTTP status carried by a genai API error, or 0.
func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

func float32Ptr(f float32) *float32 {
	return &f
}

func int32Ptr(i int32) *int32 {
	return &i
}
