package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/models"
)

func setupUITest(t *testing.T) *i18n.Translations {
	color.NoColor = true
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return trans
}

func TestHandleAppError(t *testing.T) {
	trans := setupUITest(t)

	t.Run("app error with cause, context and suggestion", func(t *testing.T) {
		var buf bytes.Buffer
		err := domainErrors.ErrGitHubRateLimit.
			WithContext("pr_number", 12).
			WithError(errors.New("403 API rate limit exceeded"))

		HandleAppError(&buf, err, trans)

		out := buf.String()
		assert.Contains(t, out, "VCS: GitHub API rate limit exceeded")
		assert.Contains(t, out, "Details: 403 API rate limit exceeded")
		assert.Contains(t, out, "pr_number: 12")
		assert.Contains(t, out, "💡 Try: Wait a few minutes")
	})

	t.Run("english defaults without translations", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, domainErrors.ErrTokenMissing, nil)

		assert.Contains(t, buf.String(), "AUTH: GitHub token is missing")
		assert.Contains(t, buf.String(), "💡 Try: ")
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, errors.New("boom"), trans)

		assert.Contains(t, buf.String(), "❌ boom")
	})

	t.Run("nil error prints nothing", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, nil, trans)

		assert.Empty(t, buf.String())
	})
}

func TestPrintOutcome(t *testing.T) {
	trans := setupUITest(t)

	tests := []struct {
		action   models.Action
		expected string
	}{
		{models.ActionProposed, "Proposed title for #7: fix: handle nil config"},
		{models.ActionCommented, "Suggestion posted on #7: fix: handle nil config"},
		{models.ActionUpdated, "Title of #7 updated to: fix: handle nil config"},
		{models.ActionUnchanged, "Title of #7 already matches the proposal"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			var buf bytes.Buffer

			PrintOutcome(&buf, models.Outcome{
				PRNumber: 7,
				Proposal: models.TitleProposal{Text: "fix: handle nil config"},
				Action:   tt.action,
			}, trans)

			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestPrintTokenUsage(t *testing.T) {
	trans := setupUITest(t)

	t.Run("prints counts, model and duration", func(t *testing.T) {
		var buf bytes.Buffer

		PrintTokenUsage(&buf, &models.TokenUsage{
			InputTokens:  120,
			OutputTokens: 8,
			TotalTokens:  128,
			CostUSD:      0.0123,
			Model:        "gemini-2.5-flash",
			DurationMs:   350,
		}, trans)

		out := buf.String()
		assert.Contains(t, out, "Token usage: input 120 | output 8 | total 128")
		assert.Contains(t, out, "Cost: $0.0123 USD")
		assert.Contains(t, out, "Model: gemini-2.5-flash")
		assert.Contains(t, out, "Duration: 350ms")
	})

	t.Run("nil usage prints nothing", func(t *testing.T) {
		var buf bytes.Buffer

		PrintTokenUsage(&buf, nil, trans)

		assert.Empty(t, buf.String())
	})
}
