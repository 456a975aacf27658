package ui

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/models"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Success.Sprint("✅"), Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Warning.Sprint("⚠️"), Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Info.Sprint("ℹ️"), Info.Sprint(msg))
}

func PrintKeyValue(w io.Writer, key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	_, _ = fmt.Fprintf(w, "   %s %s\n", keyColored, valueColored)
}

// HandleAppError prints err in a friendly way. A nil t falls back to English.
func HandleAppError(w io.Writer, err error, t *i18n.Translations) {
	if err == nil {
		return
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	_, _ = fmt.Fprintln(w)
	_, _ = Error.Fprintf(w, "❌ %s: %s\n", appErr.Type, appErr.Message)

	if appErr.Err != nil {
		details := "Details"
		if t != nil {
			details = t.GetMessage("ui_error_details", 0, nil)
		}
		_, _ = Dim.Fprintf(w, "   %s: %v\n", details, appErr.Err)
	}

	for _, key := range sortedKeys(appErr.Context) {
		_, _ = Dim.Fprintf(w, "   %s: %v\n", key, appErr.Context[key])
	}

	if appErr.Suggestion != "" {
		_, _ = fmt.Fprintln(w)
		tryPrefix := "💡 Try: "
		if t != nil {
			tryPrefix = t.GetMessage("ui_try_suggestion", 0, nil)
		}
		_, _ = Info.Fprint(w, tryPrefix)
		for i, line := range strings.Split(appErr.Suggestion, "\n") {
			if i == 0 {
				_, _ = fmt.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	_, _ = fmt.Fprintln(w)
}

// PrintOutcome reports what a run did with the proposal.
func PrintOutcome(w io.Writer, outcome models.Outcome, t *i18n.Translations) {
	data := map[string]interface{}{
		"Number": outcome.PRNumber,
		"Title":  outcome.Proposal.Text,
	}

	switch outcome.Action {
	case models.ActionCommented:
		PrintSuccess(w, t.GetMessage("result_commented", 0, data))
	case models.ActionUpdated:
		PrintSuccess(w, t.GetMessage("result_updated", 0, data))
	case models.ActionUnchanged:
		PrintInfo(w, t.GetMessage("result_unchanged", 0, data))
	default:
		PrintInfo(w, t.GetMessage("result_proposed", 0, data))
	}
}

func PrintTokenUsage(w io.Writer, usage *models.TokenUsage, t *i18n.Translations) {
	if usage == nil {
		return
	}
	_, _ = Info.Fprint(w, "📊 ")
	_, _ = fmt.Fprintf(w, "%s: %s %d | %s %d | %s %d\n",
		t.GetMessage("ui_token_usage", 0, nil),
		t.GetMessage("ui_input", 0, nil), usage.InputTokens,
		t.GetMessage("ui_output", 0, nil), usage.OutputTokens,
		t.GetMessage("ui_total", 0, nil), usage.TotalTokens)
	if usage.CostUSD > 0 {
		_, _ = Warning.Fprint(w, "💰 ")
		_, _ = fmt.Fprintf(w, "%s: $%.4f USD\n", t.GetMessage("ui_cost", 0, nil), usage.CostUSD)
	}
	if usage.Model != "" {
		PrintKeyValue(w, t.GetMessage("ui_model", 0, nil), usage.Model)
	}
	if usage.DurationMs > 0 {
		PrintKeyValue(w, t.GetMessage("ui_duration", 0, nil), fmt.Sprintf("%dms", usage.DurationMs))
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
