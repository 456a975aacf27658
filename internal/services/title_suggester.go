package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/kaptinlin/jsonrepair"
	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/thomas-vilte/prtitle/internal/regex"
	"github.com/thomas-vilte/prtitle/internal/services/cost"
)

const (
	maxDescriptionChars = 2000
	maxPromptFiles      = 100
)

type TitleSuggester struct {
	generator ai.TextGenerator
	config    *config.Config
	costs     *cost.Calculator
}

type SuggesterOption func(*TitleSuggester)

func WithTextGenerator(gen ai.TextGenerator) SuggesterOption {
	return func(s *TitleSuggester) {
		s.generator = gen
	}
}

func WithSuggesterConfig(cfg *config.Config) SuggesterOption {
	return func(s *TitleSuggester) {
		s.config = cfg
	}
}

// NewTitleSuggester builds a suggester. Without a config the defaults apply.
func NewTitleSuggester(opts ...SuggesterOption) *TitleSuggester {
	s := &TitleSuggester{costs: cost.NewCalculator()}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config = config.Default()
	}
	return s
}

// Propose asks the generator for a title for prCtx and normalizes the answer.
// Any failure, including an answer that is empty once normalized, is a
// generation error.
func (s *TitleSuggester) Propose(ctx context.Context, prCtx models.PRContext) (models.TitleProposal, error) {
	log := logger.FromContext(ctx)

	if s.generator == nil {
		log.Error("text generator not configured")
		return models.TitleProposal{}, domainErrors.ErrAIGeneration.
			WithError(domainErrors.ErrAPIKeyMissing)
	}

	prompt, err := s.buildPrompt(prCtx)
	if err != nil {
		return models.TitleProposal{}, domainErrors.ErrAIGeneration.WithError(err)
	}

	log.Debug("requesting title proposal",
		"pr_number", prCtx.Number,
		"prompt_length", len(prompt),
		"commits_count", len(prCtx.CommitMessages))

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, usage, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return models.TitleProposal{}, ai.ClassifyError(providerName(s.generator), 0, err)
	}

	title := NormalizeTitle(raw, s.config.MaxTitleLength)
	if title == "" {
		log.Warn("generator returned no usable title",
			"raw_length", len(raw))
		return models.TitleProposal{}, domainErrors.ErrEmptyGeneration.
			WithContext("provider", providerName(s.generator))
	}

	if usage != nil {
		usage.CostUSD = s.costs.EstimateCost(providerName(s.generator), usage.Model, usage.InputTokens, usage.OutputTokens)
	}

	log.Info("title proposed",
		"pr_number", prCtx.Number,
		"proposal", title,
		"duration", time.Since(start))

	return models.TitleProposal{Text: title, Usage: usage}, nil
}

func (s *TitleSuggester) buildPrompt(prCtx models.PRContext) (string, error) {
	commits, omittedCommits := commitSubjects(prCtx.CommitMessages, s.config.MaxCommits)
	files, omittedFiles := capList(prCtx.ChangedFiles, maxPromptFiles)

	var diff string
	var truncated bool
	if s.config.MaxDiffChars > 0 {
		diff, truncated = TruncateDiff(strings.TrimSpace(prCtx.DiffSummary), s.config.MaxDiffChars)
	}

	lang := s.config.Language
	data := ai.PromptData{
		CurrentTitle:      strings.TrimSpace(prCtx.CurrentTitle),
		Description:       truncateRunes(strings.TrimSpace(prCtx.Description), maxDescriptionChars),
		Commits:           commits,
		OmittedCommits:    omittedCommits,
		Files:             files,
		OmittedFiles:      omittedFiles,
		Diff:              diff,
		DiffTruncated:     truncated,
		StyleInstructions: ai.GetStyleInstructions(lang, s.config.TitleStyle() != config.StyleFree),
		MaxLength:         s.config.MaxTitleLength,
	}

	return ai.RenderPrompt("title", ai.GetTitlePromptTemplate(lang), data)
}

// commitSubjects keeps the first line of each non-empty message, up to limit.
func commitSubjects(messages []string, limit int) ([]string, int) {
	subjects := make([]string, 0, len(messages))
	for _, msg := range messages {
		if subject := firstLine(msg); subject != "" {
			subjects = append(subjects, subject)
		}
	}
	return capList(subjects, limit)
}

func capList(items []string, limit int) ([]string, int) {
	if limit <= 0 || len(items) <= limit {
		return items, 0
	}
	return items[:limit], len(items) - limit
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// TruncateDiff cuts diff to at most maxBytes, preferring the last line
// boundary. The second result reports whether anything was dropped.
func TruncateDiff(diff string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(diff) <= maxBytes {
		return diff, false
	}

	cut := diff[:maxBytes]
	if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
		return cut[:idx], true
	}

	for maxBytes > 0 && !utf8.RuneStart(diff[maxBytes]) {
		maxBytes--
	}
	return diff[:maxBytes], true
}

// quotePairs maps an opening quote to the closing quote that wraps a whole title.
var quotePairs = map[rune]rune{
	'"': '"',
	'\'': '\'',
	'`': '`',
	'“': '”',
	'‘': '’',
	'«': '»',
}

// NormalizeTitle turns raw model output into a single-line title. A JSON
// object with a "title" field is unwrapped first. maxLength counts runes;
// 0 disables the limit.
func NormalizeTitle(raw string, maxLength int) string {
	text := strings.TrimSpace(raw)
	if title, ok := titleFromJSON(text); ok {
		text = title
	}

	lines := make([]string, 0, 4)
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		lines = append(lines, line)
	}

	// List markers only mean something when the model answered with a list.
	stripList := len(lines) > 1

	var title string
	for _, line := range lines {
		if title = cleanLine(line, stripList); title != "" {
			break
		}
	}

	title = strings.Join(strings.Fields(title), " ")
	return truncateTitle(title, maxLength)
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// cleanLine strips labels, markdown markers and wrapping quotes until the
// line stops changing.
func cleanLine(line string, stripList bool) string {
	for {
		prev := line
		line = unquote(strings.TrimSpace(line))
		line = regex.MarkdownHeading.ReplaceAllString(line, "")
		if stripList {
			line = regex.ListMarker.ReplaceAllString(line, "")
		}
		line = regex.TitleLabel.ReplaceAllString(line, "")
		line = strings.TrimPrefix(line, "**")
		line = strings.TrimSuffix(line, "**")
		line = strings.TrimSpace(line)
		if line == prev {
			return line
		}
	}
}

// unquote removes one pair of quotes wrapping the whole of s. A quote that
// also appears inside s belongs to the title and is kept.
func unquote(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}

	open, last := runes[0], runes[len(runes)-1]
	closing, ok := quotePairs[open]
	if !ok || last != closing {
		return s
	}

	inner := string(runes[1 : len(runes)-1])
	if strings.ContainsRune(inner, open) || strings.ContainsRune(inner, closing) {
		return s
	}
	return inner
}

func titleFromJSON(text string) (string, bool) {
	candidate := stripCodeFence(text)
	if !strings.HasPrefix(candidate, "{") {
		return "", false
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(candidate)
		if repairErr != nil {
			return "", false
		}
		if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
			return "", false
		}
	}

	return payload.Title, strings.TrimSpace(payload.Title) != ""
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[idx+1:]
	} else {
		return ""
	}
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}

// truncateTitle cuts at a word boundary when one is reasonably close.
func truncateTitle(title string, maxLength int) string {
	runes := []rune(title)
	if maxLength <= 0 || len(runes) <= maxLength {
		return title
	}

	cut := runes[:maxLength]
	if !unicode.IsSpace(runes[maxLength]) {
		for i := len(cut) - 1; i > maxLength/2; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}
	return strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",;:-", r)
	})
}

func truncateRunes(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}

func providerName(gen ai.TextGenerator) string {
	if info, ok := gen.(ai.ModelInfo); ok {
		return info.GetProviderName()
	}
	return "unknown"
}
