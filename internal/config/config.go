package config

import (
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/regex"
	"golang.org/x/text/language"
)

// TitleStyle selects the format the model is asked to follow.
type TitleStyle string

const (
	StyleConventional TitleStyle = "conventional"
	StyleFree         TitleStyle = "free"
)

const (
	LangEN = "en"
	LangES = "es"
)

const (
	defaultProvider       = AIGemini
	defaultLang           = LangEN
	defaultStyle          = StyleConventional
	defaultMaxDiffChars   = 12000
	defaultMaxCommits     = 50
	defaultMaxTitleLength = 72
	defaultTimeout        = 60 * time.Second
	defaultLogLevel       = "info"
)

// Config is everything a run needs. Secrets arrive through flags or
// environment variables and are never written anywhere.
type Config struct {
	// GitHubToken is the source-control API token.
	GitHubToken string
	// APIKey is the text-generation API key.
	APIKey string

	Provider   string
	Model      string
	Repository string

	Language       string
	Style          string
	MaxDiffChars   int
	MaxCommits     int
	MaxTitleLength int
	Timeout        time.Duration
	CommentOnFix   bool

	LogLevel string
	LogJSON  bool
}

// Default returns a Config with every tunable at its default value.
func Default() *Config {
	return &Config{
		Provider:       string(defaultProvider),
		Language:       defaultLang,
		Style:          string(defaultStyle),
		MaxDiffChars:   defaultMaxDiffChars,
		MaxCommits:     defaultMaxCommits,
		MaxTitleLength: defaultMaxTitleLength,
		Timeout:        defaultTimeout,
		LogLevel:       defaultLogLevel,
	}
}

func (c *Config) AI() AI {
	return AI(strings.ToLower(strings.TrimSpace(c.Provider)))
}

func (c *Config) TitleStyle() TitleStyle {
	return TitleStyle(strings.ToLower(strings.TrimSpace(c.Style)))
}

// ApplyProviderDefaults fills the model and, when no generic key was given,
// the API key from the provider's conventional environment variable.
func (c *Config) ApplyProviderDefaults(getenv func(string) string) {
	ai := c.AI()
	if c.Model == "" {
		c.Model = string(DefaultModelForAI(ai))
	}
	if c.APIKey == "" && getenv != nil {
		if env := APIKeyEnvForAI(ai); env != "" {
			c.APIKey = getenv(env)
		}
	}
}

// RepoParts splits Repository into owner and name.
func (c *Config) RepoParts() (string, string, error) {
	m := regex.RepoSlug.FindStringSubmatch(strings.TrimSpace(c.Repository))
	if m == nil {
		return "", "", domainErrors.ErrInvalidRepository.WithContext("repository", c.Repository)
	}
	return m[1], m[2], nil
}

// Validate checks the configuration. Credential problems come back as auth errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GitHubToken) == "" {
		return domainErrors.ErrTokenMissing
	}

	if !IsSupportedAI(c.AI()) {
		return domainErrors.ErrProviderNotSupported.WithContext("provider", c.Provider)
	}

	if strings.TrimSpace(c.APIKey) == "" {
		return domainErrors.ErrAPIKeyMissing.WithContext("provider", c.Provider)
	}

	if _, _, err := c.RepoParts(); err != nil {
		return err
	}

	lang, err := NormalizeLanguage(c.Language)
	if err != nil {
		return domainErrors.ErrInvalidConfig.WithContext("language", c.Language).WithError(err)
	}
	c.Language = lang

	switch c.TitleStyle() {
	case StyleConventional, StyleFree:
	default:
		return domainErrors.ErrInvalidConfig.
			WithContext("style", c.Style).
			WithError(fmt.Errorf("style must be %q or %q", StyleConventional, StyleFree))
	}

	if c.MaxDiffChars < 0 {
		return domainErrors.ErrInvalidConfig.WithError(fmt.Errorf("max diff chars must not be negative"))
	}
	if c.MaxCommits <= 0 {
		return domainErrors.ErrInvalidConfig.WithError(fmt.Errorf("max commits must be greater than 0"))
	}
	if c.MaxTitleLength < 0 {
		return domainErrors.ErrInvalidConfig.WithError(fmt.Errorf("max title length must not be negative"))
	}
	if c.Timeout < 0 {
		return domainErrors.ErrInvalidConfig.WithError(fmt.Errorf("timeout must not be negative"))
	}

	return nil
}

// NormalizeLanguage parses a BCP 47 tag and reduces it to one of the supported base languages.
func NormalizeLanguage(lang string) (string, error) {
	if strings.TrimSpace(lang) == "" {
		return defaultLang, nil
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", lang, err)
	}

	base, _ := tag.Base()
	switch base.String() {
	case LangEN, LangES:
		return base.String(), nil
	default:
		return "", fmt.Errorf("language %q not supported", lang)
	}
}
