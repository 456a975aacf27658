package config

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// Flags returns the global CLI flags bound to c. Each flag can also be set
// through the listed environment variables.
func (c *Config) Flags() []cli.Flag {
	providers := make([]string, 0, len(SupportedAIs()))
	for _, ai := range SupportedAIs() {
		providers = append(providers, string(ai))
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used to read and update the pull request",
			Destination: &c.GitHubToken,
			Sources:     cli.EnvVars("PRTITLE_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "API key for the text generation provider",
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("PRTITLE_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "provider",
			Usage:       fmt.Sprintf("AI provider (%s)", strings.Join(providers, ", ")),
			Value:       c.Provider,
			Destination: &c.Provider,
			Sources:     cli.EnvVars("PRTITLE_PROVIDER"),
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Model name, defaults to the provider's recommended model",
			Destination: &c.Model,
			Sources:     cli.EnvVars("PRTITLE_MODEL"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository in owner/name form",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("PRTITLE_REPOSITORY", "GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "language",
			Aliases:     []string{"l"},
			Usage:       "Language of the generated title and comments (en, es)",
			Value:       c.Language,
			Destination: &c.Language,
			Sources:     cli.EnvVars("PRTITLE_LANGUAGE"),
		},
		&cli.StringFlag{
			Name:        "style",
			Usage:       "Title style: conventional or free",
			Value:       c.Style,
			Destination: &c.Style,
			Sources:     cli.EnvVars("PRTITLE_STYLE"),
		},
		&cli.IntFlag{
			Name:        "max-diff-chars",
			Usage:       "Maximum number of diff bytes sent to the model (0 omits the diff)",
			Value:       c.MaxDiffChars,
			Destination: &c.MaxDiffChars,
			Sources:     cli.EnvVars("PRTITLE_MAX_DIFF_CHARS"),
		},
		&cli.IntFlag{
			Name:        "max-commits",
			Usage:       "Maximum number of commit subjects sent to the model",
			Value:       c.MaxCommits,
			Destination: &c.MaxCommits,
			Sources:     cli.EnvVars("PRTITLE_MAX_COMMITS"),
		},
		&cli.IntFlag{
			Name:        "max-title-length",
			Usage:       "Maximum title length in characters (0 disables the limit)",
			Value:       c.MaxTitleLength,
			Destination: &c.MaxTitleLength,
			Sources:     cli.EnvVars("PRTITLE_MAX_TITLE_LENGTH"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout for the text generation call (0 disables it)",
			Value:       c.Timeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("PRTITLE_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:        "comment-on-fix",
			Usage:       "Post a confirmation comment after fix-title renames the PR",
			Destination: &c.CommentOnFix,
			Sources:     cli.EnvVars("PRTITLE_COMMENT_ON_FIX"),
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       c.LogLevel,
			Destination: &c.LogLevel,
			Sources:     cli.EnvVars("PRTITLE_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Destination: &c.LogJSON,
			Sources:     cli.EnvVars("PRTITLE_LOG_JSON"),
		},
	}
}
