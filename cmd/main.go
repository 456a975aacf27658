package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/thomas-vilte/prtitle/internal/ai/registry"
	cmdRegistry "github.com/thomas-vilte/prtitle/internal/cli/registry"
	"github.com/thomas-vilte/prtitle/internal/commands/title"
	cfg "github.com/thomas-vilte/prtitle/internal/config"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/services"
	"github.com/thomas-vilte/prtitle/internal/ui"
	"github.com/thomas-vilte/prtitle/internal/vcs/github"
	"github.com/thomas-vilte/prtitle/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, translations, err := initializeApp(os.Stdout, os.Stderr, os.Getenv)
	if err != nil {
		ui.HandleAppError(os.Stderr, err, nil)
		os.Exit(1)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		stop()
		os.Exit(1)
	}
}

// initializeApp builds the CLI. Flags and environment are only read once the
// app runs; usage strings use PRTITLE_LANGUAGE when it is set.
func initializeApp(stdout, stderr io.Writer, getenv func(string) string) (*cli.Command, *i18n.Translations, error) {
	cfgApp := cfg.Default()

	lang, err := cfg.NormalizeLanguage(getenv("PRTITLE_LANGUAGE"))
	if err != nil {
		lang = cfg.LangEN
	}
	translations, err := i18n.NewTranslations(lang)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	provider := newRunnerProvider(translations, getenv)
	output := title.WithOutput(stdout, stderr)

	registerCommand := cmdRegistry.NewRegistry(cfgApp, translations)
	factories := []struct {
		name    string
		factory cmdRegistry.CommandFactory
	}{
		{"propose", title.NewProposeCommand(provider, output)},
		{"suggest-title", title.NewSuggestCommand(provider, output)},
		{"fix-title", title.NewFixCommand(provider, output)},
		{"action", title.NewActionCommand(provider, output)},
	}
	for _, f := range factories {
		if err := registerCommand.Register(f.name, f.factory); err != nil {
			return nil, nil, err
		}
	}

	return &cli.Command{
		Name:                  "prtitle",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Description:           translations.GetMessage("app_description", 0, nil),
		Version:               version.FullVersion(),
		Flags:                 cfgApp.Flags(),
		Commands:              registerCommand.CreateCommands(),
		Writer:                stdout,
		ErrWriter:             stderr,
		EnableShellCompletion: true,
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := logger.ParseLevel(cfgApp.LogLevel)
			if err != nil {
				return ctx, err
			}
			log := logger.Initialize(stderr, level, cfgApp.LogJSON)

			lang, err := cfg.NormalizeLanguage(cfgApp.Language)
			if err != nil {
				return ctx, err
			}
			if err := translations.SetLanguage(lang); err != nil {
				return ctx, err
			}

			return logger.WithLogger(ctx, log.With("version", version.Version)), nil
		},
	}, translations, nil
}

// newRunnerProvider validates the configuration and wires the generator,
// the GitHub client and the title service for a single run.
func newRunnerProvider(translations *i18n.Translations, getenv func(string) string) title.RunnerProvider {
	return func(ctx context.Context, config *cfg.Config) (title.TitleRunner, error) {
		config.ApplyProviderDefaults(getenv)
		if err := config.Validate(); err != nil {
			return nil, err
		}

		owner, repo, err := config.RepoParts()
		if err != nil {
			return nil, err
		}

		generator, err := registry.NewDefault().CreateGenerator(ctx, config)
		if err != nil {
			return nil, err
		}

		logger.Debug(ctx, "title service wired",
			"provider", config.Provider,
			"model", config.Model,
			"repository", config.Repository)

		suggester := services.NewTitleSuggester(
			services.WithTextGenerator(generator),
			services.WithSuggesterConfig(config),
		)

		return services.NewTitleService(
			services.WithTitleVCSClient(github.NewGitHubClient(owner, repo, config.GitHubToken)),
			services.WithTitleProposer(suggester),
			services.WithTitleTranslations(translations),
			services.WithTitleConfig(config),
		), nil
	}
}
