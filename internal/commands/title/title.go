package title

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/thomas-vilte/prtitle/internal/commands/completion_helper"
	cfg "github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/event"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/thomas-vilte/prtitle/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	flagPR        = "pr"
	flagShowUsage = "show-usage"
)

// TitleRunner is the part of the title service the commands drive.
type TitleRunner interface {
	Propose(ctx context.Context, prNumber int) (models.Outcome, error)
	Run(ctx context.Context, prNumber int, command models.Command) (models.Outcome, error)
}

// RunnerProvider builds a TitleRunner once flags are parsed, so that
// commands which end up doing nothing never need credentials.
type RunnerProvider func(ctx context.Context, cfg *cfg.Config) (TitleRunner, error)

type Option func(*base)

// WithOutput sets where the title (stdout) and the human-readable report (stderr) go.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(b *base) {
		b.stdout = stdout
		b.stderr = stderr
	}
}

// WithLookuper sets where the action command reads the Actions environment from.
func WithLookuper(l envconfig.Lookuper) Option {
	return func(b *base) {
		b.lookuper = l
	}
}

type base struct {
	provider RunnerProvider
	stdout   io.Writer
	stderr   io.Writer
	lookuper envconfig.Lookuper
}

func newBase(provider RunnerProvider, opts ...Option) base {
	b := base{
		provider: provider,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func prFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    flagPR,
			Aliases: []string{"n", "pr-number"},
			Usage:   t.GetMessage("pr_number_usage", 0, nil),
		},
		showUsageFlag(t),
	}
}

func showUsageFlag(t *i18n.Translations) cli.Flag {
	return &cli.BoolFlag{
		Name:  flagShowUsage,
		Usage: t.GetMessage("show_usage_usage", 0, nil),
	}
}

func (b base) prNumber(cmd *cli.Command, t *i18n.Translations) (int, error) {
	n := cmd.Int(flagPR)
	if n <= 0 {
		return 0, fmt.Errorf("%s: %w", t.GetMessage("error_pr_number_required", 0, nil), domainErrors.ErrPRNumberRequired)
	}
	return n, nil
}

func (b base) runner(ctx context.Context, config *cfg.Config, t *i18n.Translations) (TitleRunner, error) {
	runner, err := b.provider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.GetMessage("error_run_failed", 0, nil), err)
	}
	return runner, nil
}

// report writes the title to stdout and the summary to stderr.
func (b base) report(cmd *cli.Command, t *i18n.Translations, outcome models.Outcome) {
	_, _ = fmt.Fprintln(b.stdout, outcome.Proposal.Text)
	ui.PrintOutcome(b.stderr, outcome, t)
	if cmd.Bool(flagShowUsage) {
		ui.PrintTokenUsage(b.stderr, outcome.Proposal.Usage, t)
	}
}

// ProposeCommand prints the proposed title without touching the pull request.
type ProposeCommand struct {
	base
}

func NewProposeCommand(provider RunnerProvider, opts ...Option) *ProposeCommand {
	return &ProposeCommand{base: newBase(provider, opts...)}
}

func (c *ProposeCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:          "propose",
		Aliases:       []string{"p"},
		Usage:         t.GetMessage("propose_usage", 0, nil),
		Flags:         prFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			start := time.Now()

			prNumber, err := c.prNumber(cmd, t)
			if err != nil {
				return err
			}

			log.Info("executing propose command", "pr_number", prNumber)

			runner, err := c.runner(ctx, config, t)
			if err != nil {
				return err
			}

			outcome, err := runner.Propose(ctx, prNumber)
			if err != nil {
				log.Error("failed to propose title",
					"error", err,
					"pr_number", prNumber,
					"duration_ms", time.Since(start).Milliseconds())
				return fmt.Errorf("%s: %w", t.GetMessage("error_run_failed", 0, nil), err)
			}

			c.report(cmd, t, outcome)
			return nil
		},
	}
}

// RunCommand executes a single title command against a pull request.
type RunCommand struct {
	base
	command models.Command
}

func NewSuggestCommand(provider RunnerProvider, opts ...Option) *RunCommand {
	return &RunCommand{base: newBase(provider, opts...), command: models.CommandSuggestTitle}
}

func NewFixCommand(provider RunnerProvider, opts ...Option) *RunCommand {
	return &RunCommand{base: newBase(provider, opts...), command: models.CommandFixTitle}
}

func (c *RunCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	usage := "suggest_usage"
	if c.command == models.CommandFixTitle {
		usage = "fix_usage"
	}

	return &cli.Command{
		Name:          c.command.String(),
		Usage:         t.GetMessage(usage, 0, nil),
		Flags:         prFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			prNumber, err := c.prNumber(cmd, t)
			if err != nil {
				return err
			}
			return c.execute(ctx, cmd, t, config, prNumber, c.command)
		},
	}
}

func (b base) execute(ctx context.Context, cmd *cli.Command, t *i18n.Translations, config *cfg.Config, prNumber int, command models.Command) error {
	log := logger.FromContext(ctx)
	start := time.Now()

	log.Info("executing title command",
		"command", command.String(),
		"pr_number", prNumber)

	runner, err := b.runner(ctx, config, t)
	if err != nil {
		return err
	}

	outcome, err := runner.Run(ctx, prNumber, command)
	if err != nil {
		log.Error("title command failed",
			"error", err,
			"command", command.String(),
			"pr_number", prNumber,
			"action", string(outcome.Action),
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("%s: %w", t.GetMessage("error_run_failed", 0, nil), err)
	}

	log.Debug("title command completed",
		"command", command.String(),
		"duration_ms", time.Since(start).Milliseconds())

	b.report(cmd, t, outcome)
	return nil
}

// ActionCommand reads the GitHub Actions event and runs the command it carries.
type ActionCommand struct {
	base
}

func NewActionCommand(provider RunnerProvider, opts ...Option) *ActionCommand {
	return &ActionCommand{base: newBase(provider, opts...)}
}

func (c *ActionCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:          "action",
		Usage:         t.GetMessage("action_usage", 0, nil),
		Flags:         []cli.Flag{showUsageFlag(t)},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			trigger, err := event.Load(ctx, c.lookuper)
			if err != nil {
				return fmt.Errorf("%s: %w", t.GetMessage("error_run_failed", 0, nil), err)
			}

			log.Info("workflow event decoded",
				"event", trigger.EventName,
				"actor", trigger.Actor,
				"command", trigger.Command.String(),
				"pr_number", trigger.PRNumber)

			if !trigger.HasCommand() {
				ui.PrintInfo(c.stderr, t.GetMessage("result_no_command", 0, nil))
				return nil
			}

			if config.Repository == "" {
				config.Repository = trigger.Repository
			}

			return c.execute(ctx, cmd, t, config, trigger.PRNumber, trigger.Command)
		},
	}
}
