package services

import (
	"context"
	"strings"

	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/thomas-vilte/prtitle/internal/regex"
)

// titleVCSClient defines the methods needed by TitleService from a VCS provider.
type titleVCSClient interface {
	GetPRContext(ctx context.Context, prNumber int) (models.PRContext, error)
	UpdatePRTitle(ctx context.Context, prNumber int, title string) error
	CreateComment(ctx context.Context, prNumber int, body string) error
}

// titleProposer defines the methods needed by TitleService to get a proposal.
type titleProposer interface {
	Propose(ctx context.Context, prCtx models.PRContext) (models.TitleProposal, error)
}

type TitleService struct {
	vcsClient titleVCSClient
	proposer  titleProposer
	trans     *i18n.Translations
	config    *config.Config
}

type TitleOption func(*TitleService)

func WithTitleVCSClient(vcs titleVCSClient) TitleOption {
	return func(s *TitleService) {
		s.vcsClient = vcs
	}
}

func WithTitleProposer(p titleProposer) TitleOption {
	return func(s *TitleService) {
		s.proposer = p
	}
}

func WithTitleTranslations(t *i18n.Translations) TitleOption {
	return func(s *TitleService) {
		s.trans = t
	}
}

func WithTitleConfig(cfg *config.Config) TitleOption {
	return func(s *TitleService) {
		s.config = cfg
	}
}

func NewTitleService(opts ...TitleOption) *TitleService {
	s := &TitleService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config = config.Default()
	}
	return s
}

// Propose reads the PR and returns the proposal without touching the PR.
func (s *TitleService) Propose(ctx context.Context, prNumber int) (models.Outcome, error) {
	prCtx, proposal, err := s.prepare(ctx, prNumber)
	if err != nil {
		return models.Outcome{PRNumber: prNumber}, err
	}

	return models.Outcome{
		PRNumber:      prNumber,
		PreviousTitle: prCtx.CurrentTitle,
		Proposal:      proposal,
		Action:        models.ActionProposed,
	}, nil
}

// Run executes command against the PR. SuggestTitle only ever comments;
// FixTitle updates the title at most once and skips the update when the
// proposal equals the current title.
func (s *TitleService) Run(ctx context.Context, prNumber int, command models.Command) (models.Outcome, error) {
	log := logger.FromContext(ctx)
	outcome := models.Outcome{Command: command, PRNumber: prNumber}

	if !command.Valid() {
		return outcome, domainErrors.ErrInvalidConfig.WithContext("command", string(command))
	}

	log.Info("running title command",
		"command", command.String(),
		"pr_number", prNumber)

	prCtx, proposal, err := s.prepare(ctx, prNumber)
	if err != nil {
		return outcome, err
	}
	outcome.PreviousTitle = prCtx.CurrentTitle
	outcome.Proposal = proposal

	switch command {
	case models.CommandSuggestTitle:
		if err := s.vcsClient.CreateComment(ctx, prNumber, s.suggestionComment(prCtx, proposal)); err != nil {
			return outcome, err
		}
		outcome.Action = models.ActionCommented

	case models.CommandFixTitle:
		if proposal.Text == strings.TrimSpace(prCtx.CurrentTitle) {
			log.Info("title already matches the proposal",
				"pr_number", prNumber,
				"title", proposal.Text)
			outcome.Action = models.ActionUnchanged
			return outcome, nil
		}

		if err := s.vcsClient.UpdatePRTitle(ctx, prNumber, proposal.Text); err != nil {
			return outcome, err
		}
		outcome.Action = models.ActionUpdated

		if s.config.CommentOnFix {
			body := s.message("comment_title_updated", map[string]interface{}{
				"PreviousTitle": strings.TrimSpace(prCtx.CurrentTitle),
				"Title":         proposal.Text,
			})
			if err := s.vcsClient.CreateComment(ctx, prNumber, body); err != nil {
				return outcome, err
			}
		}
	}

	log.Info("title command finished",
		"command", command.String(),
		"pr_number", prNumber,
		"action", string(outcome.Action))

	return outcome, nil
}

func (s *TitleService) prepare(ctx context.Context, prNumber int) (models.PRContext, models.TitleProposal, error) {
	log := logger.FromContext(ctx)

	if prNumber <= 0 {
		return models.PRContext{}, models.TitleProposal{}, domainErrors.ErrPRNumberRequired.WithContext("pr_number", prNumber)
	}
	if s.vcsClient == nil {
		return models.PRContext{}, models.TitleProposal{}, domainErrors.ErrTokenMissing
	}
	if s.proposer == nil {
		return models.PRContext{}, models.TitleProposal{}, domainErrors.ErrAPIKeyMissing
	}

	prCtx, err := s.vcsClient.GetPRContext(ctx, prNumber)
	if err != nil {
		log.Error("failed to get PR context",
			"error", err,
			"pr_number", prNumber)
		return models.PRContext{}, models.TitleProposal{}, err
	}
	if prCtx.Number == 0 {
		prCtx.Number = prNumber
	}

	proposal, err := s.proposer.Propose(ctx, prCtx)
	if err != nil {
		log.Error("failed to propose title",
			"error", err,
			"pr_number", prNumber)
		return prCtx, models.TitleProposal{}, err
	}

	return prCtx, proposal, nil
}

func (s *TitleService) suggestionComment(prCtx models.PRContext, proposal models.TitleProposal) string {
	current := strings.TrimSpace(prCtx.CurrentTitle)

	if proposal.Text == current {
		return s.message("comment_suggestion_same", map[string]interface{}{
			"Title": proposal.Text,
		})
	}

	body := s.message("comment_suggestion", map[string]interface{}{
		"Title":        proposal.Text,
		"CurrentTitle": current,
	})

	if s.config.TitleStyle() == config.StyleConventional && !regex.ConventionalCommit.MatchString(current) {
		if hint := s.message("comment_not_conventional", nil); hint != "" {
			body += "\n\n" + hint
		}
	}
	return body
}

func (s *TitleService) message(id string, data map[string]interface{}) string {
	if s.trans == nil {
		if title, ok := data["Title"].(string); ok {
			return title
		}
		return ""
	}
	return s.trans.GetMessage(id, 0, data)
}
