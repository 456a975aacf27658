package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/models"
)

func newTestTitleService(t *testing.T, vcs *MockVCSClient, proposer *MockProposer, cfg *config.Config) *TitleService {
	t.Helper()
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	if cfg == nil {
		cfg = config.Default()
	}
	return NewTitleService(
		WithTitleVCSClient(vcs),
		WithTitleProposer(proposer),
		WithTitleTranslations(trans),
		WithTitleConfig(cfg),
	)
}

func TestTitleService_Run_FixTitle(t *testing.T) {
	ctx := context.Background()

	t.Run("no-op when the proposal equals the current title", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 5, CurrentTitle: "Fix bug"}

		mockVCS.On("GetPRContext", ctx, 5).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "Fix bug"}, nil)

		service := newTestTitleService(t, mockVCS, mockProposer, nil)

		outcome, err := service.Run(ctx, 5, models.CommandFixTitle)

		require.NoError(t, err)
		assert.Equal(t, models.ActionUnchanged, outcome.Action)
		assert.Equal(t, "Fix bug", outcome.Proposal.Text)
		mockVCS.AssertNotCalled(t, "UpdatePRTitle", mock.Anything, mock.Anything, mock.Anything)
		mockVCS.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("current title whitespace is ignored", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 5, CurrentTitle: "  Fix bug \n"}

		mockVCS.On("GetPRContext", ctx, 5).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "Fix bug"}, nil)

		service := newTestTitleService(t, mockVCS, mockProposer, nil)

		outcome, err := service.Run(ctx, 5, models.CommandFixTitle)

		require.NoError(t, err)
		assert.Equal(t, models.ActionUnchanged, outcome.Action)
		mockVCS.AssertNotCalled(t, "UpdatePRTitle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no-op when the unchanged title ends in a quoted word", func(t *testing.T) {
		for _, title := range []string{"Fix panic in `Parse`", `Quote the "name"`, "Rename 'config'"} {
			mockVCS := new(MockVCSClient)
			prCtx := models.PRContext{Number: 6, CurrentTitle: title, CommitMessages: []string{"fix parser"}}
			mockVCS.On("GetPRContext", ctx, 6).Return(prCtx, nil)

			gen := generatorFunc(func(context.Context, string) (string, *models.TokenUsage, error) {
				return title + "\n", nil, nil
			})
			service := NewTitleService(
				WithTitleVCSClient(mockVCS),
				WithTitleProposer(NewTitleSuggester(WithTextGenerator(gen))),
			)

			outcome, err := service.Run(ctx, 6, models.CommandFixTitle)

			require.NoError(t, err)
			assert.Equal(t, models.ActionUnchanged, outcome.Action, title)
			assert.Equal(t, title, outcome.Proposal.Text)
			mockVCS.AssertNotCalled(t, "UpdatePRTitle", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("exactly one update when the titles differ", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 8, CurrentTitle: "wip"}

		mockVCS.On("GetPRContext", ctx, 8).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "Fix null pointer in parser"}, nil)
		mockVCS.On("UpdatePRTitle", ctx, 8, "Fix null pointer in parser").Return(nil).Once()

		service := newTestTitleService(t, mockVCS, mockProposer, nil)

		outcome, err := service.Run(ctx, 8, models.CommandFixTitle)

		require.NoError(t, err)
		assert.Equal(t, models.ActionUpdated, outcome.Action)
		assert.Equal(t, "wip", outcome.PreviousTitle)
		assert.Equal(t, models.CommandFixTitle, outcome.Command)
		mockVCS.AssertNumberOfCalls(t, "UpdatePRTitle", 1)
		mockVCS.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirms the rename when enabled", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 8, CurrentTitle: "wip"}
		cfg := config.Default()
		cfg.CommentOnFix = true

		mockVCS.On("GetPRContext", ctx, 8).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "fix: handle nil config"}, nil)
		mockVCS.On("UpdatePRTitle", ctx, 8, "fix: handle nil config").Return(nil).Once()
		mockVCS.On("CreateComment", ctx, 8, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "`wip`") && strings.Contains(body, "`fix: handle nil config`")
		})).Return(nil).Once()

		service := newTestTitleService(t, mockVCS, mockProposer, cfg)

		outcome, err := service.Run(ctx, 8, models.CommandFixTitle)

		require.NoError(t, err)
		assert.Equal(t, models.ActionUpdated, outcome.Action)
		mockVCS.AssertExpectations(t)
	})

	t.Run("update failure is returned", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 8, CurrentTitle: "wip"}

		mockVCS.On("GetPRContext", ctx, 8).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "fix: x"}, nil)
		mockVCS.On("UpdatePRTitle", ctx, 8, "fix: x").Return(domainErrors.ErrGitHubInsufficientPerms)

		service := newTestTitleService(t, mockVCS, mockProposer, nil)

		outcome, err := service.Run(ctx, 8, models.CommandFixTitle)

		assert.ErrorIs(t, err, domainErrors.ErrGitHubInsufficientPerms)
		assert.Empty(t, outcome.Action)
	})
}

func TestTitleService_Run_SuggestTitle(t *testing.T) {
	ctx := context.Background()

	t.Run("comments and never updates", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 3, CurrentTitle: "wip"}

		mockVCS.On("GetPRContext", ctx, 3).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "feat: add export"}, nil)

		var body string
		mockVCS.On("CreateComment", ctx, 3, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { body = args.String(2) }).
			Return(nil).Once()

		service := newTestTitleService(t, mockVCS, mockProposer, nil)

		outcome, err := service.Run(ctx, 3, models.CommandSuggestTitle)

		require.NoError(t, err)
		assert.Equal(t, models.ActionCommented, outcome.Action)
		assert.Contains(t, body, "> feat: add export")
		assert.Contains(t, body, "`wip`")
		assert.Contains(t, body, "conventional commit format")
		mockVCS.AssertNotCalled(t, "UpdatePRTitle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("comments even when the title already matches", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 3, CurrentTitle: "feat: add export"}

		mockVCS.On("GetPRContext", ctx, 3).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "feat: add export"}, nil)
		mockVCS.On("CreateComment", ctx, 3, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "already matches")
		})).Return(nil).Once()

		service := newTestTitleService(t, mockVCS, mockProposer, nil)

		outcome, err := service.Run(ctx, 3, models.CommandSuggestTitle)

		require.NoError(t, err)
		assert.Equal(t, models.ActionCommented, outcome.Action)
		mockVCS.AssertExpectations(t)
		mockVCS.AssertNotCalled(t, "UpdatePRTitle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no dangling hint without translations", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 4, CurrentTitle: "wip"}

		mockVCS.On("GetPRContext", ctx, 4).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "fix: handle nil config"}, nil)
		mockVCS.On("CreateComment", ctx, 4, "fix: handle nil config").Return(nil).Once()

		service := NewTitleService(WithTitleVCSClient(mockVCS), WithTitleProposer(mockProposer))

		_, err := service.Run(ctx, 4, models.CommandSuggestTitle)

		require.NoError(t, err)
		mockVCS.AssertExpectations(t)
	})

	t.Run("free style skips the conventional hint", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 3, CurrentTitle: "wip"}
		cfg := config.Default()
		cfg.Style = string(config.StyleFree)

		mockVCS.On("GetPRContext", ctx, 3).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "Add export"}, nil)
		mockVCS.On("CreateComment", ctx, 3, mock.MatchedBy(func(body string) bool {
			return !strings.Contains(body, "conventional commit format")
		})).Return(nil).Once()

		service := newTestTitleService(t, mockVCS, mockProposer, cfg)

		_, err := service.Run(ctx, 3, models.CommandSuggestTitle)

		require.NoError(t, err)
		mockVCS.AssertExpectations(t)
	})
}

func TestTitleService_Run_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("read failure aborts", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		mockVCS.On("GetPRContext", ctx, 4).Return(models.PRContext{}, domainErrors.ErrPullRequestNotFound)

		service := newTestTitleService(t, mockVCS, mockProposer, nil)

		_, err := service.Run(ctx, 4, models.CommandFixTitle)

		assert.ErrorIs(t, err, domainErrors.ErrPullRequestNotFound)
		mockProposer.AssertNotCalled(t, "Propose", mock.Anything, mock.Anything)
	})

	t.Run("generation failure aborts without writes", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 4, CurrentTitle: "wip"}
		mockVCS.On("GetPRContext", ctx, 4).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{}, domainErrors.ErrGenerationTimeout)

		service := newTestTitleService(t, mockVCS, mockProposer, nil)

		for _, cmd := range []models.Command{models.CommandSuggestTitle, models.CommandFixTitle} {
			_, err := service.Run(ctx, 4, cmd)
			assert.True(t, domainErrors.IsGenerationError(err))
		}
		mockVCS.AssertNotCalled(t, "UpdatePRTitle", mock.Anything, mock.Anything, mock.Anything)
		mockVCS.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("comment failure is returned", func(t *testing.T) {
		mockVCS := new(MockVCSClient)
		mockProposer := new(MockProposer)
		prCtx := models.PRContext{Number: 4}
		cause := errors.New("boom")
		mockVCS.On("GetPRContext", ctx, 4).Return(prCtx, nil)
		mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "fix: x"}, nil)
		mockVCS.On("CreateComment", ctx, 4, mock.Anything).Return(cause)

		service := newTestTitleService(t, mockVCS, mockProposer, nil)

		_, err := service.Run(ctx, 4, models.CommandSuggestTitle)

		assert.ErrorIs(t, err, cause)
	})

	t.Run("invalid pr number", func(t *testing.T) {
		service := newTestTitleService(t, new(MockVCSClient), new(MockProposer), nil)

		_, err := service.Run(ctx, 0, models.CommandSuggestTitle)

		assert.ErrorIs(t, err, domainErrors.ErrPRNumberRequired)
	})

	t.Run("unknown command", func(t *testing.T) {
		service := newTestTitleService(t, new(MockVCSClient), new(MockProposer), nil)

		_, err := service.Run(ctx, 1, models.Command("rename"))

		assert.ErrorIs(t, err, domainErrors.ErrInvalidConfig)
	})
}

func TestTitleService_Propose(t *testing.T) {
	ctx := context.Background()
	mockVCS := new(MockVCSClient)
	mockProposer := new(MockProposer)
	prCtx := models.PRContext{Number: 9, CurrentTitle: "wip"}

	mockVCS.On("GetPRContext", ctx, 9).Return(prCtx, nil)
	mockProposer.On("Propose", ctx, prCtx).Return(models.TitleProposal{Text: "docs: describe setup"}, nil)

	service := newTestTitleService(t, mockVCS, mockProposer, nil)

	outcome, err := service.Propose(ctx, 9)

	require.NoError(t, err)
	assert.Equal(t, models.ActionProposed, outcome.Action)
	assert.Equal(t, "docs: describe setup", outcome.Proposal.Text)
	mockVCS.AssertNotCalled(t, "UpdatePRTitle", mock.Anything, mock.Anything, mock.Anything)
	mockVCS.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
}
