package vcs

import (
	"context"

	"github.com/thomas-vilte/prtitle/internal/models"
)

// PRReader reads a snapshot of a Pull Request.
type PRReader interface {
	// GetPRContext gets the current title, commits, description and diff of a PR.
	GetPRContext(ctx context.Context, prNumber int) (models.PRContext, error)
}

// TitleUpdater replaces the title of a Pull Request.
type TitleUpdater interface {
	UpdatePRTitle(ctx context.Context, prNumber int, title string) error
}

// Commenter posts a comment on a Pull Request conversation.
type Commenter interface {
	CreateComment(ctx context.Context, prNumber int, body string) error
}

// VCSClient defines the methods prtitle needs from a version control provider.
type VCSClient interface {
	PRReader
	TitleUpdater
	Commenter
}
