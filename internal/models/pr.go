package models

type (
	// PRContext is a read-only snapshot of a Pull Request, taken once per invocation.
	PRContext struct {
		Number         int
		CurrentTitle   string
		CommitMessages []string
		DiffSummary    string
		Description    string
		Author         string
		BranchName     string
		ChangedFiles   []string
	}

	// TitleProposal is the candidate title produced by the suggester.
	// Usage is informational and does not take part in comparisons.
	TitleProposal struct {
		Text  string
		Usage *TokenUsage
	}
)

// Action describes what the dispatcher did with a proposal.
type Action string

const (
	ActionProposed  Action = "proposed"
	ActionCommented Action = "commented"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
)

// Outcome reports the result of a single run.
type Outcome struct {
	Command       Command
	PRNumber      int
	PreviousTitle string
	Proposal      TitleProposal
	Action        Action
}
