package regex

import "regexp"

var (
	// Title patterns
	ConventionalCommit = regexp.MustCompile(`^(feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(\(([^)]+)\))?(!)?:\s+(.+)`)
	TitleLabel         = regexp.MustCompile(`(?i)^(?:pr\s+)?(?:suggested\s+)?title\s*:\s*`)
	MarkdownHeading    = regexp.MustCompile(`^#{1,6}\s+`)
	ListMarker         = regexp.MustCompile(`^(?:[-*+]|\d+[.)])\s+`)

	// Trigger patterns, matched against each line of a comment
	SuggestTitleCommand = regexp.MustCompile(`^/suggest-title(?:\s|$)`)
	FixTitleCommand     = regexp.MustCompile(`^/fix-title(?:\s|$)`)

	// Diff patterns
	DiffFileHeader = regexp.MustCompile(`^diff --git a/(\S+) b/(\S+)`)

	// Repo patterns
	RepoSlug = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)
)
