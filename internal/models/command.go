package models

import (
	"strings"

	"github.com/thomas-vilte/prtitle/internal/regex"
)

// Command is the operation requested by a trigger.
type Command string

const (
	CommandSuggestTitle Command = "suggest-title"
	CommandFixTitle     Command = "fix-title"
)

func (c Command) String() string {
	return string(c)
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	return c == CommandSuggestTitle || c == CommandFixTitle
}

// ParseCommand looks for a slash command at the start of any line of a comment.
// The first command found wins.
func ParseCommand(text string) (Command, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case regex.FixTitleCommand.MatchString(line):
			return CommandFixTitle, true
		case regex.SuggestTitleCommand.MatchString(line):
			return CommandSuggestTitle, true
		}
	}
	return "", false
}

// CommandFromDispatch maps the manual dispatch flags to a command.
// Fixing implies suggesting, so fix-title wins when both are set.
func CommandFromDispatch(suggest, fix bool) (Command, bool) {
	switch {
	case fix:
		return CommandFixTitle, true
	case suggest:
		return CommandSuggestTitle, true
	default:
		return "", false
	}
}
