package errors

import (
	"errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAuth          ErrorType = "AUTH"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeEvent         ErrorType = "EVENT"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status"].(int); ok && status != 0 {
			msg += fmt.Sprintf(" - HTTP %d", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports a match when the target is an AppError with the same type and message,
// so sentinel values keep matching after WithError or WithContext.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// IsType reports whether any AppError in the chain has the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Type == t
}

// IsGenerationError reports whether err comes from the text generation collaborator.
func IsGenerationError(err error) bool {
	return IsType(err, TypeAI)
}

// IsAuthError reports whether err is caused by missing or rejected credentials.
func IsAuthError(err error) bool {
	return IsType(err, TypeAuth)
}

// Configuration errors
var (
	ErrInvalidConfig = NewAppError(TypeConfiguration, "invalid configuration", nil).
				WithSuggestion("Run: prtitle --help to list the supported options")

	ErrProviderNotSupported = NewAppError(TypeConfiguration, "AI provider not supported", nil).
				WithSuggestion("Use one of: gemini, anthropic, openai (--provider or PRTITLE_PROVIDER)")

	ErrInvalidRepository = NewAppError(TypeConfiguration, "repository must be in owner/name form", nil).
				WithSuggestion("Set --repo owner/name or GITHUB_REPOSITORY")

	ErrPRNumberRequired = NewAppError(TypeConfiguration, "a pull request number is required", nil).
				WithSuggestion("Pass --pr <number>")
)

// Auth errors
var (
	ErrAPIKeyMissing = NewAppError(TypeAuth, "AI API key is missing", nil).
				WithSuggestion("Set --api-key or PRTITLE_API_KEY")

	ErrAPIKeyInvalid = NewAppError(TypeAuth, "AI API key is invalid", nil).
				WithSuggestion("Check the key configured in PRTITLE_API_KEY for the selected provider")

	ErrTokenMissing = NewAppError(TypeAuth, "GitHub token is missing", nil).
			WithSuggestion("Set --github-token, PRTITLE_GITHUB_TOKEN or GITHUB_TOKEN")

	ErrGitHubTokenInvalid = NewAppError(TypeAuth, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeAuth, "GitHub token has insufficient permissions", nil).
					WithSuggestion("The workflow needs 'pull-requests: write' and 'issues: write' permissions")
)

// VCS errors
var (
	ErrPullRequestNotFound = NewAppError(TypeVCS, "pull request not found", nil).
				WithSuggestion("Check the PR number and that the token can access the repository")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or use a token with a higher rate limit")

	ErrReadPR = NewAppError(TypeVCS, "failed to read pull request", nil)

	ErrUpdateTitle = NewAppError(TypeVCS, "failed to update pull request title", nil)

	ErrCreateComment = NewAppError(TypeVCS, "failed to create pull request comment", nil)
)

// AI errors
var (
	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrEmptyGeneration = NewAppError(TypeAI, "AI returned an empty title", nil).
				WithSuggestion("This is likely a temporary issue, please try again")

	ErrGenerationTimeout = NewAppError(TypeAI, "AI generation timed out", nil).
				WithSuggestion("Increase --timeout or reduce --max-diff-chars")

	ErrQuotaExceeded = NewAppError(TypeAI, "AI quota exceeded or rate limited", nil).
				WithSuggestion("Wait a few minutes and try again, or check your API quota")
)

// Event errors
var (
	ErrEventPayload = NewAppError(TypeEvent, "failed to read the workflow event payload", nil).
			WithSuggestion("Run 'prtitle action' from a GitHub Actions job")

	ErrEventNotSupported = NewAppError(TypeEvent, "workflow event not supported", nil).
				WithSuggestion("Trigger on issue_comment or workflow_dispatch")
)
