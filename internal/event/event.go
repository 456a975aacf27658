package event

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/go-github/v80/github"
	"github.com/sethvargo/go-envconfig"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/models"
)

const (
	EventIssueComment     = "issue_comment"
	EventWorkflowDispatch = "workflow_dispatch"
)

// Dispatch input names.
const (
	InputPRNumber     = "pr-number"
	InputSuggestTitle = "suggest-title"
	InputFixTitle     = "fix-title"
)

// ActionsEnv is the part of the GitHub Actions environment prtitle reads.
type ActionsEnv struct {
	EventName  string `env:"GITHUB_EVENT_NAME,required"`
	EventPath  string `env:"GITHUB_EVENT_PATH,required"`
	Repository string `env:"GITHUB_REPOSITORY"`
}

// Trigger is what an event asks prtitle to do. An empty Command means the
// event carries no request and the run is a no-op.
type Trigger struct {
	EventName  string
	Repository string
	PRNumber   int
	Command    models.Command
	Actor      string
}

// HasCommand reports whether the event requested a title command.
func (t Trigger) HasCommand() bool {
	return t.Command.Valid()
}

// LoadEnv reads the Actions environment. A nil lookuper reads the process environment.
func LoadEnv(ctx context.Context, lookuper envconfig.Lookuper) (ActionsEnv, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var env ActionsEnv
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return ActionsEnv{}, domainErrors.ErrEventPayload.WithError(err)
	}
	return env, nil
}

// Load reads the Actions environment and decodes the event payload it points to.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (Trigger, error) {
	env, err := LoadEnv(ctx, lookuper)
	if err != nil {
		return Trigger{}, err
	}

	payload, err := os.ReadFile(env.EventPath)
	if err != nil {
		return Trigger{}, domainErrors.ErrEventPayload.
			WithContext("path", env.EventPath).
			WithError(err)
	}

	trigger, err := Decode(env.EventName, payload)
	if err != nil {
		return Trigger{}, err
	}
	if trigger.Repository == "" {
		trigger.Repository = env.Repository
	}
	return trigger, nil
}

// Decode parses a webhook payload for eventName.
func Decode(eventName string, payload []byte) (Trigger, error) {
	switch eventName {
	case EventIssueComment:
		return decodeIssueComment(payload)
	case EventWorkflowDispatch:
		return decodeWorkflowDispatch(payload)
	default:
		return Trigger{}, domainErrors.ErrEventNotSupported.WithContext("event", eventName)
	}
}

func decodeIssueComment(payload []byte) (Trigger, error) {
	var e github.IssueCommentEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return Trigger{}, domainErrors.ErrEventPayload.
			WithContext("event", EventIssueComment).
			WithError(err)
	}

	trigger := Trigger{
		EventName:  EventIssueComment,
		Repository: e.GetRepo().GetFullName(),
		PRNumber:   e.GetIssue().GetNumber(),
		Actor:      e.GetSender().GetLogin(),
	}

	// Edits, deletions, plain issues and bot comments never trigger a run.
	issue := e.GetIssue()
	if e.GetAction() != "created" || issue == nil || !issue.IsPullRequest() || e.GetSender().GetType() == "Bot" {
		return trigger, nil
	}

	if cmd, ok := models.ParseCommand(e.GetComment().GetBody()); ok {
		trigger.Command = cmd
	}
	return trigger, nil
}

func decodeWorkflowDispatch(payload []byte) (Trigger, error) {
	var e github.WorkflowDispatchEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return Trigger{}, domainErrors.ErrEventPayload.
			WithContext("event", EventWorkflowDispatch).
			WithError(err)
	}

	trigger := Trigger{
		EventName:  EventWorkflowDispatch,
		Repository: e.GetRepo().GetFullName(),
		Actor:      e.GetSender().GetLogin(),
	}

	inputs := map[string]interface{}{}
	if len(e.Inputs) > 0 {
		if err := json.Unmarshal(e.Inputs, &inputs); err != nil {
			return Trigger{}, domainErrors.ErrEventPayload.
				WithContext("event", EventWorkflowDispatch).
				WithError(err)
		}
	}

	suggest, err := boolInput(inputs, InputSuggestTitle)
	if err != nil {
		return Trigger{}, err
	}
	fix, err := boolInput(inputs, InputFixTitle)
	if err != nil {
		return Trigger{}, err
	}

	cmd, ok := models.CommandFromDispatch(suggest, fix)
	if !ok {
		return trigger, nil
	}
	trigger.Command = cmd

	number, err := intInput(inputs, InputPRNumber)
	if err != nil {
		return Trigger{}, err
	}
	if number <= 0 {
		return Trigger{}, domainErrors.ErrPRNumberRequired.WithContext("input", InputPRNumber)
	}
	trigger.PRNumber = number

	return trigger, nil
}

// boolInput accepts JSON booleans and the "true"/"false" strings Actions sends.
func boolInput(inputs map[string]interface{}, name string) (bool, error) {
	switch v := inputs[name].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, invalidInput(name, v, err)
		}
		return b, nil
	default:
		return false, invalidInput(name, v, fmt.Errorf("expected a boolean"))
	}
}

func intInput(inputs map[string]interface{}, name string) (int, error) {
	switch v := inputs[name].(type) {
	case nil:
		return 0, nil
	case float64:
		if v != float64(int(v)) {
			return 0, invalidInput(name, v, fmt.Errorf("expected an integer"))
		}
		return int(v), nil
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(v), "#")
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, invalidInput(name, v, err)
		}
		return n, nil
	default:
		return 0, invalidInput(name, v, fmt.Errorf("expected a number"))
	}
}

func invalidInput(name string, value interface{}, err error) error {
	return domainErrors.ErrEventPayload.
		WithContext("input", name).
		WithContext("value", value).
		WithError(err)
}
