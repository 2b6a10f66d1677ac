package interactive

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("wizard aborted")

// Prompter abstracts the terminal so the flow can be tested without one.
type Prompter interface {
	Multiline(ctx context.Context, message, help string) (string, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

// SurveyPrompter asks questions on the controlling terminal.
type SurveyPrompter struct{}

func (SurveyPrompter) Multiline(ctx context.Context, message, help string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Multiline{Message: message, Help: help}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", mapErr(err)
	}
	return out, nil
}

func (SurveyPrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, mapErr(err)
	}
	return out, nil
}

func mapErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

var _ Prompter = SurveyPrompter{}
