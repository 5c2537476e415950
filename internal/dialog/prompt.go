package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"flightdesk/pkg/domain"
)

// Prompt instance state keys.
const (
	stateOptions = "options"
	stateStatus  = "status"

	statusWaiting = "waiting"
)

// PromptOptions configures a single activation of a prompt-validate unit.
// The options are stored on the prompt's stack instance so a retry or a
// reprompt on a later turn can re-send them.
type PromptOptions struct {
	Prompt      string              `json:"prompt" mapstructure:"prompt"`
	RetryPrompt string              `json:"retry_prompt,omitempty" mapstructure:"retry_prompt"`
	Choices     []string            `json:"choices,omitempty" mapstructure:"choices"`
	Attachments []domain.Attachment `json:"attachments,omitempty" mapstructure:"attachments"`
}

// FoundChoice is the resolved value of a choice prompt.
type FoundChoice struct {
	Value string `json:"value"`
	Index int    `json:"index"`
}

// DateTimeResolution is one candidate reading of a date/time literal.
// Value is formatted as 2006-01-02.
type DateTimeResolution struct {
	Value string `json:"value"`
}

// TextValidator checks a text reply against domain rules. It may send its
// own failure message; returning false keeps the prompt waiting.
type TextValidator func(dc *Context, value string) (bool, error)

// DateValidator checks the candidate resolutions of a date reply. An empty
// slice means the literal did not parse at all.
type DateValidator func(dc *Context, resolutions []DateTimeResolution) (bool, error)

// promptCore carries the behavior shared by all prompt kinds: sending the
// question, persisting the options on the instance, and re-prompting.
type promptCore struct {
	id string
}

func (p *promptCore) ID() string { return p.id }

// begin stores the options on the freshly pushed instance, sends the
// question, and suspends the turn.
func (p *promptCore) begin(dc *Context, options any) (TurnResult, error) {
	opts, ok := options.(PromptOptions)
	if !ok {
		return TurnResult{}, fmt.Errorf("prompt %q: options must be PromptOptions, got %T", p.id, options)
	}
	inst := dc.Stack().Top()
	inst.State[stateOptions] = opts
	inst.State[stateStatus] = statusWaiting
	p.send(dc, opts)
	return TurnResult{Status: StatusWaiting}, nil
}

// options rehydrates the stored PromptOptions. Between turns the instance
// state round-trips through JSON, so the stored value may come back as a
// generic map.
func (p *promptCore) options(inst *Instance) (PromptOptions, error) {
	switch v := inst.State[stateOptions].(type) {
	case PromptOptions:
		return v, nil
	case map[string]any:
		var opts PromptOptions
		if err := decodeState(v, &opts); err != nil {
			return PromptOptions{}, fmt.Errorf("prompt %q: decode options: %w", p.id, err)
		}
		return opts, nil
	default:
		return PromptOptions{}, fmt.Errorf("prompt %q: no stored options", p.id)
	}
}

// send queues the question with its choices and attachments.
func (p *promptCore) send(dc *Context, opts PromptOptions) {
	for _, att := range opts.Attachments {
		dc.Turn().SendActivity(domain.Activity{Attachments: []domain.Attachment{att}})
	}
	dc.Turn().SendActivity(domain.Activity{
		Text:             opts.Prompt,
		SuggestedActions: opts.Choices,
	})
}

// retry re-asks after a failed validation: the retry prompt when one is
// configured, the original prompt otherwise. When the validator already
// responded this turn, nothing extra is sent. The loop is unbounded on
// purpose; a user can be asked forever.
func (p *promptCore) retry(dc *Context, inst *Instance, respondedBefore int) error {
	if len(dc.Turn().Activities()) > respondedBefore {
		return nil
	}
	opts, err := p.options(inst)
	if err != nil {
		return err
	}
	text := opts.RetryPrompt
	if text == "" {
		text = opts.Prompt
	}
	dc.Turn().SendActivity(domain.Activity{
		Text:             text,
		SuggestedActions: opts.Choices,
	})
	return nil
}

// Reprompt re-sends the pending question without consuming an answer.
func (p *promptCore) Reprompt(dc *Context, inst *Instance) error {
	opts, err := p.options(inst)
	if err != nil {
		return err
	}
	p.send(dc, opts)
	return nil
}

// TextPrompt asks a free-text question and validates the reply with a
// pluggable validator.
type TextPrompt struct {
	promptCore
	validate TextValidator
}

// NewTextPrompt creates a text prompt. validate may be nil, in which case
// any non-empty trimmed reply resolves.
func NewTextPrompt(id string, validate TextValidator) *TextPrompt {
	return &TextPrompt{promptCore: promptCore{id: id}, validate: validate}
}

// Begin sends the question and suspends the turn.
func (p *TextPrompt) Begin(dc *Context, options any) (TurnResult, error) {
	return p.begin(dc, options)
}

// Continue validates the reply: success resolves the prompt and pops back
// to the parent; failure re-asks and keeps waiting.
func (p *TextPrompt) Continue(dc *Context) (TurnResult, error) {
	inst := dc.Stack().Top()
	input := strings.TrimSpace(dc.Turn().Turn().Text)

	valid := input != ""
	respondedBefore := len(dc.Turn().Activities())
	if valid && p.validate != nil {
		ok, err := p.validate(dc, input)
		if err != nil {
			return TurnResult{}, err
		}
		valid = ok
	}
	if !valid {
		if err := p.retry(dc, inst, respondedBefore); err != nil {
			return TurnResult{}, err
		}
		return TurnResult{Status: StatusWaiting}, nil
	}
	return dc.End(input)
}

// Resume re-asks; a prompt has no children to resume from.
func (p *TextPrompt) Resume(dc *Context, result any) (TurnResult, error) {
	if err := p.Reprompt(dc, dc.Stack().Top()); err != nil {
		return TurnResult{}, err
	}
	return TurnResult{Status: StatusWaiting}, nil
}

// ChoicePrompt asks the user to pick from a closed option set. A reply
// matches on the exact title (case-insensitive) or its 1-based position.
type ChoicePrompt struct {
	promptCore
}

// NewChoicePrompt creates a choice prompt.
func NewChoicePrompt(id string) *ChoicePrompt {
	return &ChoicePrompt{promptCore: promptCore{id: id}}
}

// Begin sends the question with its options and suspends the turn.
func (p *ChoicePrompt) Begin(dc *Context, options any) (TurnResult, error) {
	opts, ok := options.(PromptOptions)
	if !ok || len(opts.Choices) == 0 {
		return TurnResult{}, fmt.Errorf("prompt %q: choice prompt needs at least one choice", p.id)
	}
	return p.begin(dc, options)
}

// Continue matches the reply against the option set.
func (p *ChoicePrompt) Continue(dc *Context) (TurnResult, error) {
	inst := dc.Stack().Top()
	opts, err := p.options(inst)
	if err != nil {
		return TurnResult{}, err
	}
	input := strings.TrimSpace(dc.Turn().Turn().Text)

	if found, ok := matchChoice(input, opts.Choices); ok {
		return dc.End(found)
	}
	if err := p.retry(dc, inst, len(dc.Turn().Activities())); err != nil {
		return TurnResult{}, err
	}
	return TurnResult{Status: StatusWaiting}, nil
}

// Resume re-asks; a prompt has no children to resume from.
func (p *ChoicePrompt) Resume(dc *Context, result any) (TurnResult, error) {
	if err := p.Reprompt(dc, dc.Stack().Top()); err != nil {
		return TurnResult{}, err
	}
	return TurnResult{Status: StatusWaiting}, nil
}

// matchChoice resolves input against a closed option set: exact
// case-insensitive title match first, then a 1-based numeric index.
func matchChoice(input string, choices []string) (FoundChoice, bool) {
	for i, choice := range choices {
		if strings.EqualFold(input, choice) {
			return FoundChoice{Value: choice, Index: i}, true
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
		return FoundChoice{Value: choices[n-1], Index: n - 1}, true
	}
	return FoundChoice{}, false
}

// DateTimePrompt asks for a date/time literal and resolves it to candidate
// resolutions; the caller picks the first.
type DateTimePrompt struct {
	promptCore
	validate DateValidator
}

// NewDateTimePrompt creates a date prompt. validate may be nil, in which
// case any parseable literal resolves.
func NewDateTimePrompt(id string, validate DateValidator) *DateTimePrompt {
	return &DateTimePrompt{promptCore: promptCore{id: id}, validate: validate}
}

// Begin sends the question and suspends the turn.
func (p *DateTimePrompt) Begin(dc *Context, options any) (TurnResult, error) {
	return p.begin(dc, options)
}

// Continue recognizes the literal and validates the resolutions.
func (p *DateTimePrompt) Continue(dc *Context) (TurnResult, error) {
	inst := dc.Stack().Top()
	resolutions := RecognizeDateTime(dc.Turn().Turn().Text)

	valid := len(resolutions) > 0
	respondedBefore := len(dc.Turn().Activities())
	if p.validate != nil {
		ok, err := p.validate(dc, resolutions)
		if err != nil {
			return TurnResult{}, err
		}
		valid = ok
	}
	if !valid {
		if err := p.retry(dc, inst, respondedBefore); err != nil {
			return TurnResult{}, err
		}
		return TurnResult{Status: StatusWaiting}, nil
	}
	return dc.End(resolutions)
}

// Resume re-asks; a prompt has no children to resume from.
func (p *DateTimePrompt) Resume(dc *Context, result any) (TurnResult, error) {
	if err := p.Reprompt(dc, dc.Stack().Top()); err != nil {
		return TurnResult{}, err
	}
	return TurnResult{Status: StatusWaiting}, nil
}
