package dialog

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"flightdesk/internal/state"
	"flightdesk/pkg/domain"
)

// instance state key holding a waterfall's cross-step values.
const stateValues = "values"

// Step is one entry of a step sequence. It receives the previous step's
// result through the StepContext and returns a tagged Result built with the
// StepContext constructors.
type Step func(sc *StepContext) (Result, error)

// Waterfall is an ordered step sequence. Step indexes only ever move
// forward by one, reset to zero on Replace, or disappear with the instance
// on End.
type Waterfall struct {
	id    string
	steps []Step
}

// NewWaterfall builds a step-sequence dialog.
func NewWaterfall(id string, steps ...Step) *Waterfall {
	return &Waterfall{id: id, steps: steps}
}

// ID returns the dialog id.
func (w *Waterfall) ID() string { return w.id }

// Begin runs the first step of a freshly pushed instance. options becomes
// the first step's result value.
func (w *Waterfall) Begin(dc *Context, options any) (TurnResult, error) {
	if len(w.steps) == 0 {
		return TurnResult{}, fmt.Errorf("waterfall %q has no steps", w.id)
	}
	inst := dc.Stack().Top()
	inst.StepIndex = 0
	inst.State[stateValues] = map[string]any{}
	return w.run(dc, inst, options)
}

// Continue delivers a raw utterance to the current step. In normal
// operation a prompt instance sits above the waterfall and receives the
// input first; a direct Continue resumes with the raw text.
func (w *Waterfall) Continue(dc *Context) (TurnResult, error) {
	return w.Resume(dc, dc.Turn().Turn().Text)
}

// Resume advances to the next step, feeding it the ended child's (or
// resolved prompt's) result.
func (w *Waterfall) Resume(dc *Context, result any) (TurnResult, error) {
	inst := dc.Stack().Top()
	inst.StepIndex++
	return w.run(dc, inst, result)
}

// run executes steps starting at the instance's current index until a step
// suspends, defers to a child, replaces, or ends the sequence. Continue
// results loop here instead of recursing so that conditional skips cost
// nothing on the call stack.
func (w *Waterfall) run(dc *Context, inst *Instance, prev any) (TurnResult, error) {
	for {
		if inst.StepIndex < 0 {
			return TurnResult{}, fmt.Errorf("waterfall %q: step index %d", w.id, inst.StepIndex)
		}
		if inst.StepIndex >= len(w.steps) {
			// Walked off the end of the sequence.
			return dc.End(prev)
		}

		sc := &StepContext{dc: dc, dialog: w, inst: inst, result: prev}
		res, err := w.steps[inst.StepIndex](sc)
		if err != nil {
			return TurnResult{}, fmt.Errorf("dialog %q step %d: %w", w.id, inst.StepIndex, err)
		}

		switch res.kind {
		case resultPrompt:
			return dc.Begin(res.promptID, res.promptOpts)
		case resultNext:
			inst.StepIndex++
			prev = res.value
		case resultBegin:
			return dc.Begin(res.dialogID, res.options)
		case resultReplace:
			return dc.Replace(w.id, res.options)
		case resultEnd:
			return dc.End(res.value)
		default:
			return TurnResult{}, fmt.Errorf("dialog %q step %d returned an invalid result", w.id, inst.StepIndex)
		}
	}
}

// StepContext is the view a step gets of the running turn: the previous
// step's result, the instance's cross-step values, and the constructors for
// every legal step outcome.
type StepContext struct {
	dc     *Context
	dialog *Waterfall
	inst   *Instance
	result any
}

// Context returns the ambient context of the turn.
func (sc *StepContext) Context() context.Context { return sc.dc.Turn().Context() }

// Conversation returns the per-turn state view.
func (sc *StepContext) Conversation() *state.Conversation { return sc.dc.Turn().Conversation() }

// Send queues a plain text activity.
func (sc *StepContext) Send(text string) { sc.dc.Turn().Send(text) }

// SendActivity queues a full activity.
func (sc *StepContext) SendActivity(a domain.Activity) { sc.dc.Turn().SendActivity(a) }

// Prompt suspends the sequence on the named prompt-validate unit. The
// sequence resumes at the next step once the prompt resolves a value.
func (sc *StepContext) Prompt(promptID string, opts PromptOptions) (Result, error) {
	return Result{kind: resultPrompt, promptID: promptID, promptOpts: opts}, nil
}

// Next advances to the following step in the same turn, passing value as
// its step result. Used to conditionally skip a prompt.
func (sc *StepContext) Next(value any) (Result, error) {
	return Result{kind: resultNext, value: value}, nil
}

// Begin pauses this sequence and defers to a child dialog. The sequence
// resumes at the next step with the child's end result.
func (sc *StepContext) Begin(dialogID string, options any) (Result, error) {
	return Result{kind: resultBegin, dialogID: dialogID, options: options}, nil
}

// Replace discards this instance's progress and restarts the same dialog
// from step zero with fresh local state.
func (sc *StepContext) Replace(options any) (Result, error) {
	return Result{kind: resultReplace, options: options}, nil
}

// End pops this instance, returning value to the parent dialog (or to the
// turn router when this was the root).
func (sc *StepContext) End(value any) (Result, error) {
	return Result{kind: resultEnd, value: value}, nil
}

// Result returns the previous step's raw result.
func (sc *StepContext) Result() any { return sc.result }

// Text returns the previous step's result as resolved by a text prompt.
func (sc *StepContext) Text() (string, error) {
	s, ok := sc.result.(string)
	if !ok {
		return "", fmt.Errorf("dialog %q step %d: expected text result, got %T", sc.dialog.id, sc.inst.StepIndex, sc.result)
	}
	return s, nil
}

// Choice returns the previous step's result as resolved by a choice prompt.
func (sc *StepContext) Choice() (FoundChoice, error) {
	c, ok := sc.result.(FoundChoice)
	if !ok {
		return FoundChoice{}, fmt.Errorf("dialog %q step %d: expected choice result, got %T", sc.dialog.id, sc.inst.StepIndex, sc.result)
	}
	return c, nil
}

// Dates returns the previous step's result as resolved by a date prompt.
func (sc *StepContext) Dates() ([]DateTimeResolution, error) {
	d, ok := sc.result.([]DateTimeResolution)
	if !ok {
		return nil, fmt.Errorf("dialog %q step %d: expected date result, got %T", sc.dialog.id, sc.inst.StepIndex, sc.result)
	}
	return d, nil
}

// SetValue stores a cross-step value on the instance. Values survive
// suspensions and therefore JSON round-trips; keep them to plain types.
func (sc *StepContext) SetValue(key string, value any) {
	values, _ := sc.inst.State[stateValues].(map[string]any)
	if values == nil {
		values = map[string]any{}
		sc.inst.State[stateValues] = values
	}
	values[key] = value
}

// IntValue reads a cross-step value as an int, tolerating the float64 shape
// JSON round-trips produce. Missing keys read as zero.
func (sc *StepContext) IntValue(key string) int {
	values, _ := sc.inst.State[stateValues].(map[string]any)
	switch v := values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// decodeState rehydrates a JSON-round-tripped instance state entry into a
// typed struct.
func decodeState(raw any, target any) error {
	return mapstructure.Decode(raw, target)
}
