package dialog

import (
	"context"
	"fmt"
	"log/slog"

	"flightdesk/internal/state"
	"flightdesk/pkg/domain"
)

// StackSlot is the conversation state slot holding the dialog stack.
const StackSlot = "dialogStack"

// Status classifies the outcome of driving the stack for one turn.
type Status string

const (
	// StatusEmpty means there was no active dialog to receive the turn.
	StatusEmpty Status = "empty"
	// StatusWaiting means a prompt suspended the turn; the conversation
	// resumes on the next utterance.
	StatusWaiting Status = "waiting"
	// StatusComplete means the stack drained and produced a result.
	StatusComplete Status = "complete"
)

// TurnResult is what a stack operation hands back to the router.
type TurnResult struct {
	Status Status
	Result any
}

// TurnContext carries one incoming turn and collects the outbound
// activities produced while processing it.
type TurnContext struct {
	ctx      context.Context
	turn     domain.Turn
	conv     *state.Conversation
	outbound []domain.Activity
}

// NewTurnContext builds the per-turn context.
func NewTurnContext(ctx context.Context, turn domain.Turn, conv *state.Conversation) *TurnContext {
	return &TurnContext{ctx: ctx, turn: turn, conv: conv}
}

// Context returns the ambient context of the turn.
func (tc *TurnContext) Context() context.Context { return tc.ctx }

// Turn returns the incoming turn record.
func (tc *TurnContext) Turn() domain.Turn { return tc.turn }

// Conversation returns the per-turn state view.
func (tc *TurnContext) Conversation() *state.Conversation { return tc.conv }

// Send queues a plain text activity.
func (tc *TurnContext) Send(text string) {
	tc.outbound = append(tc.outbound, domain.Activity{Text: text})
}

// SendActivity queues a full activity.
func (tc *TurnContext) SendActivity(a domain.Activity) {
	tc.outbound = append(tc.outbound, a)
}

// Activities returns everything queued so far, in send order.
func (tc *TurnContext) Activities() []domain.Activity { return tc.outbound }

// Responded reports whether anything has been queued.
func (tc *TurnContext) Responded() bool { return len(tc.outbound) > 0 }

// Context drives the dialog stack for one turn.
type Context struct {
	set    *Set
	tc     *TurnContext
	stack  *Stack
	logger *slog.Logger
}

// Turn returns the turn context.
func (dc *Context) Turn() *TurnContext { return dc.tc }

// Stack returns the live dialog stack.
func (dc *Context) Stack() *Stack { return dc.stack }

// Begin pushes a fresh instance of the dialog and starts it.
func (dc *Context) Begin(dialogID string, options any) (TurnResult, error) {
	d, ok := dc.set.Find(dialogID)
	if !ok {
		return TurnResult{}, fmt.Errorf("begin %q: %w", dialogID, domain.ErrDialogNotFound)
	}
	dc.stack.Push(&Instance{
		DialogID:  dialogID,
		StepIndex: StepNotStarted,
		State:     make(map[string]any),
	})
	dc.logger.Debug("dialog begin", "dialog", dialogID, "depth", dc.stack.Depth())
	return d.Begin(dc, options)
}

// Continue routes the turn's utterance to the active instance. With an
// empty stack it reports StatusEmpty and does nothing.
func (dc *Context) Continue() (TurnResult, error) {
	top := dc.stack.Top()
	if top == nil {
		return TurnResult{Status: StatusEmpty}, nil
	}
	d, ok := dc.set.Find(top.DialogID)
	if !ok {
		return TurnResult{}, fmt.Errorf("continue %q: %w", top.DialogID, domain.ErrDialogNotFound)
	}
	return d.Continue(dc)
}

// End pops the active instance and delivers its result to the parent. When
// the stack drains the result is surfaced to the router.
func (dc *Context) End(result any) (TurnResult, error) {
	ended := dc.stack.Pop()
	if ended != nil {
		dc.logger.Debug("dialog end", "dialog", ended.DialogID, "depth", dc.stack.Depth())
	}
	top := dc.stack.Top()
	if top == nil {
		return TurnResult{Status: StatusComplete, Result: result}, nil
	}
	d, ok := dc.set.Find(top.DialogID)
	if !ok {
		return TurnResult{}, fmt.Errorf("resume %q: %w", top.DialogID, domain.ErrDialogNotFound)
	}
	return d.Resume(dc, result)
}

// Replace discards the active instance and starts a fresh instance of the
// given dialog in its place. This is a tail transition: the parent chain is
// untouched and no call-stack growth accumulates across restarts.
func (dc *Context) Replace(dialogID string, options any) (TurnResult, error) {
	dc.stack.Pop()
	return dc.Begin(dialogID, options)
}

// CancelAll empties the stack unconditionally.
func (dc *Context) CancelAll() {
	dc.logger.Debug("dialog cancel all", "depth", dc.stack.Depth())
	dc.stack.Clear()
}

// Reprompt re-sends the active prompt without consuming an answer. It is a
// no-op when nothing on the stack can reprompt.
func (dc *Context) Reprompt() error {
	top := dc.stack.Top()
	if top == nil {
		return nil
	}
	d, ok := dc.set.Find(top.DialogID)
	if !ok {
		return fmt.Errorf("reprompt %q: %w", top.DialogID, domain.ErrDialogNotFound)
	}
	if rp, ok := d.(Reprompter); ok {
		return rp.Reprompt(dc, top)
	}
	return nil
}

// SaveState stages the stack into the conversation's state. It must be
// called before the turn's flush.
func (dc *Context) SaveState() error {
	return state.Set(dc.tc.conv, StackSlot, dc.stack)
}
