package dialog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"flightdesk/internal/state"
	"flightdesk/pkg/adapters/memory"
	"flightdesk/pkg/domain"
)

// harness drives a dialog set turn by turn the way the router does: every
// turn reconstructs the stack from the store and flushes it back, so the
// instance state really round-trips through JSON between turns.
type harness struct {
	t     *testing.T
	set   *Set
	store *memory.Store
}

func newHarness(t *testing.T, dialogs ...Dialog) *harness {
	t.Helper()
	set := NewSet()
	for _, d := range dialogs {
		require.NoError(t, set.Add(d))
	}
	return &harness{t: t, set: set, store: memory.NewStore()}
}

func (h *harness) context(text string) (*Context, *state.Conversation) {
	h.t.Helper()
	turn := domain.Turn{ConversationID: "conv-1", Text: text, Type: domain.EventMessage}
	conv := state.NewConversation("conv-1", h.store)
	dc, err := h.set.CreateContext(context.Background(), turn, conv)
	require.NoError(h.t, err)
	return dc, conv
}

func (h *harness) flush(dc *Context, conv *state.Conversation) {
	h.t.Helper()
	require.NoError(h.t, dc.SaveState())
	require.NoError(h.t, conv.Flush(context.Background()))
}

// begin starts a dialog as the root of a fresh turn.
func (h *harness) begin(dialogID string, options any) (TurnResult, []domain.Activity) {
	h.t.Helper()
	dc, conv := h.context("")
	tr, err := dc.Begin(dialogID, options)
	require.NoError(h.t, err)
	h.flush(dc, conv)
	return tr, dc.Turn().Activities()
}

// send delivers one utterance to the persisted stack.
func (h *harness) send(text string) (TurnResult, []domain.Activity) {
	h.t.Helper()
	dc, conv := h.context(text)
	tr, err := dc.Continue()
	require.NoError(h.t, err)
	h.flush(dc, conv)
	return tr, dc.Turn().Activities()
}

// sendErr delivers one utterance and returns the turn error unasserted.
func (h *harness) sendErr(text string) (TurnResult, error) {
	h.t.Helper()
	dc, _ := h.context(text)
	return dc.Continue()
}

func texts(activities []domain.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		if a.Text != "" {
			out = append(out, a.Text)
		}
	}
	return out
}
