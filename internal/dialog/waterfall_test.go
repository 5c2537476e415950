package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaterfallPromptsAndCollects(t *testing.T) {
	wf := NewWaterfall("intake",
		func(sc *StepContext) (Result, error) {
			return sc.Prompt("text", PromptOptions{Prompt: "First?"})
		},
		func(sc *StepContext) (Result, error) {
			first, err := sc.Text()
			require.NoError(t, err)
			sc.SetValue("first", first)
			return sc.Prompt("text", PromptOptions{Prompt: "Second?"})
		},
		func(sc *StepContext) (Result, error) {
			second, err := sc.Text()
			require.NoError(t, err)
			return sc.End(sc.inst.State[stateValues].(map[string]any)["first"].(string) + "+" + second)
		},
	)
	h := newHarness(t, wf, NewTextPrompt("text", nil))

	tr, activities := h.begin("intake", nil)
	assert.Equal(t, StatusWaiting, tr.Status)
	assert.Equal(t, []string{"First?"}, texts(activities))

	tr, activities = h.send("alpha")
	assert.Equal(t, StatusWaiting, tr.Status)
	assert.Equal(t, []string{"Second?"}, texts(activities))

	tr, _ = h.send("beta")
	require.Equal(t, StatusComplete, tr.Status)
	assert.Equal(t, "alpha+beta", tr.Result)
}

func TestWaterfallNextSkipsPromptInSameTurn(t *testing.T) {
	wf := NewWaterfall("skip",
		func(sc *StepContext) (Result, error) {
			return sc.Next("carried")
		},
		func(sc *StepContext) (Result, error) {
			return sc.End(sc.Result())
		},
	)
	h := newHarness(t, wf)

	tr, _ := h.begin("skip", nil)
	require.Equal(t, StatusComplete, tr.Status)
	assert.Equal(t, "carried", tr.Result, "Next must hand its value to the following step in the same turn")
}

func TestWaterfallReplaceRestartsFromStepZero(t *testing.T) {
	wf := NewWaterfall("loop",
		func(sc *StepContext) (Result, error) {
			sc.SetValue("seen", sc.IntValue("seen")+1)
			return sc.Prompt("text", PromptOptions{Prompt: "Go again?"})
		},
		func(sc *StepContext) (Result, error) {
			reply, err := sc.Text()
			require.NoError(t, err)
			if reply == "again" {
				return sc.Replace(nil)
			}
			return sc.End(sc.IntValue("seen"))
		},
	)
	h := newHarness(t, wf, NewTextPrompt("text", nil))

	_, activities := h.begin("loop", nil)
	assert.Equal(t, []string{"Go again?"}, texts(activities))

	tr, activities := h.send("again")
	assert.Equal(t, StatusWaiting, tr.Status)
	assert.Equal(t, []string{"Go again?"}, texts(activities), "replace must re-run step zero")

	// Replace discards the instance's values, so the counter restarts at 1.
	tr, _ = h.send("done")
	require.Equal(t, StatusComplete, tr.Status)
	assert.Equal(t, 1, tr.Result)
}

func TestWaterfallBeginChildAndResume(t *testing.T) {
	child := NewWaterfall("child",
		func(sc *StepContext) (Result, error) {
			return sc.Prompt("text", PromptOptions{Prompt: "Child asks?"})
		},
		func(sc *StepContext) (Result, error) {
			reply, err := sc.Text()
			require.NoError(t, err)
			return sc.End("child:" + reply)
		},
	)
	parent := NewWaterfall("parent",
		func(sc *StepContext) (Result, error) {
			return sc.Begin("child", nil)
		},
		func(sc *StepContext) (Result, error) {
			return sc.End(sc.Result())
		},
	)
	h := newHarness(t, parent, child, NewTextPrompt("text", nil))

	tr, activities := h.begin("parent", nil)
	assert.Equal(t, StatusWaiting, tr.Status)
	assert.Equal(t, []string{"Child asks?"}, texts(activities))

	tr, _ = h.send("value")
	require.Equal(t, StatusComplete, tr.Status)
	assert.Equal(t, "child:value", tr.Result, "the child's end result must reach the parent's next step")
}

func TestWaterfallWithoutStepsFails(t *testing.T) {
	h := newHarness(t, NewWaterfall("empty"))

	dc, _ := h.context("")
	_, err := dc.Begin("empty", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no steps")
}

func TestWaterfallStepErrorCarriesDialogAndStep(t *testing.T) {
	wf := NewWaterfall("broken",
		func(sc *StepContext) (Result, error) {
			_, err := sc.Choice()
			return Result{}, err
		},
	)
	h := newHarness(t, wf)

	dc, _ := h.context("")
	_, err := dc.Begin("broken", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `dialog "broken" step 0`)
}
