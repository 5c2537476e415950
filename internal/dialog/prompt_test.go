package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk/pkg/domain"
)

func askOnce(promptID string, opts PromptOptions) *Waterfall {
	return NewWaterfall("ask",
		func(sc *StepContext) (Result, error) {
			return sc.Prompt(promptID, opts)
		},
		func(sc *StepContext) (Result, error) {
			return sc.End(sc.Result())
		},
	)
}

func TestTextPromptRetriesUntilValid(t *testing.T) {
	validate := func(dc *Context, value string) (bool, error) {
		return value == "go", nil
	}
	h := newHarness(t,
		askOnce("text", PromptOptions{Prompt: "Say go.", RetryPrompt: "Not that, say go."}),
		NewTextPrompt("text", validate),
	)

	_, activities := h.begin("ask", nil)
	assert.Equal(t, []string{"Say go."}, texts(activities))

	// The retry loop is unbounded; every failure re-asks.
	for i := 0; i < 3; i++ {
		tr, activities := h.send("nope")
		assert.Equal(t, StatusWaiting, tr.Status)
		assert.Equal(t, []string{"Not that, say go."}, texts(activities))
	}

	tr, _ := h.send("go")
	require.Equal(t, StatusComplete, tr.Status)
	assert.Equal(t, "go", tr.Result)
}

func TestTextPromptEmptyInputReasksWithoutValidator(t *testing.T) {
	h := newHarness(t,
		askOnce("text", PromptOptions{Prompt: "Name?"}),
		NewTextPrompt("text", nil),
	)
	h.begin("ask", nil)

	tr, activities := h.send("   ")
	assert.Equal(t, StatusWaiting, tr.Status)
	assert.Equal(t, []string{"Name?"}, texts(activities), "without a retry prompt the original question is re-sent")

	tr, _ = h.send("  Jan  ")
	require.Equal(t, StatusComplete, tr.Status)
	assert.Equal(t, "Jan", tr.Result, "resolved text is trimmed")
}

func TestTextPromptValidatorMessageSuppressesRetry(t *testing.T) {
	validate := func(dc *Context, value string) (bool, error) {
		dc.Turn().Send("Please type in correct name.")
		return false, nil
	}
	h := newHarness(t,
		askOnce("text", PromptOptions{Prompt: "Name?", RetryPrompt: "Try again."}),
		NewTextPrompt("text", validate),
	)
	h.begin("ask", nil)

	_, activities := h.send("bad")
	assert.Equal(t, []string{"Please type in correct name."}, texts(activities),
		"a validator that already answered must not trigger the generic retry")
}

func TestChoicePromptResolvesTitleAndIndex(t *testing.T) {
	opts := PromptOptions{
		Prompt:      "Pick one:",
		RetryPrompt: "No such option.",
		Choices:     []string{"Red", "Green", "Blue"},
	}
	h := newHarness(t, askOnce("choice", opts), NewChoicePrompt("choice"))

	_, activities := h.begin("ask", nil)
	require.Len(t, activities, 1)
	assert.Equal(t, "Pick one:", activities[0].Text)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, activities[0].SuggestedActions)

	tr, activities := h.send("purple")
	assert.Equal(t, StatusWaiting, tr.Status)
	assert.Equal(t, []string{"No such option."}, texts(activities))

	tr, _ = h.send("2")
	require.Equal(t, StatusComplete, tr.Status)
	assert.Equal(t, FoundChoice{Value: "Green", Index: 1}, tr.Result, "a 1-based position resolves the titled option")
}

func TestChoicePromptBeginRequiresChoices(t *testing.T) {
	h := newHarness(t,
		askOnce("choice", PromptOptions{Prompt: "Pick one:"}),
		NewChoicePrompt("choice"),
	)

	dc, _ := h.context("")
	_, err := dc.Begin("ask", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one choice")
}

func TestMatchChoice(t *testing.T) {
	choices := []string{"Buy flight ticket", "Show all reservations"}

	tests := []struct {
		input string
		want  FoundChoice
		ok    bool
	}{
		{"Buy flight ticket", FoundChoice{Value: "Buy flight ticket", Index: 0}, true},
		{"buy FLIGHT ticket", FoundChoice{Value: "Buy flight ticket", Index: 0}, true},
		{"1", FoundChoice{Value: "Buy flight ticket", Index: 0}, true},
		{"2", FoundChoice{Value: "Show all reservations", Index: 1}, true},
		{"0", FoundChoice{}, false},
		{"3", FoundChoice{}, false},
		{"buy", FoundChoice{}, false},
		{"", FoundChoice{}, false},
	}
	for _, tt := range tests {
		got, ok := matchChoice(tt.input, choices)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestDateTimePromptResolvesAndRetries(t *testing.T) {
	h := newHarness(t,
		askOnce("date", PromptOptions{Prompt: "When?", RetryPrompt: "That is not a date."}),
		NewDateTimePrompt("date", nil),
	)
	h.begin("ask", nil)

	tr, activities := h.send("not a date at all")
	assert.Equal(t, StatusWaiting, tr.Status)
	assert.Equal(t, []string{"That is not a date."}, texts(activities))

	tr, _ = h.send("2026-09-15")
	require.Equal(t, StatusComplete, tr.Status)
	resolutions, ok := tr.Result.([]DateTimeResolution)
	require.True(t, ok, "got %T", tr.Result)
	require.NotEmpty(t, resolutions)
	assert.Equal(t, "2026-09-15", resolutions[0].Value)
}

func TestPromptRepromptResendsPendingQuestion(t *testing.T) {
	opts := PromptOptions{
		Prompt:  "Pick one:",
		Choices: []string{"Red", "Green"},
		Attachments: []domain.Attachment{
			{ContentType: "text/plain", Title: "Legend"},
		},
	}
	h := newHarness(t, askOnce("choice", opts), NewChoicePrompt("choice"))
	h.begin("ask", nil)

	// A keyword interruption answers first, then re-asks.
	dc, conv := h.context("help")
	dc.Turn().Send("Some help text.")
	require.NoError(t, dc.Reprompt())
	h.flush(dc, conv)

	activities := dc.Turn().Activities()
	require.Len(t, activities, 3)
	assert.Equal(t, "Some help text.", activities[0].Text)
	require.Len(t, activities[1].Attachments, 1)
	assert.Equal(t, "Legend", activities[1].Attachments[0].Title)
	assert.Equal(t, "Pick one:", activities[2].Text)
	assert.Equal(t, []string{"Red", "Green"}, activities[2].SuggestedActions)

	// The prompt is still live after the interruption.
	tr, _ := h.send("Red")
	require.Equal(t, StatusComplete, tr.Status)
}

func TestRepromptOnEmptyStackIsNoop(t *testing.T) {
	h := newHarness(t)
	dc, _ := h.context("help")
	require.NoError(t, dc.Reprompt())
	assert.Empty(t, dc.Turn().Activities())
}
