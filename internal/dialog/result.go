package dialog

// resultKind tags the shape of a step result. Results are built only
// through the StepContext constructors, so a wrong-shape result cannot be
// assembled by a step.
type resultKind int

const (
	resultInvalid resultKind = iota
	resultPrompt
	resultNext
	resultBegin
	resultReplace
	resultEnd
)

// Result is the tagged outcome of one waterfall step: activate a prompt,
// continue synchronously, push a child dialog, replace this dialog from
// step zero, or end with a value.
type Result struct {
	kind       resultKind
	promptID   string
	promptOpts PromptOptions
	dialogID   string
	options    any
	value      any
}
