// Package dialog implements the turn-based dialog engine: an arena-style
// stack of dialog instances persisted between invocations, step-sequence
// (waterfall) dialogs, and prompt-validate units that suspend the turn until
// the next utterance arrives.
//
// The engine is stateless across turns. Each turn reconstructs the stack
// from the conversation's persisted state, routes the utterance to the
// suspended unit at the top of the stack, and runs synchronously until the
// next suspension or until the stack drains. Dialog nesting is bounded by
// the registered dialog graph, and cyclic restarts (a dialog replacing
// itself) are tail transitions on the instance stack, never recursion.
package dialog
