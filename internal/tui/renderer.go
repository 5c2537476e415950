// Package tui renders chat output for interactive terminals.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"flightdesk/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour. It
// auto-detects light/dark backgrounds.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// AttachmentMarkdown flattens a card attachment into markdown for terminal
// display.
func AttachmentMarkdown(att domain.Attachment) string {
	var b strings.Builder
	if att.Title != "" {
		fmt.Fprintf(&b, "## %s\n\n", att.Title)
	}
	if att.Body != "" {
		b.WriteString(att.Body)
		b.WriteString("\n\n")
	}
	for _, fact := range att.Facts {
		fmt.Fprintf(&b, "- **%s**: %s\n", fact.Title, fact.Value)
	}
	return b.String()
}
