package flightdesk

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"flightdesk/pkg/domain"
)

// ContentRenderer transforms card markdown before output. It decouples the
// chat loop from any terminal rendering library.
type ContentRenderer func(string) (string, error)

// AttachmentFormatter flattens an attachment into markdown for display.
type AttachmentFormatter func(domain.Attachment) string

// Runner drives an interactive chat over provided IO. This keeps the loop
// testable and reusable across frontends.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Renderer ContentRenderer
	Format   AttachmentFormatter
}

// Run opens the conversation and loops until it ends or input is
// exhausted.
func (r *Runner) Run(ctx context.Context, b *Bot, conversationID string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	output, err := b.Start(ctx, conversationID)
	if err != nil {
		return err
	}
	r.print(output)

	for !output.Ended {
		fmt.Fprint(r.Output, "> ")
		line, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		output, err = b.OnTurn(ctx, domain.Turn{
			ConversationID: conversationID,
			Text:           strings.TrimSpace(line),
			Type:           domain.EventMessage,
		})
		if err != nil {
			return err
		}
		r.print(output)
	}
	return nil
}

func (r *Runner) print(output domain.TurnOutput) {
	for _, activity := range output.Activities {
		for _, att := range activity.Attachments {
			r.printAttachment(att)
		}
		if activity.Text != "" {
			fmt.Fprintln(r.Output, activity.Text)
		}
		for i, action := range activity.SuggestedActions {
			fmt.Fprintf(r.Output, "  %d. %s\n", i+1, action)
		}
	}
}

func (r *Runner) printAttachment(att domain.Attachment) {
	markdown := ""
	if r.Format != nil {
		markdown = r.Format(att)
	} else {
		var sb strings.Builder
		if att.Title != "" {
			sb.WriteString(att.Title + "\n")
		}
		if att.Body != "" {
			sb.WriteString(att.Body + "\n")
		}
		for _, fact := range att.Facts {
			fmt.Fprintf(&sb, "%s: %s\n", fact.Title, fact.Value)
		}
		markdown = sb.String()
	}
	if r.Renderer != nil {
		if rendered, err := r.Renderer(markdown); err == nil {
			markdown = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimRight(markdown, "\n"))
}
