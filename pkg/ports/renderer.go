package ports

import "flightdesk/pkg/domain"

// Renderer turns a template id plus field values into a displayable card.
// Implementations own the markup; the engine only supplies values.
type Renderer interface {
	Render(templateID string, fields map[string]string) (domain.Attachment, error)
}
