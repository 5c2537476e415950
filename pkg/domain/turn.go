package domain

// EventType classifies an incoming turn.
type EventType string

const (
	// EventMessage is a regular user utterance.
	EventMessage EventType = "message"
	// EventConversationStarted signals first contact for a conversation.
	EventConversationStarted EventType = "conversationStarted"
)

// Turn is one incoming request/response invocation: a single utterance (or
// lifecycle event) for a single conversation. The engine consumes exactly one
// Turn per invocation and never opens connections itself.
type Turn struct {
	ConversationID string    `json:"conversation_id"`
	Text           string    `json:"text"`
	Type           EventType `json:"type"`
}

// Activity is one outbound message produced while processing a turn.
// SuggestedActions carries the option titles of an active choice prompt;
// transports decide how to present them.
type Activity struct {
	Text             string       `json:"text,omitempty"`
	SuggestedActions []string     `json:"suggested_actions,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty"`
}

// Attachment is a rendered card payload. The engine only ever supplies field
// values to the rendering boundary; it never handles raw markup.
type Attachment struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title,omitempty"`
	Facts       []Fact `json:"facts,omitempty"`
	Body        string `json:"body,omitempty"`
}

// Fact is a single label/value pair on a card.
type Fact struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// TurnOutput is everything a processed turn hands back to the transport:
// the outbound activities and whether the conversation has ended.
type TurnOutput struct {
	Activities []Activity `json:"activities"`
	Ended      bool       `json:"ended"`
}
