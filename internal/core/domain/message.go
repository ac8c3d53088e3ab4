package domain

// Role identifies the author of a conversation message.
type Role string

// Message roles.
const (
	// RoleUser marks a message written by the person asking questions.
	RoleUser Role = "user"

	// RoleAssistant marks a message generated by the model.
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Message is one turn in a conversation.
// Messages are append-only and scoped to a session identifier; insertion
// order equals chronological turn order.
type Message struct {
	// Role is who authored the message.
	Role Role

	// Content is the message text.
	Content string
}
