package ai

// ChatRole identifies the author of a chat message sent to the model.
type ChatRole string

const (
	// RoleSystem carries instructions and retrieved context for the model.
	RoleSystem ChatRole = "system"
	// RoleUser is the human side of the conversation.
	RoleUser ChatRole = "user"
	// RoleAssistant is the model side of the conversation.
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in the history handed to a ChatStreamer.
type ChatMessage struct {
	Role    ChatRole
	Content string
}
