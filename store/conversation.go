package store

// Conversation is a persisted chat thread owned by a single user.
type Conversation struct {
	ID        int32
	UID       string
	UserID    int32
	Title     string
	CreatedTs int64
	UpdatedTs int64

	// LastMessage is a short preview of the most recent message. Populated
	// only by list queries; empty otherwise.
	LastMessage string
}

type FindConversation struct {
	ID     *int32
	UID    *string
	UserID *int32
}

type UpdateConversation struct {
	ID        int32
	Title     *string
	UpdatedTs *int64
}

type DeleteConversation struct {
	ID     int32
	UserID int32
}

// MessageRole distinguishes who authored a stored message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is a single turn inside a conversation. Content may embed inline
// image markers of the form [[image:<uploadUrl>|<fileName>]].
type Message struct {
	ID             int32
	UID            string
	ConversationID int32
	Role           MessageRole
	Content        string
	CreatedTs      int64
}

type FindMessage struct {
	ID             *int32
	ConversationID *int32
	// Limit caps the number of rows; combined with Descending it is used to
	// fetch the most recent context window.
	Limit      *int
	Descending bool
}

type DeleteMessage struct {
	ID             *int32
	ConversationID *int32
}
