package models

// ChatRequest is the payload coming from the frontend into /api/ai/chat.
type ChatRequest struct {
	ConversationID string `json:"conversation_id"` // unique conversation identifier
	Text           string `json:"text"`            // user's message
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	ConversationID string `json:"conversation_id"`
	Intent         string `json:"intent"`             // "booking", "question" or "general"
	ResponseText   string `json:"response"`           // natural-language reply
	BookingID      string `json:"booking_id,omitempty"` // set once a booking is persisted
}

// Message is a single conversation history entry.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ConfirmOutcome classifies a user reply while a booking summary awaits
// confirmation.
type ConfirmOutcome int

const (
	ConfirmAccepted ConfirmOutcome = iota
	ConfirmRejected
	ConfirmUnrecognized
)
