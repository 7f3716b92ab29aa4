package models

import "time"

// Sender identifies who produced a chat turn
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatTurn is one message in the chat log
type ChatTurn struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// IsUser reports whether the turn was typed by the user
func (t ChatTurn) IsUser() bool {
	return t.Sender == SenderUser
}

// ChatRequest is the body sent to the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body returned by the chat endpoint.
// Older deployments answer with generated_text instead of reply.
type ChatResponse struct {
	Reply         string `json:"reply,omitempty"`
	GeneratedText string `json:"generated_text,omitempty"`
}

// Text returns the reply, preferring the reply field
func (r ChatResponse) Text() string {
	if r.Reply != "" {
		return r.Reply
	}
	return r.GeneratedText
}
