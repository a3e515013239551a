// Package llm sends chat-completion requests to a language model provider and
// returns the raw text of the first answer.
package llm

import (
	"context"
	"errors"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrNoAPIKey is returned when a client is built without credentials.
	ErrNoAPIKey = errors.New("llm: API key is required")
)

// Message is one turn of a chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single chat-completion call.
type Request struct {
	Model    string
	Messages []Message
	// JSON asks the provider for a JSON object response.
	JSON bool
}

// Client is implemented by every provider. An answer without text is not an
// error: Complete returns "" and a nil error.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
