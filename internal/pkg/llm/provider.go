package llm

import "context"

// Provider is implemented by every completion backend.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

type Request struct {
	System   string
	Messages []Message

	// JSON asks the backend for a JSON object response. Array-shaped answers
	// must leave it unset and rely on ExtractArray.
	JSON bool

	MaxTokens   int
	Temperature float64
}

type Response struct {
	Text  string
	Model string
}

// UserPrompt builds a single-turn request.
func UserPrompt(prompt string) []Message {
	return []Message{{Role: RoleUser, Content: prompt}}
}
