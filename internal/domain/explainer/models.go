package explainer

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Gateway sends one chat-completion request and returns the first choice's
// content. Implementations map upstream failures onto ErrRateLimited,
// ErrQuotaExhausted and ErrUnavailable.
type Gateway interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
