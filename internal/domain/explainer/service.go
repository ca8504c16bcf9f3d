package explainer

import (
	"context"
	"fmt"
	"strings"
)

const DefaultMaxMessages = 40

type Service struct {
	gateway     Gateway
	maxMessages int
}

func NewService(gateway Gateway, maxMessages int) *Service {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &Service{gateway: gateway, maxMessages: maxMessages}
}

// Explain asks the gateway for a beginner-level explanation of summary.
func (s *Service) Explain(ctx context.Context, summary string) (string, error) {
	content, err := s.gateway.Complete(ctx, []Message{
		{Role: RoleSystem, Content: explainPrompt},
		{Role: RoleUser, Content: explainRequestPrefix + summary},
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return explainFallback, nil
	}
	return content, nil
}

// Chat passes the running conversation through to the gateway and returns
// the assistant's reply.
func (s *Service) Chat(ctx context.Context, messages []Message) (string, error) {
	if err := s.ValidateConversation(messages); err != nil {
		return "", err
	}
	req := make([]Message, 0, len(messages)+1)
	req = append(req, Message{Role: RoleSystem, Content: chatPrompt})
	req = append(req, messages...)

	content, err := s.gateway.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return chatFallback, nil
	}
	return content, nil
}

func (s *Service) ValidateConversation(messages []Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("%w: messages are required", ErrInvalidConversation)
	}
	if len(messages) > s.maxMessages {
		return fmt.Errorf("%w: at most %d messages allowed", ErrInvalidConversation, s.maxMessages)
	}
	for i, msg := range messages {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			return fmt.Errorf("%w: message %d has unsupported role %q", ErrInvalidConversation, i, msg.Role)
		}
		if strings.TrimSpace(msg.Content) == "" {
			return fmt.Errorf("%w: message %d is empty", ErrInvalidConversation, i)
		}
	}
	if messages[len(messages)-1].Role != RoleUser {
		return fmt.Errorf("%w: last message must be from the user", ErrInvalidConversation)
	}
	return nil
}
