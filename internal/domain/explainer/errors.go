package explainer

import "errors"

var (
	ErrRateLimited         = errors.New("gateway rate limit exceeded")
	ErrQuotaExhausted      = errors.New("gateway credits exhausted")
	ErrUnavailable         = errors.New("explanation unavailable")
	ErrInvalidConversation = errors.New("invalid conversation")
)
