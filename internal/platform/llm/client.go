package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"salarydecoder/internal/domain/explainer"
)

type CallRecorder interface {
	RecordGatewayCall(err error)
}

type Options struct {
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
	Metrics  CallRecorder
	Logger   *slog.Logger
	HTTPDoer openai.HTTPDoer
}

type Client struct {
	model   string
	timeout time.Duration
	client  *openai.Client
	metrics CallRecorder
	logger  *slog.Logger
}

func NewClient(opts Options) *Client {
	c := &Client{
		model:   opts.Model,
		timeout: opts.Timeout,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if opts.APIKey == "" {
		return c
	}
	config := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	if opts.HTTPDoer != nil {
		config.HTTPClient = opts.HTTPDoer
	}
	c.client = openai.NewClientWithConfig(config)
	return c
}

func (c *Client) Configured() bool {
	return c.client != nil
}

func (c *Client) Complete(ctx context.Context, messages []explainer.Message) (string, error) {
	if c.client == nil {
		c.record(explainer.ErrUnavailable)
		return "", explainer.ErrUnavailable
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		mapped := mapError(err)
		c.logger.Warn("ai gateway call failed", "status", statusCode(err), "error", err)
		c.record(mapped)
		return "", mapped
	}
	c.record(nil)
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) record(err error) {
	if c.metrics != nil {
		c.metrics.RecordGatewayCall(err)
	}
}

func mapError(err error) error {
	switch statusCode(err) {
	case http.StatusTooManyRequests:
		return explainer.ErrRateLimited
	case http.StatusPaymentRequired:
		return explainer.ErrQuotaExhausted
	default:
		return explainer.ErrUnavailable
	}
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
