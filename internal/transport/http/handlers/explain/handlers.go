package explainhandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salarydecoder/internal/domain/explainer"
	"salarydecoder/internal/transport/http/api"
	salaryhandler "salarydecoder/internal/transport/http/handlers/salary"
	"salarydecoder/internal/transport/http/middleware"
	"salarydecoder/internal/transport/http/shared"
)

type Service interface {
	Explain(ctx context.Context, summary string) (string, error)
	Chat(ctx context.Context, messages []explainer.Message) (string, error)
}

type Handler struct {
	Service Service
	Salary  *salaryhandler.Handler
}

func NewHandler(service Service, salary *salaryhandler.Handler) *Handler {
	return &Handler{Service: service, Salary: salary}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/salary/explain", h.handleExplain)
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	in, res, ok := h.Salary.Compute(w, r)
	if !ok {
		return
	}
	explanation, err := h.Service.Explain(r.Context(), explainer.BuildSummary(in, res))
	if err != nil {
		failGateway(w, r, err)
		return
	}
	api.Success(w, map[string]string{"explanation": explanation}, middleware.GetRequestID(r.Context()))
}

type chatRequest struct {
	Messages []explainer.Message `json:"messages"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload chatRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	reply, err := h.Service.Chat(r.Context(), payload.Messages)
	if errors.Is(err, explainer.ErrInvalidConversation) {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": []shared.ValidationIssue{{Field: "messages", Reason: err.Error()}}}, requestID)
		return
	}
	if err != nil {
		failGateway(w, r, err)
		return
	}
	api.Success(w, map[string]string{"reply": reply}, requestID)
}

func failGateway(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, explainer.ErrRateLimited):
		api.Fail(w, http.StatusTooManyRequests, "rate_limited", "Rate limit exceeded. Please try again in a moment.", requestID)
	case errors.Is(err, explainer.ErrQuotaExhausted):
		api.Fail(w, http.StatusPaymentRequired, "ai_credits_exhausted", "AI credits exhausted. Please try again later.", requestID)
	default:
		slog.Warn("explanation failed", "err", err, "path", r.URL.Path, "requestId", requestID)
		api.Fail(w, http.StatusBadGateway, "explanation_unavailable", "explanation unavailable", requestID)
	}
}

