package authhandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"salarydecoder/internal/domain/audit"
	"salarydecoder/internal/domain/auth"
	"salarydecoder/internal/transport/http/api"
	"salarydecoder/internal/transport/http/middleware"
	"salarydecoder/internal/transport/http/shared"
)

type Service interface {
	SignUp(ctx context.Context, name, email, password string) (auth.User, error)
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
	SignOut(ctx context.Context, user auth.UserContext) error
}

type Handler struct {
	Service Service
	Audit   audit.Recorder
}

func NewHandler(service Service, auditor audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signup", h.HandleSignUp)
	r.Post("/auth/login", h.HandleLogin)
	r.With(middleware.RequireUser).Post("/auth/logout", h.HandleLogout)
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload signUpRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	v.Required("email", payload.Email, "is required")
	if email := strings.TrimSpace(payload.Email); email != "" && !validEmail(email) {
		v.Add("email", "must be a valid email address")
	}
	switch {
	case len(payload.Password) < auth.MinPasswordLength:
		v.Add("password", "must be at least 6 characters")
	case len(payload.Password) > auth.MaxPasswordBytes:
		v.Add("password", "must be at most 72 bytes")
	}
	if v.Reject(w, requestID) {
		return
	}

	user, err := h.Service.SignUp(r.Context(), payload.Name, payload.Email, payload.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		api.Fail(w, http.StatusConflict, "email_taken", "an account with this email already exists", requestID)
		return
	}
	if err != nil {
		slog.Error("sign up failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "signup_failed", "failed to create account", requestID)
		return
	}

	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), audit.Entry{
			ActorID:    user.ID,
			Action:     audit.ActionSignUp,
			EntityType: audit.EntityUser,
			EntityID:   user.ID,
			RequestID:  requestID,
			IP:         middleware.ClientIP(r),
			After:      map[string]string{"email": user.Email},
		}); err != nil {
			slog.Warn("audit record failed", "action", audit.ActionSignUp, "userId", user.ID, "err", err)
		}
	}
	api.Created(w, user, requestID)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	session, err := h.Service.SignIn(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
		return
	}
	if err != nil {
		slog.Error("sign in failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", requestID)
		return
	}
	api.Success(w, session, requestID)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.SignOut(r.Context(), user); err != nil {
		slog.Warn("logout session revoke failed", "userId", user.UserID, "err", err)
	}
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n")
}
