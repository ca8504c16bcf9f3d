package authhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"salarydecoder/internal/domain/audit"
	"salarydecoder/internal/domain/auth"
	"salarydecoder/internal/transport/http/middleware"
	"salarydecoder/internal/transport/http/shared"
)

type fakeService struct {
	mu       sync.Mutex
	users    map[string]string
	signOuts []auth.UserContext
}

func (f *fakeService) SignUp(_ context.Context, name, email, password string) (auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = auth.NormalizeEmail(email)
	if _, ok := f.users[email]; ok {
		return auth.User{}, auth.ErrEmailTaken
	}
	f.users[email] = password
	return auth.User{ID: "user-" + email, Name: name, Email: email, CreatedAt: time.Now()}, nil
}

func (f *fakeService) SignIn(_ context.Context, email, password string) (auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = auth.NormalizeEmail(email)
	if stored, ok := f.users[email]; !ok || stored != password {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	return auth.Session{Token: "token-" + email, ExpiresAt: time.Now().Add(time.Hour), User: auth.User{ID: "user-" + email, Email: email}}, nil
}

func (f *fakeService) SignOut(_ context.Context, user auth.UserContext) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts = append(f.signOuts, user)
	return nil
}

type auditLog struct {
	entries []audit.Entry
}

func (a *auditLog) Record(_ context.Context, entry audit.Entry) error {
	a.entries = append(a.entries, entry)
	return nil
}

type tokenAuthenticator struct{}

func (tokenAuthenticator) Authenticate(_ context.Context, token string) (auth.UserContext, error) {
	if !strings.HasPrefix(token, "token-") {
		return auth.UserContext{}, auth.ErrInvalidCredentials
	}
	email := strings.TrimPrefix(token, "token-")
	return auth.UserContext{UserID: "user-" + email, Email: email, SessionID: "s1"}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details struct {
			Fields []shared.ValidationIssue `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func newRouter() (http.Handler, *fakeService, *auditLog) {
	svc := &fakeService{users: map[string]string{}}
	log := &auditLog{}
	r := chi.NewRouter()
	r.Use(middleware.Auth(tokenAuthenticator{}))
	NewHandler(svc, log).RegisterRoutes(r)
	return r, svc, log
}

func call(t *testing.T, h http.Handler, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, env
}

func TestSignUpLoginLogout(t *testing.T) {
	router, svc, log := newRouter()

	rec, _ := call(t, router, "/auth/signup", `{"name":"Asha","email":"Asha@Example.com","password":"secret1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(log.entries) != 1 || log.entries[0].Action != audit.ActionSignUp {
		t.Fatalf("expected signup audit entry, got %+v", log.entries)
	}

	rec, env := call(t, router, "/auth/login", `{"email":"asha@example.com","password":"secret1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var session auth.Session
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Token == "" || session.User.Email != "asha@example.com" {
		t.Fatalf("unexpected session %+v", session)
	}

	rec, _ = call(t, router, "/auth/logout", ``, session.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.signOuts) != 1 || svc.signOuts[0].UserID != "user-asha@example.com" {
		t.Fatalf("expected session to be revoked, got %+v", svc.signOuts)
	}
}

func TestSignUpValidation(t *testing.T) {
	router, _, _ := newRouter()
	rec, env := call(t, router, "/auth/signup", `{"name":"","email":"not-an-email","password":"12345"}`, "")
	if rec.Code != http.StatusBadRequest || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation error, got %d", rec.Code)
	}
	fields := map[string]string{}
	for _, issue := range env.Error.Details.Fields {
		fields[issue.Field] = issue.Reason
	}
	if fields["name"] != "is required" || fields["email"] != "must be a valid email address" || fields["password"] != "must be at least 6 characters" {
		t.Fatalf("unexpected issues %+v", fields)
	}
}

func TestSignUpRejectsOverlongPassword(t *testing.T) {
	router, svc, _ := newRouter()
	body := `{"name":"Asha","email":"asha@example.com","password":"` + strings.Repeat("a", auth.MaxPasswordBytes+1) + `"}`
	rec, env := call(t, router, "/auth/signup", body, "")
	if rec.Code != http.StatusBadRequest || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation error, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(env.Error.Details.Fields) != 1 || env.Error.Details.Fields[0].Reason != "must be at most 72 bytes" {
		t.Fatalf("unexpected issues %+v", env.Error.Details.Fields)
	}
	if len(svc.users) != 0 {
		t.Fatalf("no account should be created")
	}

	body = `{"name":"Asha","email":"asha@example.com","password":"` + strings.Repeat("a", auth.MaxPasswordBytes) + `"}`
	rec, _ = call(t, router, "/auth/signup", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 72-byte password to be accepted, got %d", rec.Code)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	router, _, _ := newRouter()
	body := `{"name":"Ravi","email":"ravi@example.com","password":"secret1"}`
	call(t, router, "/auth/signup", body, "")
	rec, env := call(t, router, "/auth/signup", body, "")
	if rec.Code != http.StatusConflict || env.Error.Code != "email_taken" {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _, _ := newRouter()
	call(t, router, "/auth/signup", `{"name":"Ravi","email":"ravi@example.com","password":"secret1"}`, "")
	rec, env := call(t, router, "/auth/login", `{"email":"ravi@example.com","password":"wrong!"}`, "")
	if rec.Code != http.StatusUnauthorized || env.Error.Code != "invalid_credentials" {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogoutRequiresUser(t *testing.T) {
	router, _, _ := newRouter()
	rec, env := call(t, router, "/auth/logout", ``, "")
	if rec.Code != http.StatusUnauthorized || env.Error.Code != "unauthorized" {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"@b.co", false},
		{"a@", false},
		{"a b@c.d", false},
		{"plain", false},
	}
	for _, tc := range tests {
		if got := validEmail(tc.email); got != tc.want {
			t.Fatalf("validEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}
