package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Service struct {
	store  StoreAPI
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewService(store StoreAPI, secret string, ttl time.Duration) *Service {
	return &Service{store: store, secret: secret, ttl: ttl, now: time.Now}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) SignUp(ctx context.Context, name, email, password string) (User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateUser(ctx, strings.TrimSpace(name), NormalizeEmail(email), hash)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	creds, err := s.store.FindUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if err := CheckPassword(creds.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	sessionID, err := newSessionID()
	if err != nil {
		return Session{}, fmt.Errorf("session id: %w", err)
	}
	expires := s.now().Add(s.ttl)
	if err := s.store.CreateSession(ctx, creds.ID, HashToken(sessionID), expires); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	token, err := GenerateToken(s.secret, Claims{UserID: creds.ID, Email: creds.Email, SessionID: sessionID}, s.ttl)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	if err := s.store.UpdateLastLogin(ctx, creds.ID); err != nil {
		slog.Warn("update last_login failed", "userId", creds.ID, "err", err)
	}
	return Session{Token: token, ExpiresAt: expires, User: creds.User}, nil
}

func (s *Service) SignOut(ctx context.Context, user UserContext) error {
	if user.SessionID == "" {
		return nil
	}
	return s.store.RevokeSession(ctx, user.UserID, HashToken(user.SessionID))
}

// Authenticate resolves a bearer token to the signed-in user, rejecting revoked sessions.
func (s *Service) Authenticate(ctx context.Context, token string) (UserContext, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return UserContext{}, ErrInvalidCredentials
	}
	valid, err := s.store.SessionValid(ctx, claims.UserID, HashToken(claims.SessionID))
	if err != nil {
		return UserContext{}, err
	}
	if !valid {
		return UserContext{}, ErrSessionExpired
	}
	return UserContext{UserID: claims.UserID, Email: claims.Email, SessionID: claims.SessionID}, nil
}
