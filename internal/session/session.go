// Package session holds the current authenticated identity and exposes
// login, register, logout and identity-update operations. It is the single
// writer of the persisted token/user keys; the UI layers only read from it.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/miniairbnb/client/internal/models"
	"go.uber.org/zap"
)

// AuthAPI is the interface that wraps the auth endpoints of the REST
// collaborator.
type AuthAPI interface {
	// Method Login exchanges credentials for a token and identity.
	//
	// If the credentials are rejected or the call fails, the error is
	// returned unchanged together with a "nil" value.
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	// Method Register creates a new identity server-side and returns its
	// token and identity.
	//
	// If registration fails, the error is returned unchanged together with
	// a "nil" value.
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	// Method BecomeHost upgrades the current guest to a host and returns a
	// reissued token and identity.
	//
	// If the upgrade fails, the error is returned unchanged together with a
	// "nil" value.
	BecomeHost(ctx context.Context) (*models.AuthResponse, error)
}

// Keystore is the interface that wraps the persisted session state.
type Keystore interface {
	SaveToken(token string) error
	Token() string
	SaveIdentity(identity models.Identity) error
	Identity() *models.Identity
	Clear()
}

// Store is the session store.
type Store struct {
	api      AuthAPI
	keystore Keystore
	logger   *zap.Logger
	validate *validator.Validate

	mu       sync.RWMutex
	identity *models.Identity
	token    string
}

// NewStore creates a session store. Call Restore to pick up a persisted
// session from a previous run.
func NewStore(api AuthAPI, keystore Keystore, logger *zap.Logger) *Store {
	return &Store{
		api:      api,
		keystore: keystore,
		logger:   logger,
		validate: validator.New(),
	}
}

// Restore loads the persisted token and identity. Malformed or incomplete
// persisted state yields an unauthenticated session and is cleared, never an
// error. A stored JWT whose expiry has passed is discarded the same way.
func (s *Store) Restore() {
	token := s.keystore.Token()
	identity := s.keystore.Identity()

	if token == "" || identity == nil {
		s.keystore.Clear()
		return
	}

	if tokenExpired(token) {
		s.logger.Info("persisted token expired, clearing session")
		s.keystore.Clear()
		return
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.mu.Unlock()
}

// Login exchanges credentials for a session. On success the token and
// identity are persisted and held in memory; on failure the collaborator's
// error is surfaced unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.adopt(resp)
}

// Register creates a new account and starts a session for it.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (*models.Identity, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid registration data: %w", err)
	}
	if req.Role == "" {
		req.Role = models.RoleGuest
	}

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.adopt(resp)
}

// BecomeHost upgrades the current user to a host and merges the refreshed
// identity into the session.
func (s *Store) BecomeHost(ctx context.Context) (*models.Identity, error) {
	if !s.IsAuthenticated() {
		return nil, fmt.Errorf("not authenticated")
	}

	resp, err := s.api.BecomeHost(ctx)
	if err != nil {
		return nil, err
	}
	return s.adopt(resp)
}

// Logout clears the persisted keys and the in-memory identity. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.identity = nil
	s.token = ""
	s.mu.Unlock()
	s.keystore.Clear()
}

// HandleSessionExpired is the hook the REST client calls on a 401: same
// teardown as Logout, the caller then redirects to login.
func (s *Store) HandleSessionExpired() {
	s.logger.Info("session expired, clearing persisted state")
	s.Logout()
}

// UpdateIdentity merges a partial identity change into the in-memory
// identity without a network round-trip, and re-persists the result. The
// identity is the source of truth for UI gating, so it must reflect the
// server's last response immediately.
func (s *Store) UpdateIdentity(partial models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return
	}
	merged := s.identity.Merge(partial)
	s.identity = &merged
	if err := s.keystore.SaveIdentity(merged); err != nil {
		s.logger.Warn("failed to persist updated identity", zap.Error(err))
	}
}

// Identity returns a copy of the current identity, or nil when logged out.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	copied := *s.identity
	return &copied
}

// IsAuthenticated reports whether an identity is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// adopt persists and installs the state from an auth response.
func (s *Store) adopt(resp *models.AuthResponse) (*models.Identity, error) {
	identity := resp.Identity()

	if err := s.keystore.SaveToken(resp.Token); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}
	if err := s.keystore.SaveIdentity(identity); err != nil {
		return nil, fmt.Errorf("failed to persist identity: %w", err)
	}

	s.mu.Lock()
	s.token = resp.Token
	s.identity = &identity
	s.mu.Unlock()

	return &identity, nil
}

// tokenExpired reports whether the token is a JWT with an "exp" claim in the
// past. Opaque tokens and tokens without an expiry are kept; the server
// remains the authority and will answer 401 if it disagrees.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
