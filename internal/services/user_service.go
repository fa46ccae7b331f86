package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/miniairbnb/client/internal/models"
	"github.com/miniairbnb/client/internal/permissions"
	"go.uber.org/zap"
)

// UserAPI is the interface that wraps the admin user endpoints of the REST
// collaborator.
type UserAPI interface {
	// Method ListUsers fetches all users.
	//
	// If the call fails, the error is returned together with a "nil" value.
	ListUsers(ctx context.Context) ([]models.Identity, error)
	// Method UpdateUserRole changes a user's role.
	//
	// If the call fails, the error is returned together with a "nil" value.
	UpdateUserRole(ctx context.Context, userID int, role models.Role) (*models.Identity, error)
	// Method DeleteUser removes a user.
	//
	// If the call fails, the error is returned.
	DeleteUser(ctx context.Context, userID int) error
}

// UserService is the admin moderation view model.
type UserService struct {
	api      UserAPI
	session  Session
	logger   *zap.Logger
	inflight *inflightGuard

	mu    sync.RWMutex
	users []models.Identity
}

// NewUserService creates a user moderation view model.
func NewUserService(api UserAPI, session Session, logger *zap.Logger) *UserService {
	return &UserService{
		api:      api,
		session:  session,
		logger:   logger,
		inflight: newInflightGuard(),
	}
}

// Refresh reloads the user list. Admin only.
func (s *UserService) Refresh(ctx context.Context) ([]models.Identity, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return s.Users(), nil
}

// Users returns a copy of the last fetched list.
func (s *UserService) Users() []models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Identity, len(s.users))
	copy(out, s.users)
	return out
}

// SetRole changes a user's role, then refetches the list so the held state
// reflects the server.
func (s *UserService) SetRole(ctx context.Context, userID int, role models.Role) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("unknown role: %q", role)
	}

	if !s.inflight.begin(userID) {
		return ErrActionInProgress
	}
	defer s.inflight.end(userID)

	if _, err := s.api.UpdateUserRole(ctx, userID, role); err != nil {
		return err
	}

	s.logger.Info("user role updated", zap.Int("userId", userID), zap.String("role", string(role)))

	if _, err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("role updated but reloading users failed: %w", err)
	}
	return nil
}

// Delete removes a user, then refetches the list.
func (s *UserService) Delete(ctx context.Context, userID int) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}

	if !s.inflight.begin(userID) {
		return ErrActionInProgress
	}
	defer s.inflight.end(userID)

	if err := s.api.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Int("userId", userID))

	if _, err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("user deleted but reloading users failed: %w", err)
	}
	return nil
}

func (s *UserService) requireAdmin() error {
	identity := s.session.Identity()
	if identity == nil {
		return &NotAuthenticatedError{ReturnTo: "/admin"}
	}
	if !permissions.CanModerateUsers(identity) {
		return ErrPermissionDenied
	}
	return nil
}
