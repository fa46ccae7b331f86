package api

import (
	"context"
	"net/http"

	"github.com/miniairbnb/client/internal/models"
)

// Login exchanges credentials for a token and identity.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account and returns its token and identity.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BecomeHost upgrades the current guest to a host. The server reissues the
// token with the new role.
func (c *Client) BecomeHost(ctx context.Context) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/become-host", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
