package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/miniairbnb/client/internal/models"
)

// ListUsers fetches all users. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]models.Identity, error) {
	var users []models.Identity
	if err := c.doJSON(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole changes a user's role. Admin only.
func (c *Client) UpdateUserRole(ctx context.Context, userID int, role models.Role) (*models.Identity, error) {
	body := map[string]models.Role{"role": role}
	var user models.Identity
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/role", userID), body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user. Admin only.
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil, nil)
}
