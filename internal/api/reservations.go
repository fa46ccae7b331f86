package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/miniairbnb/client/internal/models"
)

// CreateReservation books a stay. The server validates availability and
// computes the total price.
func (c *Client) CreateReservation(ctx context.Context, req models.ReservationRequest) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := c.doJSON(ctx, http.MethodPost, "/reservations", req, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// MyReservations fetches the reservations the current user made as a guest.
func (c *Client) MyReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := c.doJSON(ctx, http.MethodGet, "/reservations/my-reservations", nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// HostReservations fetches the reservations held against the current host's
// properties.
func (c *Client) HostReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := c.doJSON(ctx, http.MethodGet, "/reservations/host-reservations", nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetReservation fetches a single reservation by ID.
func (c *Client) GetReservation(ctx context.Context, id int) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/reservations/%d", id), nil, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ReservationsByProperty fetches the reservations against one property.
func (c *Client) ReservationsByProperty(ctx context.Context, propertyID int) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/reservations/property/%d", propertyID), nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// BusyDates fetches the occupied periods for a property, used to warn before
// picking dates. The overlap check itself stays server-side.
func (c *Client) BusyDates(ctx context.Context, propertyID int) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/reservations/property/%d/busy-dates", propertyID), nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// ConfirmReservation moves a PENDING reservation to CONFIRMED.
func (c *Client) ConfirmReservation(ctx context.Context, id int) (*models.Reservation, error) {
	return c.transitionReservation(ctx, id, "confirm")
}

// CompleteReservation moves a CONFIRMED reservation to COMPLETED.
func (c *Client) CompleteReservation(ctx context.Context, id int) (*models.Reservation, error) {
	return c.transitionReservation(ctx, id, "complete")
}

// CancelReservation moves a PENDING or CONFIRMED reservation to CANCELLED.
func (c *Client) CancelReservation(ctx context.Context, id int) (*models.Reservation, error) {
	return c.transitionReservation(ctx, id, "cancel")
}

func (c *Client) transitionReservation(ctx context.Context, id int, action string) (*models.Reservation, error) {
	var reservation models.Reservation
	path := fmt.Sprintf("/reservations/%d/%s", id, action)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}
