package permissions

import (
	"testing"

	"github.com/miniairbnb/client/internal/models"
	"github.com/stretchr/testify/assert"
)

var (
	guest = &models.Identity{ID: 1, Role: models.RoleGuest}
	host  = &models.Identity{ID: 2, Role: models.RoleHost}
	other = &models.Identity{ID: 3, Role: models.RoleHost}
	admin = &models.Identity{ID: 4, Role: models.RoleAdmin}
)

func propertyOf(hostIdentity *models.Identity) models.Property {
	return models.Property{ID: 10, Host: *hostIdentity}
}

func reservationFor(status models.ReservationStatus) models.Reservation {
	return models.Reservation{
		ID:       20,
		Property: propertyOf(host),
		Guest:    *guest,
		Status:   status,
	}
}

func TestCanCreateProperty(t *testing.T) {
	assert.False(t, CanCreateProperty(nil))
	assert.False(t, CanCreateProperty(guest))
	assert.True(t, CanCreateProperty(host))
	assert.True(t, CanCreateProperty(admin))
}

func TestCanEditProperty(t *testing.T) {
	property := propertyOf(host)

	tests := []struct {
		name     string
		identity *models.Identity
		allowed  bool
	}{
		{"anonymous", nil, false},
		{"guest", guest, false},
		{"owning host", host, true},
		{"other host", other, false},
		{"admin", admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanEditProperty(tt.identity, property))
			assert.Equal(t, tt.allowed, CanDeleteProperty(tt.identity, property))
		})
	}
}

func TestCanReserve_OwnerCannotBookOwnProperty(t *testing.T) {
	property := propertyOf(host)

	assert.False(t, CanReserve(nil, property))
	assert.False(t, CanReserve(host, property))
	assert.True(t, CanReserve(guest, property))
	assert.True(t, CanReserve(other, property))
	assert.True(t, CanReserve(admin, property))
}

func TestCanConfirmReservation(t *testing.T) {
	tests := []struct {
		name     string
		identity *models.Identity
		status   models.ReservationStatus
		allowed  bool
	}{
		{"host confirms pending", host, models.StatusPending, true},
		{"admin confirms pending", admin, models.StatusPending, true},
		{"guest cannot confirm", guest, models.StatusPending, false},
		{"other host cannot confirm", other, models.StatusPending, false},
		{"cannot confirm confirmed", host, models.StatusConfirmed, false},
		{"cannot confirm cancelled", host, models.StatusCancelled, false},
		{"cannot confirm completed", host, models.StatusCompleted, false},
		{"anonymous", nil, models.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanConfirmReservation(tt.identity, reservationFor(tt.status)))
		})
	}
}

func TestCanCompleteReservation(t *testing.T) {
	assert.True(t, CanCompleteReservation(host, reservationFor(models.StatusConfirmed)))
	assert.True(t, CanCompleteReservation(admin, reservationFor(models.StatusConfirmed)))
	assert.False(t, CanCompleteReservation(host, reservationFor(models.StatusPending)))
	assert.False(t, CanCompleteReservation(guest, reservationFor(models.StatusConfirmed)))
	assert.False(t, CanCompleteReservation(host, reservationFor(models.StatusCompleted)))
}

func TestCanCancelReservation(t *testing.T) {
	tests := []struct {
		name     string
		identity *models.Identity
		status   models.ReservationStatus
		allowed  bool
	}{
		{"guest cancels own pending", guest, models.StatusPending, true},
		{"guest cancels own confirmed", guest, models.StatusConfirmed, true},
		{"host cancels pending", host, models.StatusPending, true},
		{"admin cancels confirmed", admin, models.StatusConfirmed, true},
		{"other host cannot cancel", other, models.StatusPending, false},
		{"no cancel out of cancelled", guest, models.StatusCancelled, false},
		{"no cancel out of completed", guest, models.StatusCompleted, false},
		{"anonymous", nil, models.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanCancelReservation(tt.identity, reservationFor(tt.status)))
		})
	}
}

func TestCanModerateUsers(t *testing.T) {
	assert.False(t, CanModerateUsers(nil))
	assert.False(t, CanModerateUsers(guest))
	assert.False(t, CanModerateUsers(host))
	assert.True(t, CanModerateUsers(admin))
}
