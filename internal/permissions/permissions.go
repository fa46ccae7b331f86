// Package permissions centralizes the role checks that decide which actions
// the client offers. These are rendering decisions only; the server enforces
// authorization on every call.
package permissions

import "github.com/miniairbnb/client/internal/models"

// CanCreateProperty reports whether the identity may publish listings.
func CanCreateProperty(identity *models.Identity) bool {
	if identity == nil {
		return false
	}
	return identity.Role == models.RoleHost || identity.Role == models.RoleAdmin
}

// CanEditProperty reports whether the identity may edit the listing: its
// owning host, or an admin.
func CanEditProperty(identity *models.Identity, property models.Property) bool {
	if identity == nil {
		return false
	}
	return identity.Role == models.RoleAdmin || property.Host.ID == identity.ID
}

// CanDeleteProperty mirrors CanEditProperty; deletion has the same gate.
func CanDeleteProperty(identity *models.Identity, property models.Property) bool {
	return CanEditProperty(identity, property)
}

// CanReserve reports whether the identity may book the property. A host
// cannot hold a reservation against their own listing.
func CanReserve(identity *models.Identity, property models.Property) bool {
	if identity == nil {
		return false
	}
	return property.Host.ID != identity.ID
}

// CanConfirmReservation reports whether the identity may confirm: the
// property's host or an admin, and only while the reservation is PENDING.
func CanConfirmReservation(identity *models.Identity, reservation models.Reservation) bool {
	if !isHostOrAdmin(identity, reservation) {
		return false
	}
	return reservation.Status.CanTransitionTo(models.StatusConfirmed)
}

// CanCompleteReservation reports whether the identity may complete: the
// property's host or an admin, and only while the reservation is CONFIRMED.
func CanCompleteReservation(identity *models.Identity, reservation models.Reservation) bool {
	if !isHostOrAdmin(identity, reservation) {
		return false
	}
	return reservation.Status.CanTransitionTo(models.StatusCompleted)
}

// CanCancelReservation reports whether the identity may cancel: the guest who
// made it, the property's host, or an admin, while the reservation is not in
// a terminal state.
func CanCancelReservation(identity *models.Identity, reservation models.Reservation) bool {
	if identity == nil {
		return false
	}
	allowed := reservation.Guest.ID == identity.ID || isHostOrAdmin(identity, reservation)
	return allowed && reservation.Status.CanTransitionTo(models.StatusCancelled)
}

// CanModerateUsers reports whether the identity may list, re-role or delete
// users.
func CanModerateUsers(identity *models.Identity) bool {
	return identity != nil && identity.Role == models.RoleAdmin
}

func isHostOrAdmin(identity *models.Identity, reservation models.Reservation) bool {
	if identity == nil {
		return false
	}
	return identity.Role == models.RoleAdmin || reservation.Property.Host.ID == identity.ID
}
