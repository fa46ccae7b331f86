package models

import "fmt"

// ReservationStatus is the lifecycle state of a reservation. The server owns
// every transition; the client mirrors the table to decide which actions to
// offer.
type ReservationStatus string

// Reservation lifecycle states.
const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusCompleted ReservationStatus = "COMPLETED"
)

// transitions encodes the allowed lifecycle edges. CANCELLED and COMPLETED
// are terminal.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {},
	StatusCompleted: {},
}

// Valid reports whether the status is one of the known lifecycle states.
func (s ReservationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition leaves this status.
func (s ReservationStatus) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the lifecycle allows moving to "next".
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation is a guest's stay against a property. It is created by a guest
// and afterwards mutated only through status transitions, never re-parented.
type Reservation struct {
	ID             int               `json:"id"`
	Property       Property          `json:"property"`
	Guest          Identity          `json:"guest"`
	CheckInDate    Date              `json:"checkInDate"`
	CheckOutDate   Date              `json:"checkOutDate"`
	NumberOfGuests int               `json:"numberOfGuests"`
	TotalPrice     float64           `json:"totalPrice"`
	Status         ReservationStatus `json:"status"`
	CreatedAt      string            `json:"createdAt,omitempty"`
	UpdatedAt      string            `json:"updatedAt,omitempty"`
}

// ReservationRequest is the payload for creating a reservation. The server
// computes the total price; the client never does.
type ReservationRequest struct {
	PropertyID     int  `json:"propertyId" validate:"required"`
	CheckInDate    Date `json:"checkInDate" validate:"required"`
	CheckOutDate   Date `json:"checkOutDate" validate:"required"`
	NumberOfGuests int  `json:"numberOfGuests" validate:"min=1"`
}

// Validate checks the date ordering constraints the server will also enforce.
func (r ReservationRequest) Validate() error {
	if r.CheckInDate.IsZero() || r.CheckOutDate.IsZero() {
		return fmt.Errorf("check-in and check-out dates are required")
	}
	if !r.CheckInDate.Before(r.CheckOutDate) {
		return fmt.Errorf("check-out date must be after check-in date")
	}
	if r.CheckInDate.Before(Today()) {
		return fmt.Errorf("check-in date cannot be in the past")
	}
	return nil
}
