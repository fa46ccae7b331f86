// Package services holds the view models: the per-surface data-fetching and
// mutation logic between the UI layer and the REST collaborator. Every
// mutation follows the same policy: permission check, server call, and on
// success a full refetch of the affected list. List state is never derived
// from the mutation's own response, so the client's view always matches the
// server after any action.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/miniairbnb/client/internal/models"
	"github.com/miniairbnb/client/internal/permissions"
	"go.uber.org/zap"
)

// ReservationAPI is the interface that wraps the reservation endpoints of
// the REST collaborator.
type ReservationAPI interface {
	// Method CreateReservation books a stay. The server validates
	// availability and computes the price.
	//
	// If the call fails, the error is returned together with a "nil" value.
	CreateReservation(ctx context.Context, req models.ReservationRequest) (*models.Reservation, error)
	// Method MyReservations fetches the reservations the current user made
	// as a guest.
	//
	// If the call fails, the error is returned together with a "nil" value.
	MyReservations(ctx context.Context) ([]models.Reservation, error)
	// Method HostReservations fetches the reservations against the current
	// host's properties.
	//
	// If the call fails, the error is returned together with a "nil" value.
	HostReservations(ctx context.Context) ([]models.Reservation, error)
	// Method GetReservation fetches a single reservation by ID.
	//
	// If the call fails, the error is returned together with a "nil" value.
	GetReservation(ctx context.Context, id int) (*models.Reservation, error)
	// Method BusyDates fetches the occupied periods for a property.
	//
	// If the call fails, the error is returned together with a "nil" value.
	BusyDates(ctx context.Context, propertyID int) ([]models.Reservation, error)
	// Method ReservationsByProperty fetches the reservations against one
	// property.
	//
	// If the call fails, the error is returned together with a "nil" value.
	ReservationsByProperty(ctx context.Context, propertyID int) ([]models.Reservation, error)
	// Method ConfirmReservation requests the PENDING -> CONFIRMED transition.
	//
	// If the call fails, the error is returned together with a "nil" value.
	ConfirmReservation(ctx context.Context, id int) (*models.Reservation, error)
	// Method CompleteReservation requests the CONFIRMED -> COMPLETED
	// transition.
	//
	// If the call fails, the error is returned together with a "nil" value.
	CompleteReservation(ctx context.Context, id int) (*models.Reservation, error)
	// Method CancelReservation requests the transition to CANCELLED.
	//
	// If the call fails, the error is returned together with a "nil" value.
	CancelReservation(ctx context.Context, id int) (*models.Reservation, error)
}

// PropertyGetter fetches a single property, used to gate booking.
type PropertyGetter interface {
	GetProperty(ctx context.Context, id int) (*models.Property, error)
}

// Session exposes the read side of the session store.
type Session interface {
	Identity() *models.Identity
	IsAuthenticated() bool
}

// ReservationService is the reservation view model: role-scoped reads and
// the lifecycle transitions the current identity is allowed to trigger.
type ReservationService struct {
	api        ReservationAPI
	properties PropertyGetter
	session    Session
	logger     *zap.Logger
	validate   *validator.Validate
	inflight   *inflightGuard

	mu   sync.RWMutex
	list []models.Reservation
}

// NewReservationService creates a reservation view model.
func NewReservationService(api ReservationAPI, properties PropertyGetter, session Session, logger *zap.Logger) *ReservationService {
	return &ReservationService{
		api:        api,
		properties: properties,
		session:    session,
		logger:     logger,
		validate:   validator.New(),
		inflight:   newInflightGuard(),
	}
}

// Refresh reloads the role-scoped reservation list. A guest sees the
// reservations they made; a host or admin sees the reservations against
// their properties. The two scopes come from distinct endpoints and are
// never merged client-side.
func (s *ReservationService) Refresh(ctx context.Context) ([]models.Reservation, error) {
	identity := s.session.Identity()
	if identity == nil {
		return nil, &NotAuthenticatedError{ReturnTo: "/reservations"}
	}

	var (
		list []models.Reservation
		err  error
	)
	switch identity.Role {
	case models.RoleHost, models.RoleAdmin:
		list, err = s.api.HostReservations(ctx)
	default:
		list, err = s.api.MyReservations(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
	return s.Reservations(), nil
}

// Reservations returns a copy of the last fetched list.
func (s *ReservationService) Reservations() []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Reservation, len(s.list))
	copy(out, s.list)
	return out
}

// Create books a stay against a property. The owner of a property cannot
// book it; guest count and date ordering are pre-checked as a courtesy, with
// the server remaining authoritative.
func (s *ReservationService) Create(ctx context.Context, req models.ReservationRequest) (*models.Reservation, error) {
	identity := s.session.Identity()
	if identity == nil {
		return nil, &NotAuthenticatedError{ReturnTo: fmt.Sprintf("/properties/%d", req.PropertyID)}
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid reservation request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	property, err := s.properties.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanReserve(identity, *property) {
		return nil, fmt.Errorf("you cannot reserve your own property")
	}
	if req.NumberOfGuests > property.MaxGuests {
		return nil, fmt.Errorf("number of guests exceeds property capacity of %d", property.MaxGuests)
	}

	if !s.inflight.begin(req.PropertyID) {
		return nil, ErrActionInProgress
	}
	defer s.inflight.end(req.PropertyID)

	reservation, err := s.api.CreateReservation(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.Int("reservationId", reservation.ID),
		zap.Int("propertyId", req.PropertyID),
	)
	return reservation, nil
}

// Confirm requests the PENDING -> CONFIRMED transition and refetches the
// list on success.
func (s *ReservationService) Confirm(ctx context.Context, id int) error {
	return s.transition(ctx, id, "confirm", permissions.CanConfirmReservation, s.api.ConfirmReservation)
}

// Complete requests the CONFIRMED -> COMPLETED transition and refetches the
// list on success.
func (s *ReservationService) Complete(ctx context.Context, id int) error {
	return s.transition(ctx, id, "complete", permissions.CanCompleteReservation, s.api.CompleteReservation)
}

// Cancel requests the transition to CANCELLED and refetches the list on
// success.
func (s *ReservationService) Cancel(ctx context.Context, id int) error {
	return s.transition(ctx, id, "cancel", permissions.CanCancelReservation, s.api.CancelReservation)
}

// BusyDates returns the occupied periods for a property.
func (s *ReservationService) BusyDates(ctx context.Context, propertyID int) ([]models.Reservation, error) {
	return s.api.BusyDates(ctx, propertyID)
}

// ByProperty returns the reservations against one property.
func (s *ReservationService) ByProperty(ctx context.Context, propertyID int) ([]models.Reservation, error) {
	return s.api.ReservationsByProperty(ctx, propertyID)
}

// transition runs the shared mutation flow: locate the reservation, check
// the permission predicate (which also encodes the lifecycle edge), dispatch
// the call under the in-flight guard, then refetch. On failure the held list
// is left untouched.
func (s *ReservationService) transition(
	ctx context.Context,
	id int,
	action string,
	allowed func(*models.Identity, models.Reservation) bool,
	call func(context.Context, int) (*models.Reservation, error),
) error {
	identity := s.session.Identity()
	if identity == nil {
		return &NotAuthenticatedError{ReturnTo: "/reservations"}
	}

	reservation, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}
	if !allowed(identity, *reservation) {
		return fmt.Errorf("%w: cannot %s reservation %d in status %s",
			ErrPermissionDenied, action, id, reservation.Status)
	}

	if !s.inflight.begin(id) {
		return ErrActionInProgress
	}
	defer s.inflight.end(id)

	if _, err := call(ctx, id); err != nil {
		return err
	}

	s.logger.Info("reservation transition applied",
		zap.Int("reservationId", id),
		zap.String("action", action),
	)

	if _, err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("action succeeded but reloading reservations failed: %w", err)
	}
	return nil
}

// lookup finds the reservation in the held list, falling back to the server
// when the list has not been loaded yet.
func (s *ReservationService) lookup(ctx context.Context, id int) (*models.Reservation, error) {
	s.mu.RLock()
	for i := range s.list {
		if s.list[i].ID == id {
			found := s.list[i]
			s.mu.RUnlock()
			return &found, nil
		}
	}
	s.mu.RUnlock()
	return s.api.GetReservation(ctx, id)
}
