package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/miniairbnb/client/internal/api"
	"github.com/miniairbnb/client/internal/models"
	"github.com/miniairbnb/client/internal/permissions"
	"go.uber.org/zap"
)

// PropertyAPI is the interface that wraps the property endpoints of the REST
// collaborator.
type PropertyAPI interface {
	// Method ListProperties fetches all active listings, optionally
	// narrowed by the server-side city/country filters.
	//
	// If the call fails, the error is returned together with a "nil" value.
	ListProperties(ctx context.Context, city, country string) ([]models.Property, error)
	// Method GetProperty fetches a single listing by ID.
	//
	// If the call fails, the error is returned together with a "nil" value.
	GetProperty(ctx context.Context, id int) (*models.Property, error)
	// Method MyProperties fetches the listings owned by the current host.
	//
	// If the call fails, the error is returned together with a "nil" value.
	MyProperties(ctx context.Context) ([]models.Property, error)
	// Method CreateProperty submits a new listing with its images.
	//
	// If the call fails, the error is returned together with a "nil" value.
	CreateProperty(ctx context.Context, input models.PropertyInput, images []api.ImageFile) (*models.Property, error)
	// Method UpdateProperty saves changes to an existing listing.
	//
	// If the call fails, the error is returned together with a "nil" value.
	UpdateProperty(ctx context.Context, id int, input models.PropertyInput, images []api.ImageFile) (*models.Property, error)
	// Method DeleteProperty removes a listing.
	//
	// If the call fails, the error is returned.
	DeleteProperty(ctx context.Context, id int) error
}

// PropertyService is the listing view model: browse with filters, the host's
// own listings, create/edit with an image batch, and the admin pivots.
type PropertyService struct {
	api      PropertyAPI
	session  Session
	logger   *zap.Logger
	validate *validator.Validate
	inflight *inflightGuard

	mu         sync.RWMutex
	fetched    []models.Property
	filters    models.PropertyFilters
	city       string
	country    string
	hostFilter *int
}

// NewPropertyService creates a property view model.
func NewPropertyService(api PropertyAPI, session Session, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		api:      api,
		session:  session,
		logger:   logger,
		validate: validator.New(),
		inflight: newInflightGuard(),
	}
}

// Browse fetches listings with the server-side city/country parameters and
// replaces the held set. Only city/country changes trigger a refetch; the
// numeric filters are purely client-side.
func (s *PropertyService) Browse(ctx context.Context, city, country string) ([]models.Property, error) {
	properties, err := s.api.ListProperties(ctx, city, country)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.fetched = properties
	s.city = city
	s.country = country
	s.mu.Unlock()
	return s.Visible(), nil
}

// SetFilters replaces the client-side filters. No network call.
func (s *PropertyService) SetFilters(filters models.PropertyFilters) {
	s.mu.Lock()
	s.filters = filters
	s.mu.Unlock()
}

// Visible returns the fetched set narrowed by the client-side filters and,
// for an admin who pivoted, by the selected host.
func (s *PropertyService) Visible() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visible := s.filters.Apply(s.fetched)
	if s.hostFilter != nil {
		byHost := visible[:0:0]
		for _, p := range visible {
			if p.Host.ID == *s.hostFilter {
				byHost = append(byHost, p)
			}
		}
		visible = byHost
	}
	return visible
}

// FilterByHost pivots the admin view to one host's properties without losing
// the fetched set or the numeric filters.
func (s *PropertyService) FilterByHost(hostID int) error {
	if !permissions.CanModerateUsers(s.session.Identity()) {
		return ErrPermissionDenied
	}
	s.mu.Lock()
	s.hostFilter = &hostID
	s.mu.Unlock()
	return nil
}

// ClearHostFilter pivots back to all properties.
func (s *PropertyService) ClearHostFilter() {
	s.mu.Lock()
	s.hostFilter = nil
	s.mu.Unlock()
}

// Get fetches a single listing.
func (s *PropertyService) Get(ctx context.Context, id int) (*models.Property, error) {
	return s.api.GetProperty(ctx, id)
}

// Mine fetches the current host's listings.
func (s *PropertyService) Mine(ctx context.Context) ([]models.Property, error) {
	identity := s.session.Identity()
	if identity == nil {
		return nil, &NotAuthenticatedError{ReturnTo: "/my-properties"}
	}
	if !permissions.CanCreateProperty(identity) {
		return nil, ErrPermissionDenied
	}
	return s.api.MyProperties(ctx)
}

// Create publishes a new listing, bundling the form fields and the selected
// image files in one request.
func (s *PropertyService) Create(ctx context.Context, input models.PropertyInput, imagePaths []string) (*models.Property, error) {
	identity := s.session.Identity()
	if identity == nil {
		return nil, &NotAuthenticatedError{ReturnTo: "/my-properties/new"}
	}
	if !permissions.CanCreateProperty(identity) {
		return nil, ErrPermissionDenied
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid property data: %w", err)
	}

	images, closeAll, err := openImages(imagePaths)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	property, err := s.api.CreateProperty(ctx, input, images)
	if err != nil {
		return nil, err
	}
	s.logger.Info("property created", zap.Int("propertyId", property.ID))
	return property, nil
}

// Update saves changes to a listing. Removed image URLs are dropped from the
// submitted set only; nothing is committed until the save request succeeds.
func (s *PropertyService) Update(ctx context.Context, id int, input models.PropertyInput, newImagePaths, removedImageURLs []string) (*models.Property, error) {
	identity := s.session.Identity()
	if identity == nil {
		return nil, &NotAuthenticatedError{ReturnTo: fmt.Sprintf("/my-properties/%d/edit", id)}
	}

	current, err := s.api.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permissions.CanEditProperty(identity, *current) {
		return nil, ErrPermissionDenied
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid property data: %w", err)
	}

	// Keep the persisted images minus the locally removed ones.
	kept := make([]string, 0, len(current.ImageURLs))
	for _, url := range current.ImageURLs {
		if !slices.Contains(removedImageURLs, url) {
			kept = append(kept, url)
		}
	}
	input.ImageURLs = kept

	images, closeAll, err := openImages(newImagePaths)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	if !s.inflight.begin(id) {
		return nil, ErrActionInProgress
	}
	defer s.inflight.end(id)

	property, err := s.api.UpdateProperty(ctx, id, input, images)
	if err != nil {
		return nil, err
	}
	s.logger.Info("property updated", zap.Int("propertyId", id))
	return property, nil
}

// Delete removes a listing. The held set drops the entry only after the
// server acknowledged the deletion.
func (s *PropertyService) Delete(ctx context.Context, id int) error {
	identity := s.session.Identity()
	if identity == nil {
		return &NotAuthenticatedError{ReturnTo: "/my-properties"}
	}

	current, err := s.api.GetProperty(ctx, id)
	if err != nil {
		return err
	}
	if !permissions.CanDeleteProperty(identity, *current) {
		return ErrPermissionDenied
	}

	if !s.inflight.begin(id) {
		return ErrActionInProgress
	}
	defer s.inflight.end(id)

	if err := s.api.DeleteProperty(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.fetched {
		if s.fetched[i].ID == id {
			s.fetched = append(s.fetched[:i], s.fetched[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("property deleted", zap.Int("propertyId", id))
	return nil
}

// openImages opens the selected files for upload and returns a cleanup
// closing all of them.
func openImages(paths []string) ([]api.ImageFile, func(), error) {
	images := make([]api.ImageFile, 0, len(paths))
	files := make([]*os.File, 0, len(paths))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open image %s: %w", path, err)
		}
		files = append(files, f)
		images = append(images, api.ImageFile{Filename: filepath.Base(path), Reader: f})
	}
	return images, closeAll, nil
}
