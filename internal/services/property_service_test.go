package services

import (
	"context"
	"errors"
	"testing"

	"github.com/miniairbnb/client/internal/api"
	"github.com/miniairbnb/client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockPropertyAPI is a mock implementation of PropertyAPI
type mockPropertyAPI struct {
	listings  []models.Property
	deleteErr error

	listCalls   int
	deleteCalls int

	lastUpdateInput models.PropertyInput
}

func (m *mockPropertyAPI) ListProperties(ctx context.Context, city, country string) ([]models.Property, error) {
	m.listCalls++
	return m.listings, nil
}

func (m *mockPropertyAPI) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	for i := range m.listings {
		if m.listings[i].ID == id {
			return &m.listings[i], nil
		}
	}
	return nil, errors.New("Property not found")
}

func (m *mockPropertyAPI) MyProperties(ctx context.Context) ([]models.Property, error) {
	return m.listings, nil
}

func (m *mockPropertyAPI) CreateProperty(ctx context.Context, input models.PropertyInput, images []api.ImageFile) (*models.Property, error) {
	return &models.Property{ID: 100, Title: input.Title}, nil
}

func (m *mockPropertyAPI) UpdateProperty(ctx context.Context, id int, input models.PropertyInput, images []api.ImageFile) (*models.Property, error) {
	m.lastUpdateInput = input
	return &models.Property{ID: id, Title: input.Title, ImageURLs: input.ImageURLs}, nil
}

func (m *mockPropertyAPI) DeleteProperty(ctx context.Context, id int) error {
	m.deleteCalls++
	return m.deleteErr
}

func listingFixture() []models.Property {
	return []models.Property{
		{ID: 1, Title: "Loft", PricePerNight: 50, Host: *testHost},
		{ID: 2, Title: "Villa", PricePerNight: 120, Host: *testHost},
		{ID: 3, Title: "Cabin", PricePerNight: 80, Host: models.Identity{ID: 3, Role: models.RoleHost}},
	}
}

func newPropertyService(api *mockPropertyAPI, identity *models.Identity) *PropertyService {
	logger, _ := zap.NewDevelopment()
	return NewPropertyService(api, &mockSession{identity: identity}, logger)
}

func TestPropertyService_SetFiltersDoesNotRefetch(t *testing.T) {
	mock := &mockPropertyAPI{listings: listingFixture()}
	svc := newPropertyService(mock, nil)

	_, err := svc.Browse(context.Background(), "", "")
	require.NoError(t, err)
	require.Equal(t, 1, mock.listCalls)

	min := 60.0
	svc.SetFilters(models.PropertyFilters{MinPrice: &min})
	visible := svc.Visible()

	assert.Equal(t, 1, mock.listCalls, "numeric filters must not hit the network")
	require.Len(t, visible, 2)
	assert.Equal(t, "Villa", visible[0].Title)
	assert.Equal(t, "Cabin", visible[1].Title)
}

func TestPropertyService_BrowseRefetchesOnLocationChange(t *testing.T) {
	mock := &mockPropertyAPI{listings: listingFixture()}
	svc := newPropertyService(mock, nil)

	_, err := svc.Browse(context.Background(), "", "")
	require.NoError(t, err)
	_, err = svc.Browse(context.Background(), "Kyoto", "Japan")
	require.NoError(t, err)

	assert.Equal(t, 2, mock.listCalls)
}

func TestPropertyService_FiltersSurviveRefetch(t *testing.T) {
	mock := &mockPropertyAPI{listings: listingFixture()}
	svc := newPropertyService(mock, nil)

	min := 100.0
	svc.SetFilters(models.PropertyFilters{MinPrice: &min})

	visible, err := svc.Browse(context.Background(), "Kyoto", "Japan")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Villa", visible[0].Title)
}

func TestPropertyService_HostFilterAdminOnly(t *testing.T) {
	tests := []struct {
		name     string
		identity *models.Identity
		wantErr  error
	}{
		{"guest denied", testGuest, ErrPermissionDenied},
		{"host denied", testHost, ErrPermissionDenied},
		{"admin allowed", &models.Identity{ID: 9, Role: models.RoleAdmin}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newPropertyService(&mockPropertyAPI{listings: listingFixture()}, tt.identity)
			err := svc.FilterByHost(3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPropertyService_HostFilterPivot(t *testing.T) {
	mock := &mockPropertyAPI{listings: listingFixture()}
	svc := newPropertyService(mock, &models.Identity{ID: 9, Role: models.RoleAdmin})

	_, err := svc.Browse(context.Background(), "", "")
	require.NoError(t, err)

	require.NoError(t, svc.FilterByHost(3))
	visible := svc.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Cabin", visible[0].Title)
	assert.Equal(t, 1, mock.listCalls, "pivot reuses the fetched set")

	svc.ClearHostFilter()
	assert.Len(t, svc.Visible(), 3)
}

func TestPropertyService_MineRequiresHost(t *testing.T) {
	tests := []struct {
		name     string
		identity *models.Identity
		wantErr  error
	}{
		{"unauthenticated", nil, ErrNotAuthenticated},
		{"guest denied", testGuest, ErrPermissionDenied},
		{"host allowed", testHost, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newPropertyService(&mockPropertyAPI{listings: listingFixture()}, tt.identity)
			_, err := svc.Mine(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPropertyService_CreateGuestDenied(t *testing.T) {
	svc := newPropertyService(&mockPropertyAPI{}, testGuest)

	_, err := svc.Create(context.Background(), validPropertyInput(), nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestPropertyService_UpdateDropsRemovedImages(t *testing.T) {
	mock := &mockPropertyAPI{listings: []models.Property{
		{
			ID:        1,
			Title:     "Loft",
			Host:      *testHost,
			ImageURLs: []string{"/img/a.jpg", "/img/b.jpg", "/img/c.jpg"},
		},
	}}
	svc := newPropertyService(mock, testHost)

	_, err := svc.Update(context.Background(), 1, validPropertyInput(), nil, []string{"/img/b.jpg"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/img/a.jpg", "/img/c.jpg"}, mock.lastUpdateInput.ImageURLs)
}

func TestPropertyService_UpdateForeignPropertyDenied(t *testing.T) {
	mock := &mockPropertyAPI{listings: []models.Property{
		{ID: 3, Title: "Cabin", Host: models.Identity{ID: 3, Role: models.RoleHost}},
	}}
	svc := newPropertyService(mock, testHost)

	_, err := svc.Update(context.Background(), 3, validPropertyInput(), nil, nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestPropertyService_DeleteRemovesLocallyAfterSuccess(t *testing.T) {
	mock := &mockPropertyAPI{listings: listingFixture()}
	svc := newPropertyService(mock, testHost)

	_, err := svc.Browse(context.Background(), "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, 1, mock.deleteCalls)

	visible := svc.Visible()
	require.Len(t, visible, 2)
	for _, p := range visible {
		assert.NotEqual(t, 1, p.ID)
	}
}

func TestPropertyService_DeleteFailureKeepsEntry(t *testing.T) {
	mock := &mockPropertyAPI{listings: listingFixture(), deleteErr: errors.New("server down")}
	svc := newPropertyService(mock, testHost)

	_, err := svc.Browse(context.Background(), "", "")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Len(t, svc.Visible(), 3, "the entry stays until the server confirms")
}

func validPropertyInput() models.PropertyInput {
	return models.PropertyInput{
		Title:         "Loft",
		Description:   "A bright loft near the station with space for a small family",
		Address:       "1-2-3 Ginza",
		City:          "Tokyo",
		Country:       "Japan",
		PricePerNight: 90,
		MaxGuests:     3,
		Bedrooms:      1,
		Bathrooms:     1,
	}
}
