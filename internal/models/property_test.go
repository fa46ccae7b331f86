package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pricedProperties(prices ...float64) []Property {
	properties := make([]Property, len(prices))
	for i, price := range prices {
		properties[i] = Property{ID: i + 1, PricePerNight: price}
	}
	return properties
}

func TestPropertyFilters_PriceRangeInclusive(t *testing.T) {
	minPrice, maxPrice := 100.0, 200.0
	filters := PropertyFilters{MinPrice: &minPrice, MaxPrice: &maxPrice}

	filtered := filters.Apply(pricedProperties(50, 100, 150, 200, 250))

	prices := make([]float64, len(filtered))
	for i, p := range filtered {
		prices[i] = p.PricePerNight
	}
	assert.Equal(t, []float64{100, 150, 200}, prices)
}

func TestPropertyFilters_Matches(t *testing.T) {
	two := 2
	three := 3
	property := Property{
		PricePerNight: 120,
		Bedrooms:      2,
		Bathrooms:     1,
		MaxGuests:     4,
	}

	tests := []struct {
		name    string
		filters PropertyFilters
		matches bool
	}{
		{"no filters", PropertyFilters{}, true},
		{"min bedrooms met", PropertyFilters{MinBedrooms: &two}, true},
		{"min bedrooms exceeded", PropertyFilters{MinBedrooms: &three}, false},
		{"min bathrooms exceeded", PropertyFilters{MinBathrooms: &two}, false},
		{"min guests met", PropertyFilters{MinGuests: &three}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.filters.Matches(property))
		})
	}
}

func TestPropertyFilters_ApplyPreservesOrder(t *testing.T) {
	filters := PropertyFilters{}
	properties := pricedProperties(30, 10, 20)

	filtered := filters.Apply(properties)

	assert.Equal(t, properties, filtered)
}

func TestIdentity_Merge(t *testing.T) {
	identity := Identity{ID: 7, Email: "guest@example.com", FirstName: "Ana", Role: RoleGuest}

	merged := identity.Merge(Identity{Role: RoleHost})

	assert.Equal(t, 7, merged.ID)
	assert.Equal(t, "guest@example.com", merged.Email)
	assert.Equal(t, "Ana", merged.FirstName)
	assert.Equal(t, RoleHost, merged.Role)
	// Original untouched.
	assert.Equal(t, RoleGuest, identity.Role)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("ROLE_HOST")
	assert.NoError(t, err)
	assert.Equal(t, RoleHost, role)

	_, err = ParseRole("ROLE_SUPERUSER")
	assert.Error(t, err)
}
