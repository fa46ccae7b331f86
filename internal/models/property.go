package models

// Property represents a listing published by a host.
type Property struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	PricePerNight float64  `json:"pricePerNight"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	MaxGuests     int      `json:"maxGuests"`
	IsActive      bool     `json:"isActive"`
	Host          Identity `json:"host"`
	ImageURLs     []string `json:"imageUrls"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// PropertyInput holds the fields a host submits when creating or editing a
// listing. Image files travel separately as multipart parts.
type PropertyInput struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Address       string   `json:"address" validate:"required"`
	City          string   `json:"city" validate:"required"`
	Country       string   `json:"country" validate:"required"`
	PricePerNight float64  `json:"pricePerNight" validate:"gt=0"`
	Bedrooms      int      `json:"bedrooms" validate:"min=1"`
	Bathrooms     int      `json:"bathrooms" validate:"min=1"`
	MaxGuests     int      `json:"maxGuests" validate:"min=1"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
}

// PropertyFilters is the client-side predicate applied to an already fetched
// listing set. City and country are server query parameters instead and do
// not appear here.
type PropertyFilters struct {
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	MinBathrooms *int
	MinGuests    *int
}

// Matches reports whether the property passes every set filter. Min bounds
// are inclusive, and so is the max price bound.
func (f PropertyFilters) Matches(p Property) bool {
	if f.MinPrice != nil && p.PricePerNight < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.PricePerNight > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.MinBathrooms != nil && p.Bathrooms < *f.MinBathrooms {
		return false
	}
	if f.MinGuests != nil && p.MaxGuests < *f.MinGuests {
		return false
	}
	return true
}

// Apply returns the subset of properties passing the filters, preserving order.
func (f PropertyFilters) Apply(properties []Property) []Property {
	filtered := make([]Property, 0, len(properties))
	for _, p := range properties {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
