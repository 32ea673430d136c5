package search

import "hirelink/models"

// NearbyQuery describes a geo search: center, radius and an optional
// category restriction.
type NearbyQuery struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	RadiusKm   float64 `json:"radiusKm"`
	CategoryID string  `json:"categoryId,omitempty"`
}

// SearchService finds bookable providers for a customer location.
type SearchService interface {
	// FindNearby returns available providers within the query radius,
	// nearest first. No match yields an empty list, not an error.
	FindNearby(query NearbyQuery) ([]models.ProviderSummary, error)
	// FindByPincode returns available providers with an exact pincode
	// match, highest rated first. Used by clients without coordinates.
	FindByPincode(pincode string) ([]models.ProviderSummary, error)
}
