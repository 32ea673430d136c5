package models

import "time"

// Price types for a service offering.
const (
	PriceFixed      = "FIXED"
	PriceHourly     = "HOURLY"
	PricePerUnit    = "PER_UNIT"
	PriceNegotiable = "NEGOTIABLE"
)

// Service is a single offering: it belongs to exactly one provider and one
// category and carries the base price snapshotted into bookings at creation.
type Service struct {
	ID          string `bson:"id" json:"id"`
	ProviderID  string `bson:"providerId" json:"providerId"`
	CategoryID  string `bson:"categoryId" json:"categoryId"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description,omitempty"`

	BasePrice float64  `bson:"basePrice" json:"basePrice"`
	PriceType string   `bson:"priceType" json:"priceType"`
	MinPrice  *float64 `bson:"minPrice,omitempty" json:"minPrice,omitempty"`
	MaxPrice  *float64 `bson:"maxPrice,omitempty" json:"maxPrice,omitempty"`

	EstimatedDurationMinutes int  `bson:"estimatedDurationMinutes" json:"estimatedDurationMinutes,omitempty"`
	MaterialsIncluded        bool `bson:"materialsIncluded" json:"materialsIncluded"`

	IsActive    bool `bson:"isActive" json:"isActive"`
	TimesBooked int  `bson:"timesBooked" json:"timesBooked"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Validate checks the pricing invariants: no negative amounts, and
// minPrice <= maxPrice when both are set.
func (s *Service) Validate() error {
	if s.ProviderID == "" {
		return ValidationError{Field: "providerId", Reason: "required"}
	}
	if s.CategoryID == "" {
		return ValidationError{Field: "categoryId", Reason: "required"}
	}
	if s.Name == "" {
		return ValidationError{Field: "name", Reason: "required"}
	}
	if s.BasePrice < 0 {
		return ValidationError{Field: "basePrice", Reason: "must not be negative"}
	}
	if s.MinPrice != nil && *s.MinPrice < 0 {
		return ValidationError{Field: "minPrice", Reason: "must not be negative"}
	}
	if s.MaxPrice != nil && *s.MaxPrice < 0 {
		return ValidationError{Field: "maxPrice", Reason: "must not be negative"}
	}
	if s.MinPrice != nil && s.MaxPrice != nil && *s.MinPrice > *s.MaxPrice {
		return ValidationError{Field: "minPrice", Reason: "must not exceed maxPrice"}
	}
	switch s.PriceType {
	case PriceFixed, PriceHourly, PricePerUnit, PriceNegotiable:
	default:
		return ValidationError{Field: "priceType", Reason: "unknown price type " + s.PriceType}
	}
	return nil
}
