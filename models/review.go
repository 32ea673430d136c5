package models

import "time"

// Review is one-to-one with a completed booking. Only visible reviews feed
// the provider's rating aggregate.
type Review struct {
	ID         string `bson:"id" json:"id"`
	BookingID  string `bson:"bookingId" json:"bookingId"`
	CustomerID string `bson:"customerId" json:"customerId"`
	ProviderID string `bson:"providerId" json:"providerId"`

	Rating  float64 `bson:"rating" json:"rating"` // 1..5
	Title   string  `bson:"title" json:"title,omitempty"`
	Comment string  `bson:"comment" json:"comment,omitempty"`

	IsVisible bool `bson:"isVisible" json:"isVisible"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Validate checks the rating range invariant.
func (r *Review) Validate() error {
	if r.BookingID == "" {
		return ValidationError{Field: "bookingId", Reason: "required"}
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	return nil
}
