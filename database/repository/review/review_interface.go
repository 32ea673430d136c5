package reviewRepo

import "hirelink/models"

// ReviewRepository defines methods for review data access. The rating
// aggregate is always recomputed from the full visible-rating set, so the
// repository exposes that set directly.
type ReviewRepository interface {
	// GetByID retrieves a review by its unique ID.
	GetByID(id string) (*models.Review, error)
	// GetByBookingID retrieves the review attached to a booking.
	GetByBookingID(bookingID string) (*models.Review, error)
	// ExistsForBooking reports whether a booking already has a review.
	ExistsForBooking(bookingID string) (bool, error)
	// Create inserts a new review.
	Create(review *models.Review) error
	// Update replaces an existing review.
	Update(review *models.Review) error
	// VisibleRatingsByProvider returns every visible rating value for a
	// provider, the source set for the average-rating recomputation.
	VisibleRatingsByProvider(providerID string) ([]float64, error)
	// ListVisibleByProvider returns a provider's visible reviews, newest
	// first, capped at limit (0 means no cap).
	ListVisibleByProvider(providerID string, limit int64) ([]models.Review, error)
}
