package bookingRepo

import (
	"hirelink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines methods for booking data access. Bookings are
// looked up by surrogate id and, externally, by their unique booking number.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByNumber retrieves a booking by its externally visible booking number.
	GetByNumber(number string) (*models.Booking, error)
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// Update replaces an existing booking record.
	Update(booking *models.Booking) error
	// UpdateWithDocument patches a booking document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// ExistsByNumber reports whether a booking number is already taken.
	ExistsByNumber(number string) (bool, error)
	// CountByProviderAndStatuses counts a provider's bookings in any of the
	// given statuses. Used for capacity admission control.
	CountByProviderAndStatuses(providerID string, statuses []models.BookingStatus) (int64, error)
	// CountByProvider counts all bookings ever created for a provider.
	CountByProvider(providerID string) (int64, error)
	// ListByCustomer returns a customer's bookings, newest first; status
	// filters when non-empty.
	ListByCustomer(customerID string, status models.BookingStatus) ([]models.Booking, error)
	// ListByProvider returns a provider's bookings, newest first; status
	// filters when non-empty.
	ListByProvider(providerID string, status models.BookingStatus) ([]models.Booking, error)
}
