package providerRepo

import (
	"hirelink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepository defines methods for provider data access. Soft-deleted
// providers are invisible to every method except UpdateWithDocument.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update replaces an existing provider record.
	Update(provider *models.Provider) error
	// UpdateWithDocument patches a provider document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// SoftDelete flags a provider as deleted without removing the record.
	SoftDelete(id string) error
	// FindInArea returns available providers whose base coordinate falls in
	// the given bounding box. When providerIDs is non-nil the result is
	// further restricted to those ids (category pre-filter).
	FindInArea(minLat, maxLat, minLon, maxLon float64, providerIDs []string) ([]models.Provider, error)
	// FindByPincode returns available providers with an exact pincode match,
	// highest rated first.
	FindByPincode(pincode string) ([]models.Provider, error)
	// FindTopRated returns the highest-rated available providers.
	FindTopRated(limit int64) ([]models.Provider, error)
	// FindFeatured returns providers flagged as featured.
	FindFeatured() ([]models.Provider, error)
}
