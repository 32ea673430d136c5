package serviceRepo

import "hirelink/models"

// ServiceRepository defines methods for service offering data access.
type ServiceRepository interface {
	// GetByID retrieves a service offering by its unique ID.
	GetByID(id string) (*models.Service, error)
	// Create inserts a new service offering.
	Create(service *models.Service) error
	// Update replaces an existing service offering.
	Update(service *models.Service) error
	// ListByProvider returns all offerings of a provider.
	ListByProvider(providerID string) ([]models.Service, error)
	// ProviderIDsWithActiveCategory returns the distinct ids of providers
	// offering an active service in the given category. Used as the
	// category pre-filter for geo search.
	ProviderIDsWithActiveCategory(categoryID string) ([]string, error)
	// IncrementTimesBooked bumps the offering's booking counter.
	IncrementTimesBooked(id string) error
}
