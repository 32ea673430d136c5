// Package offering manages the services a provider puts on the market.
package offering

import (
	"time"

	"github.com/google/uuid"

	providerRepo "hirelink/database/repository/provider"
	serviceRepo "hirelink/database/repository/service"
	"hirelink/models"
)

// CreateOfferingRequest lists everything needed to publish an offering.
type CreateOfferingRequest struct {
	ProviderID  string `json:"providerId" binding:"required"`
	CategoryID  string `json:"categoryId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	BasePrice float64  `json:"basePrice"`
	PriceType string   `json:"priceType" binding:"required"`
	MinPrice  *float64 `json:"minPrice"`
	MaxPrice  *float64 `json:"maxPrice"`

	EstimatedDurationMinutes int  `json:"estimatedDurationMinutes"`
	MaterialsIncluded        bool `json:"materialsIncluded"`
}

// UpdateOfferingRequest patches an offering. Nil fields keep their value.
type UpdateOfferingRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	BasePrice *float64 `json:"basePrice"`
	PriceType *string  `json:"priceType"`
	MinPrice  *float64 `json:"minPrice"`
	MaxPrice  *float64 `json:"maxPrice"`

	EstimatedDurationMinutes *int  `json:"estimatedDurationMinutes"`
	MaterialsIncluded        *bool `json:"materialsIncluded"`
	IsActive                 *bool `json:"isActive"`
}

// OfferingService manages provider service offerings.
type OfferingService interface {
	Create(req CreateOfferingRequest) (*models.Service, error)
	Update(id string, req UpdateOfferingRequest) (*models.Service, error)
	GetByID(id string) (*models.Service, error)
	ListByProvider(providerID string) ([]models.Service, error)
}

// DefaultOfferingService implements OfferingService.
type DefaultOfferingService struct {
	ServiceRepo  serviceRepo.ServiceRepository
	ProviderRepo providerRepo.ProviderRepository
}

// Create publishes a new active offering for an existing provider.
func (s *DefaultOfferingService) Create(req CreateOfferingRequest) (*models.Service, error) {
	if _, err := s.ProviderRepo.GetByID(req.ProviderID); err != nil {
		return nil, err
	}

	now := time.Now()
	svc := &models.Service{
		ID:          uuid.New().String(),
		ProviderID:  req.ProviderID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,

		BasePrice: req.BasePrice,
		PriceType: req.PriceType,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,

		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		MaterialsIncluded:        req.MaterialsIncluded,

		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	if err := s.ServiceRepo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Update applies a partial update and re-validates the pricing invariants.
func (s *DefaultOfferingService) Update(id string, req UpdateOfferingRequest) (*models.Service, error) {
	svc, err := s.ServiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.PriceType != nil {
		svc.PriceType = *req.PriceType
	}
	if req.MinPrice != nil {
		svc.MinPrice = req.MinPrice
	}
	if req.MaxPrice != nil {
		svc.MaxPrice = req.MaxPrice
	}
	if req.EstimatedDurationMinutes != nil {
		svc.EstimatedDurationMinutes = *req.EstimatedDurationMinutes
	}
	if req.MaterialsIncluded != nil {
		svc.MaterialsIncluded = *req.MaterialsIncluded
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	svc.UpdatedAt = time.Now()
	if err := s.ServiceRepo.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetByID returns one offering.
func (s *DefaultOfferingService) GetByID(id string) (*models.Service, error) {
	return s.ServiceRepo.GetByID(id)
}

// ListByProvider returns all of a provider's offerings, active or not.
func (s *DefaultOfferingService) ListByProvider(providerID string) ([]models.Service, error) {
	return s.ServiceRepo.ListByProvider(providerID)
}
