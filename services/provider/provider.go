// Package provider covers provider self-service: profile updates,
// availability toggling and the curated listings.
package provider

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	providerRepo "hirelink/database/repository/provider"
	serviceRepo "hirelink/database/repository/service"
	"hirelink/models"
)

// UpdateProfileRequest patches a provider's profile. Nil fields keep their
// current value.
type UpdateProfileRequest struct {
	BusinessName        *string   `json:"businessName"`
	BusinessDescription *string   `json:"businessDescription"`
	Tagline             *string   `json:"tagline"`
	Phone               *string   `json:"phone"`
	ProfileImageURL     *string   `json:"profileImageUrl"`
	ExperienceYears     *int      `json:"experienceYears"`
	Specializations     *[]string `json:"specializations"`
	BasePincode         *string   `json:"basePincode"`
	BaseAddress         *string   `json:"baseAddress"`
	BaseLatitude        *float64  `json:"baseLatitude"`
	BaseLongitude       *float64  `json:"baseLongitude"`
	ServiceRadiusKm     *float64  `json:"serviceRadiusKm"`
}

// ProviderService manages provider accounts.
type ProviderService interface {
	GetByID(id string) (*models.Provider, error)
	UpdateProfile(id string, req UpdateProfileRequest) (*models.Provider, error)
	UpdateAvailability(id string, available bool, status string) error
	TopRated(limit int64) ([]models.ProviderSummary, error)
	Featured() ([]models.ProviderSummary, error)
	SoftDelete(id string) error
}

// DefaultProviderService implements ProviderService.
type DefaultProviderService struct {
	ProviderRepo providerRepo.ProviderRepository
	ServiceRepo  serviceRepo.ServiceRepository
}

// GetByID returns a provider by id. Soft-deleted providers read as missing.
func (s *DefaultProviderService) GetByID(id string) (*models.Provider, error) {
	return s.ProviderRepo.GetByID(id)
}

// UpdateProfile applies a partial profile update and recomputes the
// profile completion percentage. Only the profile fields are written back;
// the rolling aggregates belong to the recalculator and a full-document
// write here could clobber a refresh landing after the read.
func (s *DefaultProviderService) UpdateProfile(id string, req UpdateProfileRequest) (*models.Provider, error) {
	p, err := s.ProviderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.BusinessName != nil {
		p.BusinessName = *req.BusinessName
		set["businessName"] = p.BusinessName
	}
	if req.BusinessDescription != nil {
		p.BusinessDescription = *req.BusinessDescription
		set["businessDescription"] = p.BusinessDescription
	}
	if req.Tagline != nil {
		p.Tagline = *req.Tagline
		set["tagline"] = p.Tagline
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
		set["phone"] = p.Phone
	}
	if req.ProfileImageURL != nil {
		p.ProfileImageURL = *req.ProfileImageURL
		set["profileImageUrl"] = p.ProfileImageURL
	}
	if req.ExperienceYears != nil {
		if *req.ExperienceYears < 0 {
			return nil, models.ValidationError{Field: "experienceYears", Reason: "must not be negative"}
		}
		p.ExperienceYears = *req.ExperienceYears
		set["experienceYears"] = p.ExperienceYears
	}
	if req.Specializations != nil {
		p.Specializations = *req.Specializations
		set["specializations"] = p.Specializations
	}
	if req.BasePincode != nil {
		p.BasePincode = *req.BasePincode
		set["basePincode"] = p.BasePincode
	}
	if req.BaseAddress != nil {
		p.BaseAddress = *req.BaseAddress
		set["baseAddress"] = p.BaseAddress
	}
	if req.BaseLatitude != nil {
		if *req.BaseLatitude < -90 || *req.BaseLatitude > 90 {
			return nil, models.ValidationError{Field: "baseLatitude", Reason: "must be within [-90, 90]"}
		}
		p.BaseLatitude = req.BaseLatitude
		set["baseLatitude"] = *req.BaseLatitude
	}
	if req.BaseLongitude != nil {
		if *req.BaseLongitude < -180 || *req.BaseLongitude > 180 {
			return nil, models.ValidationError{Field: "baseLongitude", Reason: "must be within [-180, 180]"}
		}
		p.BaseLongitude = req.BaseLongitude
		set["baseLongitude"] = *req.BaseLongitude
	}
	if req.ServiceRadiusKm != nil {
		if *req.ServiceRadiusKm < 0 {
			return nil, models.ValidationError{Field: "serviceRadiusKm", Reason: "must not be negative"}
		}
		p.ServiceRadiusKm = *req.ServiceRadiusKm
		set["serviceRadiusKm"] = p.ServiceRadiusKm
	}

	completion, err := s.profileCompletion(p)
	if err != nil {
		return nil, err
	}
	p.ProfileCompletionPercentage = completion
	set["profileCompletionPercentage"] = completion

	p.UpdatedAt = time.Now()
	set["updatedAt"] = p.UpdatedAt
	if err := s.ProviderRepo.UpdateWithDocument(id, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return p, nil
}

// profileCompletion scores a profile out of ten weighted checks. Having at
// least one service offering counts double.
func (s *DefaultProviderService) profileCompletion(p *models.Provider) (int, error) {
	score, total := 0, 10

	if p.BusinessName != "" {
		score++
	}
	if p.BusinessDescription != "" {
		score++
	}
	if p.Tagline != "" {
		score++
	}
	if p.ExperienceYears > 0 {
		score++
	}
	if len(p.Specializations) > 0 {
		score++
	}
	if p.BasePincode != "" {
		score++
	}
	if p.ProfileImageURL != "" {
		score++
	}
	if p.KYCStatus == models.KYCVerified {
		score++
	}
	offerings, err := s.ServiceRepo.ListByProvider(p.ID)
	if err != nil {
		return 0, err
	}
	if len(offerings) > 0 {
		score += 2
	}

	return score * 100 / total, nil
}

// UpdateAvailability flips the availability flag. When no explicit status
// is given it defaults to ONLINE or OFFLINE from the flag.
func (s *DefaultProviderService) UpdateAvailability(id string, available bool, status string) error {
	if _, err := s.ProviderRepo.GetByID(id); err != nil {
		return err
	}

	if status == "" {
		if available {
			status = models.AvailabilityOnline
		} else {
			status = models.AvailabilityOffline
		}
	} else {
		switch status {
		case models.AvailabilityOnline, models.AvailabilityOffline, models.AvailabilityBusy, models.AvailabilityOnBreak:
		default:
			return models.ValidationError{Field: "status", Reason: "unknown availability status " + status}
		}
	}

	return s.ProviderRepo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"isAvailable":        available,
		"availabilityStatus": status,
		"updatedAt":          time.Now(),
	}})
}

// TopRated lists the highest rated available providers.
func (s *DefaultProviderService) TopRated(limit int64) ([]models.ProviderSummary, error) {
	providers, err := s.ProviderRepo.FindTopRated(limit)
	if err != nil {
		return nil, err
	}
	return summaries(providers), nil
}

// Featured lists the curated featured providers.
func (s *DefaultProviderService) Featured() ([]models.ProviderSummary, error) {
	providers, err := s.ProviderRepo.FindFeatured()
	if err != nil {
		return nil, err
	}
	return summaries(providers), nil
}

// SoftDelete flags the provider as deleted and takes it off the market.
// Records are never hard-deleted.
func (s *DefaultProviderService) SoftDelete(id string) error {
	if _, err := s.ProviderRepo.GetByID(id); err != nil {
		return err
	}
	return s.ProviderRepo.SoftDelete(id)
}

func summaries(providers []models.Provider) []models.ProviderSummary {
	out := make([]models.ProviderSummary, 0, len(providers))
	for i := range providers {
		out = append(out, providers[i].ToSummary())
	}
	return out
}
