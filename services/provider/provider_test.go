package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	memoryRepo "hirelink/database/repository/memory"
	"hirelink/models"
)

func newFixture(t *testing.T) (*DefaultProviderService, *memoryRepo.ProviderRepo, *memoryRepo.ServiceRepo) {
	t.Helper()
	providers := memoryRepo.NewProviderRepo()
	services := memoryRepo.NewServiceRepo()
	svc := &DefaultProviderService{ProviderRepo: providers, ServiceRepo: services}
	return svc, providers, services
}

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }

func TestUpdateProfileCompletion(t *testing.T) {
	svc, providers, services := newFixture(t)
	require.NoError(t, providers.Create(&models.Provider{ID: "prov-1", IsAvailable: true}))

	// Bare profile scores nothing.
	p, err := svc.UpdateProfile("prov-1", UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, p.ProfileCompletionPercentage)

	p, err = svc.UpdateProfile("prov-1", UpdateProfileRequest{
		BusinessName:        strPtr("Apex Plumbing"),
		BusinessDescription: strPtr("Residential plumbing"),
		Tagline:             strPtr("No drip left behind"),
		ExperienceYears:     intPtr(7),
		Specializations:     &[]string{"bathrooms"},
		BasePincode:         strPtr("560001"),
		ProfileImageURL:     strPtr("https://cdn.example.com/p1.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, 70, p.ProfileCompletionPercentage)

	// KYC verification and an active offering add the remaining points.
	p.KYCStatus = models.KYCVerified
	require.NoError(t, providers.Update(p))
	require.NoError(t, services.Create(&models.Service{
		ID: "svc-1", ProviderID: "prov-1", CategoryID: "cat-1",
		Name: "Tap repair", PriceType: models.PriceFixed, IsActive: true,
	}))

	p, err = svc.UpdateProfile("prov-1", UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, 100, p.ProfileCompletionPercentage)
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, providers, _ := newFixture(t)
	require.NoError(t, providers.Create(&models.Provider{ID: "prov-1", IsAvailable: true}))

	_, err := svc.UpdateProfile("prov-1", UpdateProfileRequest{BaseLatitude: f64Ptr(91)})
	assert.ErrorAs(t, err, &models.ValidationError{})

	_, err = svc.UpdateProfile("prov-1", UpdateProfileRequest{BaseLongitude: f64Ptr(-181)})
	assert.ErrorAs(t, err, &models.ValidationError{})

	_, err = svc.UpdateProfile("prov-1", UpdateProfileRequest{ServiceRadiusKm: f64Ptr(-1)})
	assert.ErrorAs(t, err, &models.ValidationError{})

	_, err = svc.UpdateProfile("prov-missing", UpdateProfileRequest{})
	assert.ErrorAs(t, err, &models.NotFoundError{})
}

// refreshAfterReadRepo patches aggregate fields right after each read,
// simulating a recalculation landing between a profile read and its write.
type refreshAfterReadRepo struct {
	*memoryRepo.ProviderRepo
	refresh bson.M
}

func (r *refreshAfterReadRepo) GetByID(id string) (*models.Provider, error) {
	p, err := r.ProviderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.ProviderRepo.UpdateWithDocument(id, bson.M{"$set": r.refresh}); err != nil {
		return nil, err
	}
	return p, nil
}

func TestUpdateProfileKeepsConcurrentAggregates(t *testing.T) {
	providers := memoryRepo.NewProviderRepo()
	require.NoError(t, providers.Create(&models.Provider{ID: "prov-1", IsAvailable: true}))

	racing := &refreshAfterReadRepo{
		ProviderRepo: providers,
		refresh:      bson.M{"averageRating": 4.8, "totalReviews": 12, "completionRate": 0.9},
	}
	svc := &DefaultProviderService{ProviderRepo: racing, ServiceRepo: memoryRepo.NewServiceRepo()}

	_, err := svc.UpdateProfile("prov-1", UpdateProfileRequest{
		Tagline:         strPtr("Same-day fixes"),
		ServiceRadiusKm: f64Ptr(12),
	})
	require.NoError(t, err)

	p, err := providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, "Same-day fixes", p.Tagline)
	assert.Equal(t, 12.0, p.ServiceRadiusKm)
	assert.Equal(t, 4.8, p.AverageRating)
	assert.Equal(t, 12, p.TotalReviews)
	assert.Equal(t, 0.9, p.CompletionRate)
}

func TestUpdateAvailability(t *testing.T) {
	svc, providers, _ := newFixture(t)
	require.NoError(t, providers.Create(&models.Provider{ID: "prov-1", IsAvailable: true}))

	require.NoError(t, svc.UpdateAvailability("prov-1", false, ""))
	p, err := providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.False(t, p.IsAvailable)
	assert.Equal(t, models.AvailabilityOffline, p.AvailabilityStatus)

	require.NoError(t, svc.UpdateAvailability("prov-1", true, models.AvailabilityBusy))
	p, err = providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.True(t, p.IsAvailable)
	assert.Equal(t, models.AvailabilityBusy, p.AvailabilityStatus)

	err = svc.UpdateAvailability("prov-1", true, "AWAY")
	assert.ErrorAs(t, err, &models.ValidationError{})
}

func TestListingsAndSoftDelete(t *testing.T) {
	svc, providers, _ := newFixture(t)
	require.NoError(t, providers.Create(&models.Provider{
		ID: "prov-a", BusinessName: "Apex", IsAvailable: true, AverageRating: 4.7, IsFeatured: true,
	}))
	require.NoError(t, providers.Create(&models.Provider{
		ID: "prov-b", BusinessName: "Budget", IsAvailable: true, AverageRating: 3.9,
	}))

	top, err := svc.TopRated(10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "prov-a", top[0].ProviderID)

	featured, err := svc.Featured()
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "prov-a", featured[0].ProviderID)

	require.NoError(t, svc.SoftDelete("prov-a"))
	_, err = svc.GetByID("prov-a")
	assert.ErrorAs(t, err, &models.NotFoundError{})

	top, err = svc.TopRated(10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "prov-b", top[0].ProviderID)
}
