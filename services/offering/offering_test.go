package offering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoryRepo "hirelink/database/repository/memory"
	"hirelink/models"
)

func newFixture(t *testing.T) *DefaultOfferingService {
	t.Helper()
	providers := memoryRepo.NewProviderRepo()
	require.NoError(t, providers.Create(&models.Provider{ID: "prov-1", IsAvailable: true}))
	return &DefaultOfferingService{
		ServiceRepo:  memoryRepo.NewServiceRepo(),
		ProviderRepo: providers,
	}
}

func TestCreateOffering(t *testing.T) {
	svc := newFixture(t)

	created, err := svc.Create(CreateOfferingRequest{
		ProviderID: "prov-1",
		CategoryID: "cat-plumbing",
		Name:       "Tap repair",
		BasePrice:  500,
		PriceType:  models.PriceFixed,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, 0, created.TimesBooked)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tap repair", got.Name)

	_, err = svc.Create(CreateOfferingRequest{
		ProviderID: "prov-missing", CategoryID: "cat-plumbing",
		Name: "Nope", PriceType: models.PriceFixed,
	})
	assert.ErrorAs(t, err, &models.NotFoundError{})
}

func TestCreateOfferingPriceValidation(t *testing.T) {
	svc := newFixture(t)
	min, max := 400.0, 300.0

	_, err := svc.Create(CreateOfferingRequest{
		ProviderID: "prov-1", CategoryID: "cat-plumbing", Name: "Tap repair",
		BasePrice: -1, PriceType: models.PriceFixed,
	})
	assert.ErrorAs(t, err, &models.ValidationError{})

	_, err = svc.Create(CreateOfferingRequest{
		ProviderID: "prov-1", CategoryID: "cat-plumbing", Name: "Tap repair",
		BasePrice: 350, PriceType: models.PriceHourly, MinPrice: &min, MaxPrice: &max,
	})
	assert.ErrorAs(t, err, &models.ValidationError{}, "minPrice above maxPrice must be rejected")

	_, err = svc.Create(CreateOfferingRequest{
		ProviderID: "prov-1", CategoryID: "cat-plumbing", Name: "Tap repair",
		BasePrice: 350, PriceType: "BARTER",
	})
	assert.ErrorAs(t, err, &models.ValidationError{})
}

func TestUpdateOffering(t *testing.T) {
	svc := newFixture(t)
	created, err := svc.Create(CreateOfferingRequest{
		ProviderID: "prov-1", CategoryID: "cat-plumbing", Name: "Tap repair",
		BasePrice: 500, PriceType: models.PriceFixed,
	})
	require.NoError(t, err)

	newPrice := 650.0
	inactive := false
	updated, err := svc.Update(created.ID, UpdateOfferingRequest{
		BasePrice: &newPrice,
		IsActive:  &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 650.0, updated.BasePrice)
	assert.False(t, updated.IsActive)

	bad := -10.0
	_, err = svc.Update(created.ID, UpdateOfferingRequest{BasePrice: &bad})
	assert.ErrorAs(t, err, &models.ValidationError{})

	// Deactivated offerings drop out of the category pre-filter.
	ids, err := svc.ServiceRepo.ProviderIDsWithActiveCategory("cat-plumbing")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListByProvider(t *testing.T) {
	svc := newFixture(t)
	for _, name := range []string{"Tap repair", "Pipe replacement"} {
		_, err := svc.Create(CreateOfferingRequest{
			ProviderID: "prov-1", CategoryID: "cat-plumbing", Name: name,
			BasePrice: 500, PriceType: models.PriceFixed,
		})
		require.NoError(t, err)
	}

	out, err := svc.ListByProvider("prov-1")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
