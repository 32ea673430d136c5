package stats

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoryRepo "hirelink/database/repository/memory"
	"hirelink/models"
)

type fixture struct {
	recalc    *DefaultRecalculator
	providers *memoryRepo.ProviderRepo
	bookings  *memoryRepo.BookingRepo
	reviews   *memoryRepo.ReviewRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	providers := memoryRepo.NewProviderRepo()
	bookings := memoryRepo.NewBookingRepo()
	reviews := memoryRepo.NewReviewRepo()
	require.NoError(t, providers.Create(&models.Provider{ID: "prov-1", IsAvailable: true}))
	return &fixture{
		recalc:    &DefaultRecalculator{ProviderRepo: providers, BookingRepo: bookings, ReviewRepo: reviews},
		providers: providers,
		bookings:  bookings,
		reviews:   reviews,
	}
}

func (f *fixture) seedBooking(t *testing.T, n int, status models.BookingStatus) {
	t.Helper()
	id := fmt.Sprintf("bk-%d", n)
	require.NoError(t, f.bookings.Create(&models.Booking{
		ID:            id,
		BookingNumber: "HL-20260801-" + id,
		CustomerID:    "cust-1",
		ProviderID:    "prov-1",
		Status:        status,
	}))
}

func TestOnBookingChange(t *testing.T) {
	f := newFixture(t)
	f.seedBooking(t, 1, models.StatusCompleted)
	f.seedBooking(t, 2, models.StatusCompleted)
	f.seedBooking(t, 3, models.StatusCancelled)
	f.seedBooking(t, 4, models.StatusPending)

	require.NoError(t, f.recalc.OnBookingChange("prov-1"))

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 4, p.TotalBookings)
	assert.Equal(t, 2, p.CompletedBookings)
	assert.Equal(t, 1, p.CancelledBookings)
	assert.Equal(t, 0.5, p.CompletionRate)
}

func TestOnBookingChangeZeroBookings(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.recalc.OnBookingChange("prov-1"))

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalBookings)
	assert.Equal(t, 0.0, p.CompletionRate, "no bookings means rate zero, not NaN")
}

func TestOnBookingChangeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedBooking(t, 1, models.StatusCompleted)
	f.seedBooking(t, 2, models.StatusPending)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.recalc.OnBookingChange("prov-1"))
	}

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalBookings)
	assert.Equal(t, 1, p.CompletedBookings)
	assert.Equal(t, 0.5, p.CompletionRate)
}

func TestOnReviewChange(t *testing.T) {
	f := newFixture(t)
	for i, rating := range []float64{5, 4, 3} {
		require.NoError(t, f.reviews.Create(&models.Review{
			ID:         fmt.Sprintf("rev-%d", i),
			BookingID:  fmt.Sprintf("bk-%d", i),
			ProviderID: "prov-1",
			Rating:     rating,
			IsVisible:  true,
		}))
	}
	// Hidden reviews never feed the average.
	require.NoError(t, f.reviews.Create(&models.Review{
		ID: "rev-hidden", BookingID: "bk-h", ProviderID: "prov-1", Rating: 1, IsVisible: false,
	}))

	require.NoError(t, f.recalc.OnReviewChange("prov-1"))

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, p.AverageRating)
	assert.Equal(t, 3, p.TotalReviews)
}

func TestOnReviewChangeRounding(t *testing.T) {
	f := newFixture(t)
	for i, rating := range []float64{5, 5, 4} {
		require.NoError(t, f.reviews.Create(&models.Review{
			ID:         fmt.Sprintf("rev-%d", i),
			BookingID:  fmt.Sprintf("bk-%d", i),
			ProviderID: "prov-1",
			Rating:     rating,
			IsVisible:  true,
		}))
	}

	require.NoError(t, f.recalc.OnReviewChange("prov-1"))

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 4.67, p.AverageRating, "average is rounded to two decimals")
}

func TestConcurrentRecalculationConverges(t *testing.T) {
	f := newFixture(t)
	f.seedBooking(t, 1, models.StatusCompleted)
	f.seedBooking(t, 2, models.StatusCancelled)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.recalc.OnBookingChange("prov-1"))
		}()
	}
	wg.Wait()

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalBookings)
	assert.Equal(t, 0.5, p.CompletionRate)
}
