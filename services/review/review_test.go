package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoryRepo "hirelink/database/repository/memory"
	"hirelink/models"
	"hirelink/services/stats"
)

type fixture struct {
	svc       *DefaultReviewService
	providers *memoryRepo.ProviderRepo
	bookings  *memoryRepo.BookingRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	providers := memoryRepo.NewProviderRepo()
	bookings := memoryRepo.NewBookingRepo()
	reviews := memoryRepo.NewReviewRepo()

	require.NoError(t, providers.Create(&models.Provider{
		ID: "prov-1", BusinessName: "Apex Plumbing", IsAvailable: true,
	}))

	svc := &DefaultReviewService{
		ReviewRepo:  reviews,
		BookingRepo: bookings,
		Recalculator: &stats.DefaultRecalculator{
			ProviderRepo: providers,
			BookingRepo:  bookings,
			ReviewRepo:   reviews,
		},
	}
	return &fixture{svc: svc, providers: providers, bookings: bookings}
}

func (f *fixture) seedBooking(t *testing.T, id string, status models.BookingStatus) {
	t.Helper()
	require.NoError(t, f.bookings.Create(&models.Booking{
		ID:            id,
		BookingNumber: "HL-20260801-" + id,
		CustomerID:    "cust-1",
		ProviderID:    "prov-1",
		ServiceID:     "svc-1",
		Status:        status,
		CreatedAt:     time.Now(),
	}))
}

func TestAddReview(t *testing.T) {
	f := newFixture(t)
	f.seedBooking(t, "bk-1", models.StatusCompleted)

	r, err := f.svc.AddReview(AddReviewRequest{
		BookingID: "bk-1", CustomerID: "cust-1", Rating: 4, Comment: "quick and tidy",
	})
	require.NoError(t, err)
	assert.True(t, r.IsVisible)
	assert.Equal(t, "prov-1", r.ProviderID)

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, p.AverageRating)
	assert.Equal(t, 1, p.TotalReviews)
}

func TestAddReviewGuards(t *testing.T) {
	f := newFixture(t)
	f.seedBooking(t, "bk-done", models.StatusCompleted)
	f.seedBooking(t, "bk-open", models.StatusInProgress)

	t.Run("booking not completed", func(t *testing.T) {
		_, err := f.svc.AddReview(AddReviewRequest{BookingID: "bk-open", CustomerID: "cust-1", Rating: 5})
		assert.ErrorAs(t, err, &models.ConflictError{})
	})

	t.Run("wrong customer", func(t *testing.T) {
		_, err := f.svc.AddReview(AddReviewRequest{BookingID: "bk-done", CustomerID: "cust-other", Rating: 5})
		assert.ErrorAs(t, err, &models.ValidationError{})
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := f.svc.AddReview(AddReviewRequest{BookingID: "bk-done", CustomerID: "cust-1", Rating: 6})
		assert.ErrorAs(t, err, &models.ValidationError{})
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := f.svc.AddReview(AddReviewRequest{BookingID: "bk-missing", CustomerID: "cust-1", Rating: 3})
		assert.ErrorAs(t, err, &models.NotFoundError{})
	})

	t.Run("one review per booking", func(t *testing.T) {
		_, err := f.svc.AddReview(AddReviewRequest{BookingID: "bk-done", CustomerID: "cust-1", Rating: 5})
		require.NoError(t, err)
		_, err = f.svc.AddReview(AddReviewRequest{BookingID: "bk-done", CustomerID: "cust-1", Rating: 2})
		assert.ErrorAs(t, err, &models.ConflictError{})
	})
}

func TestUpdateReviewRecomputesIdempotently(t *testing.T) {
	f := newFixture(t)
	f.seedBooking(t, "bk-1", models.StatusCompleted)
	f.seedBooking(t, "bk-2", models.StatusCompleted)

	first, err := f.svc.AddReview(AddReviewRequest{BookingID: "bk-1", CustomerID: "cust-1", Rating: 5})
	require.NoError(t, err)
	_, err = f.svc.AddReview(AddReviewRequest{BookingID: "bk-2", CustomerID: "cust-1", Rating: 4})
	require.NoError(t, err)

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, p.AverageRating)

	newRating := 2.0
	for i := 0; i < 3; i++ {
		_, err = f.svc.UpdateReview(first.ID, UpdateReviewRequest{Rating: &newRating})
		require.NoError(t, err)
	}

	p, err = f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.AverageRating, "repeated edits must converge on the same average")
	assert.Equal(t, 2, p.TotalReviews)

	bad := 0.0
	_, err = f.svc.UpdateReview(first.ID, UpdateReviewRequest{Rating: &bad})
	assert.ErrorAs(t, err, &models.ValidationError{})
}

func TestProviderReviewsVisibleOnly(t *testing.T) {
	f := newFixture(t)
	f.seedBooking(t, "bk-1", models.StatusCompleted)
	f.seedBooking(t, "bk-2", models.StatusCompleted)

	r1, err := f.svc.AddReview(AddReviewRequest{BookingID: "bk-1", CustomerID: "cust-1", Rating: 5})
	require.NoError(t, err)
	_, err = f.svc.AddReview(AddReviewRequest{BookingID: "bk-2", CustomerID: "cust-1", Rating: 3})
	require.NoError(t, err)

	// Hide one directly and confirm the listing and aggregate skip it.
	r1.IsVisible = false
	require.NoError(t, f.svc.ReviewRepo.Update(r1))
	require.NoError(t, f.svc.Recalculator.OnReviewChange("prov-1"))

	out, err := f.svc.ProviderReviews("prov-1", 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "bk-2", out[0].BookingID)

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.AverageRating)
	assert.Equal(t, 1, p.TotalReviews)
}
