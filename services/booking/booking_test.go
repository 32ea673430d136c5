package booking

import (
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoryRepo "hirelink/database/repository/memory"
	"hirelink/models"
	"hirelink/services/stats"
)

// recordingNotifier captures lifecycle events instead of enqueuing them.
type recordingNotifier struct {
	mu      sync.Mutex
	created []string
	changed []string // "bookingID:previous->current"
}

func (n *recordingNotifier) BookingCreated(b *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b.ID)
	return nil
}

func (n *recordingNotifier) BookingStatusChanged(b *models.Booking, previous models.BookingStatus) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, fmt.Sprintf("%s:%s->%s", b.ID, previous, b.Status))
	return nil
}

type fixture struct {
	svc       *DefaultBookingService
	providers *memoryRepo.ProviderRepo
	bookings  *memoryRepo.BookingRepo
	services  *memoryRepo.ServiceRepo
	notifier  *recordingNotifier
}

func newFixture() *fixture {
	providers := memoryRepo.NewProviderRepo()
	bookings := memoryRepo.NewBookingRepo()
	services := memoryRepo.NewServiceRepo()
	reviews := memoryRepo.NewReviewRepo()
	notifier := &recordingNotifier{}

	svc := &DefaultBookingService{
		BookingRepo:  bookings,
		ProviderRepo: providers,
		ServiceRepo:  services,
		Recalculator: &stats.DefaultRecalculator{
			ProviderRepo: providers,
			BookingRepo:  bookings,
			ReviewRepo:   reviews,
		},
		Notifier:         notifier,
		DefaultMaxActive: 5,
	}
	return &fixture{svc: svc, providers: providers, bookings: bookings, services: services, notifier: notifier}
}

func (f *fixture) seedProvider(t *testing.T, id string, maxActive int) {
	t.Helper()
	require.NoError(t, f.providers.Create(&models.Provider{
		ID:                 id,
		BusinessName:       "Apex Plumbing",
		IsAvailable:        true,
		AvailabilityStatus: models.AvailabilityOnline,
		MaxActiveBookings:  maxActive,
	}))
}

func (f *fixture) seedService(t *testing.T, id, providerID string, price float64) {
	t.Helper()
	require.NoError(t, f.services.Create(&models.Service{
		ID:         id,
		ProviderID: providerID,
		CategoryID: "cat-plumbing",
		Name:       "Tap repair",
		BasePrice:  price,
		PriceType:  models.PriceFixed,
		IsActive:   true,
	}))
}

func createReq(providerID, serviceID string) CreateBookingRequest {
	return CreateBookingRequest{
		CustomerID:    "cust-1",
		ProviderID:    providerID,
		ServiceID:     serviceID,
		ScheduledDate: "2026-09-01",
		ScheduledTime: "10:00",
	}
}

func TestCreateBooking(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 3)
	f.seedService(t, "svc-1", "prov-1", 500)

	b, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, models.UrgencyNormal, b.Urgency)
	assert.Equal(t, 500.0, b.EstimatedAmount)
	assert.Regexp(t, regexp.MustCompile(`^HL-\d{8}-[0-9A-F]{8}$`), b.BookingNumber)

	byNumber, err := f.svc.GetByNumber(b.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, b.ID, byNumber.ID)

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalBookings)

	assert.Equal(t, []string{b.ID}, f.notifier.created)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 3)
	f.seedProvider(t, "prov-2", 3)
	f.seedService(t, "svc-1", "prov-1", 500)

	t.Run("unknown provider", func(t *testing.T) {
		_, err := f.svc.CreateBooking(createReq("prov-missing", "svc-1"))
		assert.ErrorAs(t, err, &models.NotFoundError{})
	})

	t.Run("service belongs to another provider", func(t *testing.T) {
		_, err := f.svc.CreateBooking(createReq("prov-2", "svc-1"))
		assert.ErrorAs(t, err, &models.ValidationError{})
	})

	t.Run("inactive service", func(t *testing.T) {
		require.NoError(t, f.services.Create(&models.Service{
			ID: "svc-off", ProviderID: "prov-1", CategoryID: "cat-plumbing",
			Name: "Retired", PriceType: models.PriceFixed,
		}))
		_, err := f.svc.CreateBooking(createReq("prov-1", "svc-off"))
		assert.ErrorAs(t, err, &models.ConflictError{})
	})

	t.Run("unavailable provider", func(t *testing.T) {
		require.NoError(t, f.providers.Create(&models.Provider{ID: "prov-off", IsAvailable: false}))
		f.seedService(t, "svc-2", "prov-off", 100)
		_, err := f.svc.CreateBooking(createReq("prov-off", "svc-2"))
		assert.ErrorAs(t, err, &models.ConflictError{})
	})

	t.Run("bad urgency", func(t *testing.T) {
		req := createReq("prov-1", "svc-1")
		req.Urgency = "WHENEVER"
		_, err := f.svc.CreateBooking(req)
		assert.ErrorAs(t, err, &models.ValidationError{})
	})

	t.Run("bad scheduled date", func(t *testing.T) {
		req := createReq("prov-1", "svc-1")
		req.ScheduledDate = "01-09-2026"
		_, err := f.svc.CreateBooking(req)
		assert.ErrorAs(t, err, &models.ValidationError{})
	})
}

func TestCreateBookingCapacity(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 2)
	f.seedService(t, "svc-1", "prov-1", 500)

	first, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	var capErr models.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "prov-1", capErr.ProviderID)
	assert.Equal(t, 2, capErr.Limit)

	// Cancelling one frees a slot.
	_, err = f.svc.UpdateStatus(first.ID, UpdateStatusRequest{
		Status:             models.StatusCancelled,
		Role:               models.RoleCustomer,
		CancellationReason: "changed plans",
	})
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	assert.NoError(t, err)
}

func TestCreateBookingConcurrentAdmission(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 1)
	f.seedService(t, "svc-1", "prov-1", 500)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorAs(t, err, &models.CapacityExceededError{})
		rejected++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
}

func TestUpdateStatusHappyPath(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 3)
	f.seedService(t, "svc-1", "prov-1", 500)

	b, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	for _, next := range []models.BookingStatus{
		models.StatusAccepted, models.StatusConfirmed, models.StatusInProgress, models.StatusPaused, models.StatusInProgress,
	} {
		b, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: next, Role: models.RoleProvider})
		require.NoError(t, err)
		assert.Equal(t, next, b.Status)
	}

	final := 420.0
	b, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{
		Status:      models.StatusCompleted,
		Role:        models.RoleProvider,
		FinalAmount: &final,
	})
	require.NoError(t, err)
	require.NotNil(t, b.FinalAmount)
	assert.Equal(t, 420.0, *b.FinalAmount)

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalBookings)
	assert.Equal(t, 1, p.CompletedBookings)
	assert.Equal(t, 1.0, p.CompletionRate)

	svc, err := f.services.GetByID("svc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, svc.TimesBooked)

	assert.Contains(t, f.notifier.changed, b.ID+":IN_PROGRESS->COMPLETED")
}

func TestUpdateStatusRejectsInvalidTransitions(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 3)
	f.seedService(t, "svc-1", "prov-1", 500)

	b, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	final := 100.0
	_, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: models.StatusCompleted, FinalAmount: &final})
	var trErr models.InvalidTransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, models.StatusPending, trErr.From)
	assert.Equal(t, models.StatusCompleted, trErr.To)

	_, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: "SHIPPED"})
	assert.ErrorAs(t, err, &models.ValidationError{})

	// Terminal states accept nothing further.
	b, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{
		Status: models.StatusCancelled, Role: models.RoleCustomer, CancellationReason: "dup",
	})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: models.StatusAccepted})
	assert.ErrorAs(t, err, &models.InvalidTransitionError{})
}

func TestUpdateStatusCancellationStamping(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 3)
	f.seedService(t, "svc-1", "prov-1", 500)

	b, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: models.StatusCancelled, Role: models.RoleProvider})
	assert.ErrorAs(t, err, &models.ValidationError{}, "cancellation without a reason must be rejected")

	b, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{
		Status:             models.StatusCancelled,
		Role:               models.RoleProvider,
		CancellationReason: "truck broke down",
	})
	require.NoError(t, err)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, models.RoleProvider, b.CancelledBy)
	assert.Equal(t, "truck broke down", b.CancellationReason)

	p, err := f.providers.GetByID("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.CancelledBookings)
	assert.Equal(t, 0.0, p.CompletionRate)
}

func TestUpdateStatusCompletionRequiresFinalAmount(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 3)
	f.seedService(t, "svc-1", "prov-1", 500)

	b, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)
	for _, next := range []models.BookingStatus{models.StatusAccepted, models.StatusConfirmed, models.StatusInProgress} {
		b, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: next})
		require.NoError(t, err)
	}

	_, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: models.StatusCompleted})
	assert.ErrorAs(t, err, &models.ValidationError{})

	// A final amount set earlier via UpdateDetails satisfies completion.
	amount := 380.0
	_, err = f.svc.UpdateDetails(b.ID, UpdateDetailsRequest{FinalAmount: &amount})
	require.NoError(t, err)
	b, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: models.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 380.0, *b.FinalAmount)
}

func TestDisputeResolution(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 3)
	f.seedService(t, "svc-1", "prov-1", 500)

	b, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	b, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: models.StatusDisputed})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisputed, b.Status)

	b, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: models.StatusRefunded, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRefunded, b.Status)

	_, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{Status: models.StatusDisputed})
	assert.ErrorAs(t, err, &models.InvalidTransitionError{})
}

func TestUpdateDetails(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 3)
	f.seedService(t, "svc-1", "prov-1", 500)

	b, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	material, labor, tax := 100.0, 300.0, 20.0
	summary := "replaced washer and resealed joint"
	b, err = f.svc.UpdateDetails(b.ID, UpdateDetailsRequest{
		MaterialCost: &material,
		LaborCost:    &labor,
		TaxAmount:    &tax,
		WorkSummary:  &summary,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, b.EstimatedAmount)
	assert.Equal(t, summary, b.WorkSummary)
	assert.Equal(t, 420.0, b.ComputeFinalAmount())

	negative := -5.0
	_, err = f.svc.UpdateDetails(b.ID, UpdateDetailsRequest{Discount: &negative})
	assert.ErrorAs(t, err, &models.ValidationError{})

	newDate := "2026-09-15"
	b, err = f.svc.UpdateDetails(b.ID, UpdateDetailsRequest{ScheduledDate: &newDate})
	require.NoError(t, err)
	assert.Equal(t, newDate, b.ScheduledDate)

	_, err = f.svc.UpdateStatus(b.ID, UpdateStatusRequest{
		Status: models.StatusCancelled, Role: models.RoleCustomer, CancellationReason: "moved out",
	})
	require.NoError(t, err)
	_, err = f.svc.UpdateDetails(b.ID, UpdateDetailsRequest{WorkSummary: &summary})
	assert.ErrorAs(t, err, &models.ConflictError{}, "terminal bookings are immutable")
}

func TestUpdateDetailsDoesNotOverwriteConcurrentTransition(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 50)
	f.seedService(t, "svc-1", "prov-1", 500)

	summary := "tightened the fittings"
	for i := 0; i < 50; i++ {
		b, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.svc.UpdateStatus(b.ID, UpdateStatusRequest{
				Status:             models.StatusCancelled,
				Role:               models.RoleCustomer,
				CancellationReason: "changed plans",
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			// May lose the race and find the booking terminal; it must
			// never resurrect it.
			_, _ = f.svc.UpdateDetails(b.ID, UpdateDetailsRequest{WorkSummary: &summary})
		}()
		wg.Wait()

		got, err := f.svc.GetByID(b.ID)
		require.NoError(t, err)
		require.Equal(t, models.StatusCancelled, got.Status)
		require.NotNil(t, got.CancelledAt)
		require.Equal(t, "changed plans", got.CancellationReason)
	}
}

func TestBookingNumberRetriesOnCollision(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 5)
	f.seedService(t, "svc-1", "prov-1", 500)

	taken, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	// First candidate collides with the existing number; the generator
	// must regenerate rather than fail or reuse it.
	takenSuffix := taken.BookingNumber[len(taken.BookingNumber)-8:]
	suffixes := []string{takenSuffix, "0D15EA5E"}
	f.svc.suffixFn = func() string {
		next := suffixes[0]
		if len(suffixes) > 1 {
			suffixes = suffixes[1:]
		}
		return next
	}

	b, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)
	assert.NotEqual(t, taken.BookingNumber, b.BookingNumber)
	assert.Equal(t, "0D15EA5E", b.BookingNumber[len(b.BookingNumber)-8:])
}

func TestBookingNumberExhaustedRetries(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 5)
	f.seedService(t, "svc-1", "prov-1", 500)

	taken, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	takenSuffix := taken.BookingNumber[len(taken.BookingNumber)-8:]
	f.svc.suffixFn = func() string { return takenSuffix }

	_, err = f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	assert.ErrorAs(t, err, &models.ConflictError{})
}

func TestDuplicateBookingNumberInsertConflicts(t *testing.T) {
	repo := memoryRepo.NewBookingRepo()
	require.NoError(t, repo.Create(&models.Booking{
		ID: "bk-1", BookingNumber: "HL-20260828-AAAAAAAA", Status: models.StatusPending,
	}))

	err := repo.Create(&models.Booking{
		ID: "bk-2", BookingNumber: "HL-20260828-AAAAAAAA", Status: models.StatusPending,
	})
	assert.ErrorAs(t, err, &models.ConflictError{})
}

func TestListings(t *testing.T) {
	f := newFixture()
	f.seedProvider(t, "prov-1", 5)
	f.seedService(t, "svc-1", "prov-1", 500)

	first, err := f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(createReq("prov-1", "svc-1"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(first.ID, UpdateStatusRequest{Status: models.StatusAccepted})
	require.NoError(t, err)

	all, err := f.svc.ListCustomerBookings("cust-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	accepted, err := f.svc.ListProviderBookings("prov-1", models.StatusAccepted)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, first.ID, accepted[0].ID)

	_, err = f.svc.ListProviderBookings("prov-1", "NOPE")
	assert.ErrorAs(t, err, &models.ValidationError{})
}
