package booking

import (
	"sync"

	bookingRepo "hirelink/database/repository/booking"
	providerRepo "hirelink/database/repository/provider"
	serviceRepo "hirelink/database/repository/service"
	"hirelink/models"
	"hirelink/services/notification"
	"hirelink/services/stats"
)

// CreateBookingRequest carries everything needed to admit a new booking.
type CreateBookingRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	ProviderID string `json:"providerId" binding:"required"`
	ServiceID  string `json:"serviceId" binding:"required"`

	ScheduledDate string `json:"scheduledDate" binding:"required"` // YYYY-MM-DD
	ScheduledTime string `json:"scheduledTime"`                    // HH:MM

	ServiceAddress   string   `json:"serviceAddress"`
	ServiceCity      string   `json:"serviceCity"`
	ServiceState     string   `json:"serviceState"`
	ServicePincode   string   `json:"servicePincode"`
	ServiceLatitude  *float64 `json:"serviceLatitude"`
	ServiceLongitude *float64 `json:"serviceLongitude"`

	Urgency             string `json:"urgency"`
	SpecialInstructions string `json:"specialInstructions"`
}

// UpdateStatusRequest is a single transition request. Role identifies the
// caller for cancellation stamping.
type UpdateStatusRequest struct {
	Status             models.BookingStatus `json:"status" binding:"required"`
	Role               string               `json:"role"`
	CancellationReason string               `json:"cancellationReason"`
	FinalAmount        *float64             `json:"finalAmount"`
}

// UpdateDetailsRequest patches fulfilment fields on a non-terminal booking.
// Nil fields are left untouched.
type UpdateDetailsRequest struct {
	MaterialCost *float64 `json:"materialCost"`
	LaborCost    *float64 `json:"laborCost"`
	TravelCost   *float64 `json:"travelCost"`
	Discount     *float64 `json:"discount"`
	TaxAmount    *float64 `json:"taxAmount"`
	FinalAmount  *float64 `json:"finalAmount"`
	WorkSummary  *string  `json:"workSummary"`

	ScheduledDate *string `json:"scheduledDate"`
	ScheduledTime *string `json:"scheduledTime"`
}

// BookingService governs the booking lifecycle: admission, status
// transitions and fulfilment updates.
type BookingService interface {
	CreateBooking(req CreateBookingRequest) (*models.Booking, error)
	UpdateStatus(bookingID string, req UpdateStatusRequest) (*models.Booking, error)
	UpdateDetails(bookingID string, req UpdateDetailsRequest) (*models.Booking, error)
	GetByID(id string) (*models.Booking, error)
	GetByNumber(number string) (*models.Booking, error)
	ListCustomerBookings(customerID string, status models.BookingStatus) ([]models.Booking, error)
	ListProviderBookings(providerID string, status models.BookingStatus) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	BookingRepo  bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	ServiceRepo  serviceRepo.ServiceRepository
	Recalculator stats.Recalculator
	Notifier     notification.NotificationService

	// DefaultMaxActive applies to providers without a configured limit.
	DefaultMaxActive int

	// admission holds one mutex per provider, serializing the
	// count-then-insert sequence and active-count-changing transitions.
	admission sync.Map

	// suffixFn overrides the random booking number suffix; tests use it
	// to force collisions.
	suffixFn func() string
}

func (s *DefaultBookingService) providerLock(providerID string) *sync.Mutex {
	mu, _ := s.admission.LoadOrStore(providerID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
