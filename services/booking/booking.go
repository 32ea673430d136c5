package booking

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hirelink/models"
	"hirelink/utils"
)

// CreateBooking admits a new booking after validating the provider and
// service, enforcing the provider's active-booking capacity, and
// snapshotting the service price as the estimated amount.
func (s *DefaultBookingService) CreateBooking(req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	provider, err := s.ProviderRepo.GetByID(req.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.IsAvailable || provider.IsDeleted {
		return nil, models.ConflictError{Reason: "provider is not accepting bookings"}
	}

	svc, err := s.ServiceRepo.GetByID(req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID != provider.ID {
		return nil, models.ValidationError{Field: "serviceId", Reason: "service does not belong to the requested provider"}
	}
	if !svc.IsActive {
		return nil, models.ConflictError{Reason: "service is not currently offered"}
	}

	if req.Urgency == "" {
		req.Urgency = models.UrgencyNormal
	}
	if req.Urgency != models.UrgencyNormal && req.Urgency != models.UrgencyUrgent && req.Urgency != models.UrgencyEmergency {
		return nil, models.ValidationError{Field: "urgency", Reason: "must be NORMAL, URGENT or EMERGENCY"}
	}
	if req.ScheduledDate != "" {
		if _, err := time.Parse("2006-01-02", req.ScheduledDate); err != nil {
			return nil, models.ValidationError{Field: "scheduledDate", Reason: "must be YYYY-MM-DD"}
		}
	}

	limit := provider.MaxActiveBookings
	if limit <= 0 {
		limit = s.DefaultMaxActive
	}

	mu := s.providerLock(provider.ID)
	mu.Lock()
	defer mu.Unlock()

	active, err := s.BookingRepo.CountByProviderAndStatuses(provider.ID, models.ActiveStatuses)
	if err != nil {
		return nil, err
	}
	if active >= int64(limit) {
		return nil, models.CapacityExceededError{ProviderID: provider.ID, Limit: limit}
	}

	number, err := s.generateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:            uuid.New().String(),
		BookingNumber: number,
		CustomerID:    req.CustomerID,
		ProviderID:    provider.ID,
		ServiceID:     svc.ID,
		Status:        models.StatusPending,
		Urgency:       req.Urgency,

		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,

		ServiceAddress:   req.ServiceAddress,
		ServiceCity:      req.ServiceCity,
		ServiceState:     req.ServiceState,
		ServicePincode:   req.ServicePincode,
		ServiceLatitude:  req.ServiceLatitude,
		ServiceLongitude: req.ServiceLongitude,

		EstimatedAmount:     svc.BasePrice,
		SpecialInstructions: req.SpecialInstructions,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.BookingRepo.Create(booking); err != nil {
		return nil, err
	}

	if err := s.Recalculator.OnBookingChange(provider.ID); err != nil {
		logger.Warn("aggregate recalculation failed after booking create",
			zap.String("providerId", provider.ID), zap.Error(err))
	}
	if s.Notifier != nil {
		if err := s.Notifier.BookingCreated(booking); err != nil {
			logger.Warn("failed to enqueue booking created event",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("bookingNumber", booking.BookingNumber),
		zap.String("providerId", provider.ID))
	return booking, nil
}

// GetByID returns a booking by its id.
func (s *DefaultBookingService) GetByID(id string) (*models.Booking, error) {
	return s.BookingRepo.GetByID(id)
}

// GetByNumber returns a booking by its human-facing booking number.
func (s *DefaultBookingService) GetByNumber(number string) (*models.Booking, error) {
	return s.BookingRepo.GetByNumber(number)
}

// ListCustomerBookings lists a customer's bookings, optionally filtered
// by status (empty status means all).
func (s *DefaultBookingService) ListCustomerBookings(customerID string, status models.BookingStatus) ([]models.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, models.ValidationError{Field: "status", Reason: "unknown booking status"}
	}
	return s.BookingRepo.ListByCustomer(customerID, status)
}

// ListProviderBookings lists a provider's bookings, optionally filtered
// by status.
func (s *DefaultBookingService) ListProviderBookings(providerID string, status models.BookingStatus) ([]models.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, models.ValidationError{Field: "status", Reason: "unknown booking status"}
	}
	return s.BookingRepo.ListByProvider(providerID, status)
}
