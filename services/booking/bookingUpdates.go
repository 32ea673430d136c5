package booking

import (
	"time"

	"go.uber.org/zap"

	"hirelink/models"
	"hirelink/utils"
)

// UpdateStatus applies a single lifecycle transition. Transitions not in
// the state table are rejected. Cancellation stamps who cancelled and why;
// completion requires a final amount and refreshes the provider's
// aggregates.
func (s *DefaultBookingService) UpdateStatus(bookingID string, req UpdateStatusRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if !req.Status.Valid() {
		return nil, models.ValidationError{Field: "status", Reason: "unknown booking status"}
	}

	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	// Status changes move bookings in and out of the active set, so they
	// share the provider's admission lock with CreateBooking.
	mu := s.providerLock(b.ProviderID)
	mu.Lock()
	defer mu.Unlock()

	// Re-read under the lock; a concurrent transition may have landed.
	b, err = s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	previous := b.Status
	if !previous.CanTransitionTo(req.Status) {
		return nil, models.InvalidTransitionError{From: previous, To: req.Status}
	}

	now := time.Now()
	switch req.Status {
	case models.StatusCancelled:
		if req.CancellationReason == "" {
			return nil, models.ValidationError{Field: "cancellationReason", Reason: "required when cancelling"}
		}
		role := req.Role
		if role == "" {
			role = models.RoleCustomer
		}
		b.CancelledAt = &now
		b.CancelledBy = role
		b.CancellationReason = req.CancellationReason
	case models.StatusCompleted:
		if req.FinalAmount != nil {
			if *req.FinalAmount < 0 {
				return nil, models.ValidationError{Field: "finalAmount", Reason: "must not be negative"}
			}
			b.FinalAmount = req.FinalAmount
		}
		if b.FinalAmount == nil {
			return nil, models.ValidationError{Field: "finalAmount", Reason: "required to complete a booking"}
		}
	}

	b.Status = req.Status
	b.UpdatedAt = now
	if err := s.BookingRepo.Update(b); err != nil {
		return nil, err
	}

	if statusAffectsAggregates(req.Status) {
		if err := s.Recalculator.OnBookingChange(b.ProviderID); err != nil {
			logger.Warn("aggregate recalculation failed after status change",
				zap.String("providerId", b.ProviderID), zap.Error(err))
		}
	}
	if req.Status == models.StatusCompleted {
		if err := s.ServiceRepo.IncrementTimesBooked(b.ServiceID); err != nil {
			logger.Warn("failed to increment service booking counter",
				zap.String("serviceId", b.ServiceID), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.BookingStatusChanged(b, previous); err != nil {
			logger.Warn("failed to enqueue booking status event",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}

	logger.Info("booking status changed",
		zap.String("bookingId", b.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(req.Status)))
	return b, nil
}

// statusAffectsAggregates reports whether entering the given status changes
// the provider's completion or cancellation counts.
func statusAffectsAggregates(status models.BookingStatus) bool {
	switch status {
	case models.StatusCompleted, models.StatusCancelled, models.StatusRejected, models.StatusRefunded:
		return true
	}
	return false
}

// UpdateDetails patches fulfilment fields on a booking that has not reached
// a terminal state. Nil request fields are left unchanged.
func (s *DefaultBookingService) UpdateDetails(bookingID string, req UpdateDetailsRequest) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	// The write below replaces the whole document, so it shares the
	// provider lock with UpdateStatus; otherwise a transition landing
	// between read and write would be silently overwritten.
	mu := s.providerLock(b.ProviderID)
	mu.Lock()
	defer mu.Unlock()

	b, err = s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, models.ConflictError{Reason: "booking is in terminal state " + string(b.Status)}
	}

	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"materialCost", req.MaterialCost},
		{"laborCost", req.LaborCost},
		{"travelCost", req.TravelCost},
		{"discount", req.Discount},
		{"taxAmount", req.TaxAmount},
		{"finalAmount", req.FinalAmount},
	} {
		if f.value != nil && *f.value < 0 {
			return nil, models.ValidationError{Field: f.name, Reason: "must not be negative"}
		}
	}

	if req.MaterialCost != nil {
		b.MaterialCost = req.MaterialCost
	}
	if req.LaborCost != nil {
		b.LaborCost = req.LaborCost
	}
	if req.TravelCost != nil {
		b.TravelCost = req.TravelCost
	}
	if req.Discount != nil {
		b.Discount = req.Discount
	}
	if req.TaxAmount != nil {
		b.TaxAmount = req.TaxAmount
	}
	if req.FinalAmount != nil {
		b.FinalAmount = req.FinalAmount
	}
	if req.WorkSummary != nil {
		b.WorkSummary = *req.WorkSummary
	}
	if req.ScheduledDate != nil {
		if _, err := time.Parse("2006-01-02", *req.ScheduledDate); err != nil {
			return nil, models.ValidationError{Field: "scheduledDate", Reason: "must be YYYY-MM-DD"}
		}
		b.ScheduledDate = *req.ScheduledDate
	}
	if req.ScheduledTime != nil {
		b.ScheduledTime = *req.ScheduledTime
	}

	b.UpdatedAt = time.Now()
	if err := s.BookingRepo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}
