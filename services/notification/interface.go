package notification

import "hirelink/models"

// NotificationService emits booking lifecycle events. Implementations are
// best-effort: a delivery failure must never roll back the state change
// that produced the event.
type NotificationService interface {
	BookingCreated(booking *models.Booking) error
	BookingStatusChanged(booking *models.Booking, previous models.BookingStatus) error
}
