package notification

import (
	"fmt"

	"hirelink/models"
	"hirelink/services/tasks"

	"github.com/hibiken/asynq"
)

// QueueNotificationService enqueues booking events onto the asynq queue for
// the notification worker to dispatch.
type QueueNotificationService struct {
	Client *asynq.Client
}

// NewQueueNotificationService wraps an asynq client.
func NewQueueNotificationService(client *asynq.Client) (*QueueNotificationService, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: asynq client is nil")
	}
	return &QueueNotificationService{Client: client}, nil
}

func payloadFor(booking *models.Booking, previous models.BookingStatus) tasks.BookingEventPayload {
	return tasks.BookingEventPayload{
		BookingID:      booking.ID,
		BookingNumber:  booking.BookingNumber,
		CustomerID:     booking.CustomerID,
		ProviderID:     booking.ProviderID,
		Status:         booking.Status,
		PreviousStatus: previous,
	}
}

func (s *QueueNotificationService) BookingCreated(booking *models.Booking) error {
	task, err := tasks.NewBookingCreatedTask(payloadFor(booking, ""))
	if err != nil {
		return fmt.Errorf("failed to build booking created task: %w", err)
	}
	if _, err := s.Client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue booking created task: %w", err)
	}
	return nil
}

func (s *QueueNotificationService) BookingStatusChanged(booking *models.Booking, previous models.BookingStatus) error {
	task, err := tasks.NewBookingStatusChangedTask(payloadFor(booking, previous))
	if err != nil {
		return fmt.Errorf("failed to build status changed task: %w", err)
	}
	if _, err := s.Client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue status changed task: %w", err)
	}
	return nil
}
