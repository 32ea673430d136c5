package tasks

import (
	"encoding/json"

	"hirelink/models"

	"github.com/hibiken/asynq"
)

// Task types for booking lifecycle events.
const (
	TypeBookingCreated       = "booking:created"
	TypeBookingStatusChanged = "booking:status_changed"
)

// BookingEventPayload carries the booking facts a notifier needs; delivery
// channels resolve the parties themselves.
type BookingEventPayload struct {
	BookingID      string               `json:"bookingId"`
	BookingNumber  string               `json:"bookingNumber"`
	CustomerID     string               `json:"customerId"`
	ProviderID     string               `json:"providerId"`
	Status         models.BookingStatus `json:"status"`
	PreviousStatus models.BookingStatus `json:"previousStatus,omitempty"`
}

// NewBookingCreatedTask builds the task enqueued after a successful creation.
func NewBookingCreatedTask(payload BookingEventPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingCreated, b), nil
}

// NewBookingStatusChangedTask builds the task enqueued after a status transition.
func NewBookingStatusChangedTask(payload BookingEventPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingStatusChanged, b), nil
}
