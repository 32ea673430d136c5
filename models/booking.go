package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusAccepted   BookingStatus = "ACCEPTED"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusPaused     BookingStatus = "PAUSED"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusRejected   BookingStatus = "REJECTED"
	StatusCancelled  BookingStatus = "CANCELLED"
	StatusDisputed   BookingStatus = "DISPUTED"
	StatusRefunded   BookingStatus = "REFUNDED"
)

// ActiveStatuses are the states counted against a provider's
// MaxActiveBookings admission limit.
var ActiveStatuses = []BookingStatus{StatusPending, StatusAccepted, StatusInProgress}

// transitions is the full state table. A transition absent from this table
// is invalid. DISPUTED resolves to CANCELLED, REFUNDED or COMPLETED.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusAccepted, StatusRejected, StatusCancelled, StatusDisputed},
	StatusAccepted:   {StatusConfirmed, StatusRejected, StatusCancelled, StatusDisputed},
	StatusConfirmed:  {StatusInProgress, StatusRejected, StatusCancelled, StatusDisputed},
	StatusInProgress: {StatusPaused, StatusCompleted, StatusDisputed},
	StatusPaused:     {StatusInProgress, StatusDisputed},
	StatusDisputed:   {StatusCancelled, StatusRefunded, StatusCompleted},
	StatusCompleted:  {},
	StatusRejected:   {},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s BookingStatus) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether s -> next is a permitted transition.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Urgency levels for a booking.
const (
	UrgencyNormal    = "NORMAL"
	UrgencyUrgent    = "URGENT"
	UrgencyEmergency = "EMERGENCY"
)

// Caller roles recorded on cancellation.
const (
	RoleCustomer = "CUSTOMER"
	RoleProvider = "PROVIDER"
	RoleAdmin    = "ADMIN"
)

// Booking references its customer, provider and service by id only; the
// repositories resolve the references. BookingNumber is assigned once at
// creation, is unique and is never reused.
type Booking struct {
	ID            string `bson:"id" json:"id"`
	BookingNumber string `bson:"bookingNumber" json:"bookingNumber"`
	CustomerID    string `bson:"customerId" json:"customerId"`
	ProviderID    string `bson:"providerId" json:"providerId"`
	ServiceID     string `bson:"serviceId" json:"serviceId"`

	ScheduledDate string `bson:"scheduledDate" json:"scheduledDate"` // YYYY-MM-DD
	ScheduledTime string `bson:"scheduledTime" json:"scheduledTime"` // HH:MM

	ServiceAddress   string   `bson:"serviceAddress" json:"serviceAddress,omitempty"`
	ServiceCity      string   `bson:"serviceCity" json:"serviceCity,omitempty"`
	ServiceState     string   `bson:"serviceState" json:"serviceState,omitempty"`
	ServicePincode   string   `bson:"servicePincode" json:"servicePincode,omitempty"`
	ServiceLatitude  *float64 `bson:"serviceLatitude,omitempty" json:"serviceLatitude,omitempty"`
	ServiceLongitude *float64 `bson:"serviceLongitude,omitempty" json:"serviceLongitude,omitempty"`

	Urgency             string        `bson:"urgency" json:"urgency"`
	Status              BookingStatus `bson:"status" json:"status"`
	SpecialInstructions string        `bson:"specialInstructions" json:"specialInstructions,omitempty"`

	// EstimatedAmount is snapshotted from the service base price at
	// creation. The breakdown fields are set by the provider during
	// fulfilment and are never derived automatically.
	EstimatedAmount float64  `bson:"estimatedAmount" json:"estimatedAmount"`
	MaterialCost    *float64 `bson:"materialCost,omitempty" json:"materialCost,omitempty"`
	LaborCost       *float64 `bson:"laborCost,omitempty" json:"laborCost,omitempty"`
	TravelCost      *float64 `bson:"travelCost,omitempty" json:"travelCost,omitempty"`
	Discount        *float64 `bson:"discount,omitempty" json:"discount,omitempty"`
	TaxAmount       *float64 `bson:"taxAmount,omitempty" json:"taxAmount,omitempty"`
	FinalAmount     *float64 `bson:"finalAmount,omitempty" json:"finalAmount,omitempty"`

	WorkSummary string `bson:"workSummary" json:"workSummary,omitempty"`

	CancelledAt        *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy        string     `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ComputeFinalAmount sums the cost breakdown: material + labor + travel
// - discount + tax. Unset fields count as zero.
func (b *Booking) ComputeFinalAmount() float64 {
	deref := func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	}
	return deref(b.MaterialCost) + deref(b.LaborCost) + deref(b.TravelCost) -
		deref(b.Discount) + deref(b.TaxAmount)
}
