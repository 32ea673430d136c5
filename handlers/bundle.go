package handlers

// HandlerBundle groups the handler sets passed to route registration.
type HandlerBundle struct {
	Search   *SearchHandler
	Provider *ProviderHandler
	Offering *OfferingHandler
	Booking  *BookingHandler
	Review   *ReviewHandler
}
