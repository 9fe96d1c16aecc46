package handlers

// HandlerBundle aggregates the HTTP handlers for route registration.
type HandlerBundle struct {
	User         *UserHandler
	Mechanic     *MechanicHandler
	Booking      *BookingHandler
	Review       *ReviewHandler
	Storage      *StorageHandler
	Notification *NotificationHandler
}
