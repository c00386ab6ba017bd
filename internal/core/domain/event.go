package domain

// EventKind identifies a lifecycle transition that produces notifications.
type EventKind string

const (
	EventBookingRequested    EventKind = "booking_requested"
	EventAdminApproved       EventKind = "admin_approved"
	EventAdminRejected       EventKind = "admin_rejected"
	EventProviderAccepted    EventKind = "provider_accepted"
	EventProviderRejected    EventKind = "provider_rejected"
	EventCompleted           EventKind = "completed"
	EventCancelled           EventKind = "cancelled"
	EventApplicationApproved EventKind = "application_approved"
	EventApplicationRejected EventKind = "application_rejected"
)

// AppointmentEvent is emitted at the end of a state transition and consumed
// asynchronously by the notification dispatcher. Delivery concerns never feed
// back into lifecycle correctness: a dropped or failed event does not roll
// back the transition that produced it.
//
// Appointment is nil for provider application events. Customer and Provider
// are best-effort snapshots; renderers must tolerate nil.
type AppointmentEvent struct {
	Kind        EventKind
	Appointment *Appointment
	Customer    *User
	Provider    *User
}
