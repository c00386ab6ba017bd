package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending          AppointmentStatus = "pending"
	StatusAdminApproved    AppointmentStatus = "admin_approved"
	StatusAdminRejected    AppointmentStatus = "admin_rejected"
	StatusProviderAccepted AppointmentStatus = "provider_accepted"
	StatusProviderRejected AppointmentStatus = "provider_rejected"
	StatusCompleted        AppointmentStatus = "completed"
	StatusCancelled        AppointmentStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions. It is the
// single source of truth for transition legality on both the admin and the
// provider update paths. States absent from the map are terminal.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:          {StatusAdminApproved, StatusAdminRejected, StatusCancelled},
	StatusAdminApproved:    {StatusProviderAccepted, StatusProviderRejected, StatusCancelled},
	StatusProviderAccepted: {StatusCompleted, StatusCancelled},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrDuplicateAppointment = errors.New("appointment id already exists")
var ErrProviderNotEligible = errors.New("provider not eligible for booking")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s AppointmentStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAdminApproved, StatusAdminRejected,
		StatusProviderAccepted, StatusProviderRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Location describes where the service is to be performed.
type Location struct {
	Address  string `json:"address" bson:"address"`
	District string `json:"district" bson:"district"`
}

// StatusHistoryEntry records a single status transition on an appointment.
type StatusHistoryEntry struct {
	Status    AppointmentStatus `json:"status" bson:"status"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
	Actor     string            `json:"actor" bson:"actor"`
	Notes     string            `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Appointment is the core aggregate root. The human-readable appointment id
// (APP-…) doubles as the document key. HourlyRate and Price are snapshots
// taken at creation time and are never recomputed from the live provider
// profile. The lifecycle timestamps are set exactly once by the transition
// that reaches them.
type Appointment struct {
	ID                 string               `json:"appointment_id" bson:"_id"`
	CustomerID         string               `json:"customer_id" bson:"customer_id"`
	ProviderID         string               `json:"provider_id" bson:"provider_id"`
	ServiceCategory    string               `json:"service_category" bson:"service_category"`
	ServiceDescription string               `json:"service_description" bson:"service_description"`
	AppointmentDate    time.Time            `json:"appointment_date" bson:"appointment_date"`
	AppointmentTime    string               `json:"appointment_time" bson:"appointment_time"`
	EstimatedHours     int                  `json:"estimated_hours" bson:"estimated_hours"`
	HourlyRate         float64              `json:"hourly_rate" bson:"hourly_rate"`
	Price              float64              `json:"price" bson:"price"`
	Status             AppointmentStatus    `json:"status" bson:"status"`
	Location           Location             `json:"location" bson:"location"`
	CustomerNotes      string               `json:"customer_notes,omitempty" bson:"customer_notes,omitempty"`
	AdminNotes         string               `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	ProviderNotes      string               `json:"provider_notes,omitempty" bson:"provider_notes,omitempty"`
	AdminApprovedAt    *time.Time           `json:"admin_approved_at,omitempty" bson:"admin_approved_at,omitempty"`
	ProviderAcceptedAt *time.Time           `json:"provider_accepted_at,omitempty" bson:"provider_accepted_at,omitempty"`
	CompletedAt        *time.Time           `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	StatusHistory      []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	CreatedAt          time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at" bson:"updated_at"`
}
