package ports

import (
	"context"
	"time"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

// LocationInput describes where the service is to be performed.
type LocationInput struct {
	Address  string
	District string
}

// CreateAppointmentInput carries all data needed to book an appointment.
// AppointmentDate is compared date-only against the clock at submission time.
type CreateAppointmentInput struct {
	CustomerID         string
	ProviderID         string
	ServiceDescription string
	AppointmentDate    time.Time
	AppointmentTime    string
	EstimatedHours     int
	CustomerNotes      string
	Location           LocationInput
}

// AdminStatusUpdateInput carries an admin-initiated status transition.
type AdminStatusUpdateInput struct {
	AppointmentID string
	Status        domain.AppointmentStatus
	AdminNotes    string
}

// ProviderStatusUpdateInput carries a provider-initiated status transition.
// ProviderID is the acting provider; the update only applies to appointments
// owned by that provider.
type ProviderStatusUpdateInput struct {
	AppointmentID string
	ProviderID    string
	Status        domain.AppointmentStatus
	ProviderNotes string
}

// GetAppointmentInput carries the parameters for fetching one appointment.
// Role and UserID enforce access: customers and providers only see their own.
type GetAppointmentInput struct {
	AppointmentID string
	Role          string
	UserID        string
}

// ListAppointmentsInput carries the parameters for the listing endpoints.
// The service layer derives the actual repository filter from the acting
// role: customer and provider listings are scoped to UserID, and provider
// listings are additionally restricted to the provider-visible statuses.
type ListAppointmentsInput struct {
	Role       string
	UserID     string
	Status     string // optional status filter ("" or "all" = no filter)
	CustomerID string // admin only: scope to one customer
	ProviderID string // admin only: scope to one provider
	Page       int
	Limit      int
}

// Pagination is returned alongside every list result.
type Pagination struct {
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AppointmentListResult is returned by the listing operations.
type AppointmentListResult struct {
	Items      []*domain.Appointment
	Pagination Pagination
	// Stats is populated for admin listings only: appointment counts by status.
	Stats map[domain.AppointmentStatus]int64
}

// AppointmentService defines the appointment lifecycle use cases.
type AppointmentService interface {
	Create(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error)
	UpdateStatusAsAdmin(ctx context.Context, input AdminStatusUpdateInput) (*domain.Appointment, error)
	UpdateStatusAsProvider(ctx context.Context, input ProviderStatusUpdateInput) (*domain.Appointment, error)
	Get(ctx context.Context, input GetAppointmentInput) (*domain.Appointment, error)
	ListForCustomer(ctx context.Context, input ListAppointmentsInput) (*AppointmentListResult, error)
	ListForProvider(ctx context.Context, input ListAppointmentsInput) (*AppointmentListResult, error)
	ListAll(ctx context.Context, input ListAppointmentsInput) (*AppointmentListResult, error)
}
