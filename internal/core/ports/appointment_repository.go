package ports

import (
	"context"
	"time"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

// AppointmentFilter carries query parameters for listing appointments.
// CustomerID/ProviderID scoping is always set by the service layer according
// to the acting role; the repository never decides visibility on its own.
type AppointmentFilter struct {
	CustomerID string                     // non-empty = scoped to one customer
	ProviderID string                     // non-empty = scoped to one provider
	Statuses   []domain.AppointmentStatus // non-empty = status $in filter
	Page       int                        // 1-based
	Limit      int                        // rows per page (capped by service)
}

// StatusUpdate describes the field set written by a single status transition.
// Pointer fields are written only when non-nil; the lifecycle timestamps are
// therefore stamped exactly once, by the transition that reaches them.
type StatusUpdate struct {
	Status             domain.AppointmentStatus
	AdminNotes         *string
	ProviderNotes      *string
	AdminApprovedAt    *time.Time
	ProviderAcceptedAt *time.Time
	CompletedAt        *time.Time
	UpdatedAt          time.Time
	History            domain.StatusHistoryEntry
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	// Insert persists a new appointment. Returns domain.ErrDuplicateAppointment
	// when the generated appointment id collides with an existing document;
	// callers regenerate the id and retry.
	Insert(ctx context.Context, a *domain.Appointment) error
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	// List returns a page of appointments matching filter, newest first, and
	// the total count.
	List(ctx context.Context, filter AppointmentFilter) ([]*domain.Appointment, int64, error)
	// UpdateStatus applies a status transition and appends the history entry.
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) error
	// CountByStatus returns the number of appointments per status across the
	// whole collection (admin dashboard stats).
	CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int64, error)
}
