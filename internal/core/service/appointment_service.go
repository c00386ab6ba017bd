package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

const (
	maxBookingLeadDays = 7
	defaultPageLimit   = 10
	maxPageLimit       = 100

	// Attempts at inserting before giving up on id collisions.
	maxInsertAttempts = 3
)

// adminTargets are the statuses an admin may set directly.
var adminTargets = map[domain.AppointmentStatus]struct{}{
	domain.StatusAdminApproved: {},
	domain.StatusAdminRejected: {},
	domain.StatusCompleted:     {},
	domain.StatusCancelled:     {},
}

// providerTargets are the statuses a provider may set on their own appointments.
var providerTargets = map[domain.AppointmentStatus]struct{}{
	domain.StatusProviderAccepted: {},
	domain.StatusProviderRejected: {},
}

// providerVisibleStatuses is the provider-facing view of the lifecycle:
// pending and admin_rejected appointments are deliberately invisible to the
// provider until the admin has approved them.
var providerVisibleStatuses = []domain.AppointmentStatus{
	domain.StatusAdminApproved,
	domain.StatusProviderAccepted,
	domain.StatusProviderRejected,
	domain.StatusCompleted,
}

// AppointmentService implements the appointment lifecycle engine.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	users        ports.UserRepository
	events       ports.EventSink
	log          zerolog.Logger

	// Injected for tests; default to the real clock and generator.
	now   func() time.Time
	newID func(time.Time) string
}

func NewAppointmentService(
	appointments ports.AppointmentRepository,
	users ports.UserRepository,
	events ports.EventSink,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		users:        users,
		events:       events,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        generateAppointmentID,
	}
}

// Create books a new appointment in status pending. The price is computed
// from the provider's current hourly rate and snapshotted on the appointment;
// later rate changes never touch existing bookings.
func (s *AppointmentService) Create(ctx context.Context, in ports.CreateAppointmentInput) (*domain.Appointment, error) {
	now := s.now()
	if err := validateBookingDate(in.AppointmentDate, now); err != nil {
		return nil, err
	}
	if in.EstimatedHours < 1 || in.EstimatedHours > 24 {
		return nil, fmt.Errorf("%w: estimated hours must be between 1 and 24", domain.ErrValidation)
	}
	if strings.TrimSpace(in.ServiceDescription) == "" {
		return nil, fmt.Errorf("%w: service description is required", domain.ErrValidation)
	}

	customer, err := s.users.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("create appointment: customer: %w", err)
	}

	provider, err := s.users.FindByID(ctx, in.ProviderID)
	if err != nil || provider.Role != domain.RoleProvider {
		return nil, fmt.Errorf("create appointment: provider: %w", domain.ErrUserNotFound)
	}
	if !provider.IsApprovedProvider() {
		return nil, fmt.Errorf("%w: provider account is not approved", domain.ErrProviderNotEligible)
	}
	rate := provider.Provider.HourlyRate
	if rate <= 0 {
		return nil, fmt.Errorf("%w: provider hourly rate is not set", domain.ErrProviderNotEligible)
	}

	appointment := &domain.Appointment{
		CustomerID:         customer.ID,
		ProviderID:         provider.ID,
		ServiceCategory:    provider.Provider.ServiceCategory,
		ServiceDescription: in.ServiceDescription,
		AppointmentDate:    in.AppointmentDate,
		AppointmentTime:    in.AppointmentTime,
		EstimatedHours:     in.EstimatedHours,
		HourlyRate:         rate,
		Price:              rate * float64(in.EstimatedHours),
		Status:             domain.StatusPending,
		Location:           domain.Location{Address: in.Location.Address, District: in.Location.District},
		CustomerNotes:      in.CustomerNotes,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, Actor: domain.RoleCustomer},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The id generator is time-based plus random; collisions are negligible
	// but not impossible, so a unique-index violation means regenerate and
	// retry rather than fail the booking.
	for attempt := 0; ; attempt++ {
		appointment.ID = s.newID(now)
		err = s.appointments.Insert(ctx, appointment)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateAppointment) && attempt < maxInsertAttempts-1 {
			s.log.Warn().Str("appointment_id", appointment.ID).Msg("appointment id collision, regenerating")
			continue
		}
		s.log.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", appointment.ID).
		Str("provider_id", provider.ID).
		Float64("price", appointment.Price).
		Msg("appointment created")

	s.events.Publish(domain.AppointmentEvent{
		Kind:        domain.EventBookingRequested,
		Appointment: appointment,
		Customer:    customer,
		Provider:    provider,
	})

	return appointment, nil
}

// UpdateStatusAsAdmin applies an admin-initiated transition. Legality is
// decided by the status state machine: approval and rejection only from
// pending, completion only from provider_accepted, cancellation from any
// non-terminal state.
func (s *AppointmentService) UpdateStatusAsAdmin(ctx context.Context, in ports.AdminStatusUpdateInput) (*domain.Appointment, error) {
	if _, ok := adminTargets[in.Status]; !ok {
		return nil, fmt.Errorf("%w: status %q cannot be set by admin", domain.ErrValidation, in.Status)
	}

	appointment, err := s.appointments.FindByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, appointment.Status, in.Status)
	}

	now := s.now()
	update := ports.StatusUpdate{
		Status:     in.Status,
		AdminNotes: &in.AdminNotes,
		UpdatedAt:  now,
		History: domain.StatusHistoryEntry{
			Status:    in.Status,
			Timestamp: now,
			Actor:     domain.RoleAdmin,
			Notes:     in.AdminNotes,
		},
	}
	switch in.Status {
	case domain.StatusAdminApproved:
		update.AdminApprovedAt = &now
	case domain.StatusCompleted:
		update.CompletedAt = &now
	}

	if err := s.appointments.UpdateStatus(ctx, appointment.ID, update); err != nil {
		s.log.Error().Err(err).Str("appointment_id", appointment.ID).Msg("admin status update failed")
		return nil, err
	}
	s.applyUpdate(appointment, update)

	s.log.Info().
		Str("appointment_id", appointment.ID).
		Str("status", string(in.Status)).
		Msg("appointment status updated by admin")

	s.publishTransition(ctx, appointment, adminEventKind(in.Status))
	return appointment, nil
}

// UpdateStatusAsProvider applies a provider-initiated transition on an
// appointment owned by that provider. Both acceptance and rejection require
// the appointment to be admin_approved first.
func (s *AppointmentService) UpdateStatusAsProvider(ctx context.Context, in ports.ProviderStatusUpdateInput) (*domain.Appointment, error) {
	if _, ok := providerTargets[in.Status]; !ok {
		return nil, fmt.Errorf("%w: status %q cannot be set by provider", domain.ErrValidation, in.Status)
	}

	appointment, err := s.appointments.FindByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	// Ownership is enforced as not-found, mirroring the scoped lookup the
	// provider would get from a filtered query.
	if appointment.ProviderID != in.ProviderID {
		return nil, domain.ErrAppointmentNotFound
	}
	if !appointment.Status.CanTransitionTo(in.Status) {
		if appointment.Status == domain.StatusPending {
			return nil, fmt.Errorf("%w: appointment must be approved by admin first", domain.ErrInvalidTransition)
		}
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, appointment.Status, in.Status)
	}

	now := s.now()
	update := ports.StatusUpdate{
		Status:        in.Status,
		ProviderNotes: &in.ProviderNotes,
		UpdatedAt:     now,
		History: domain.StatusHistoryEntry{
			Status:    in.Status,
			Timestamp: now,
			Actor:     domain.RoleProvider,
			Notes:     in.ProviderNotes,
		},
	}
	if in.Status == domain.StatusProviderAccepted {
		update.ProviderAcceptedAt = &now
	}

	if err := s.appointments.UpdateStatus(ctx, appointment.ID, update); err != nil {
		s.log.Error().Err(err).Str("appointment_id", appointment.ID).Msg("provider status update failed")
		return nil, err
	}
	s.applyUpdate(appointment, update)

	s.log.Info().
		Str("appointment_id", appointment.ID).
		Str("provider_id", in.ProviderID).
		Str("status", string(in.Status)).
		Msg("appointment status updated by provider")

	kind := domain.EventProviderAccepted
	if in.Status == domain.StatusProviderRejected {
		kind = domain.EventProviderRejected
	}
	s.publishTransition(ctx, appointment, kind)
	return appointment, nil
}

// Get fetches one appointment with role-scoped access: customers and
// providers may only view their own, admins are unrestricted.
func (s *AppointmentService) Get(ctx context.Context, in ports.GetAppointmentInput) (*domain.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	switch in.Role {
	case domain.RoleAdmin:
	case domain.RoleCustomer:
		if appointment.CustomerID != in.UserID {
			return nil, domain.ErrForbidden
		}
	case domain.RoleProvider:
		if appointment.ProviderID != in.UserID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}
	return appointment, nil
}

// ListForCustomer returns the acting customer's appointments, newest first.
func (s *AppointmentService) ListForCustomer(ctx context.Context, in ports.ListAppointmentsInput) (*ports.AppointmentListResult, error) {
	filter := ports.AppointmentFilter{CustomerID: in.UserID}
	if st := statusFilter(in.Status); st != "" {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
		}
		filter.Statuses = []domain.AppointmentStatus{st}
	}
	return s.list(ctx, filter, in.Page, in.Limit)
}

// ListForProvider returns the acting provider's appointments restricted to
// the provider-visible statuses. A status filter outside that set yields an
// empty result rather than leaking pending or admin_rejected bookings.
func (s *AppointmentService) ListForProvider(ctx context.Context, in ports.ListAppointmentsInput) (*ports.AppointmentListResult, error) {
	filter := ports.AppointmentFilter{
		ProviderID: in.UserID,
		Statuses:   providerVisibleStatuses,
	}
	if st := statusFilter(in.Status); st != "" {
		if !providerVisible(st) {
			return &ports.AppointmentListResult{
				Items:      []*domain.Appointment{},
				Pagination: paginate(0, normalizePage(in.Page), normalizeLimit(in.Limit)),
			}, nil
		}
		filter.Statuses = []domain.AppointmentStatus{st}
	}
	return s.list(ctx, filter, in.Page, in.Limit)
}

// ListAll returns every appointment (admin view) plus aggregate counts by
// status for the dashboard.
func (s *AppointmentService) ListAll(ctx context.Context, in ports.ListAppointmentsInput) (*ports.AppointmentListResult, error) {
	filter := ports.AppointmentFilter{
		CustomerID: in.CustomerID,
		ProviderID: in.ProviderID,
	}
	if st := statusFilter(in.Status); st != "" {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
		}
		filter.Statuses = []domain.AppointmentStatus{st}
	}

	result, err := s.list(ctx, filter, in.Page, in.Limit)
	if err != nil {
		return nil, err
	}
	stats, err := s.appointments.CountByStatus(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to compute appointment stats")
	} else {
		result.Stats = stats
	}
	return result, nil
}

func (s *AppointmentService) list(ctx context.Context, filter ports.AppointmentFilter, page, limit int) (*ports.AppointmentListResult, error) {
	filter.Page = normalizePage(page)
	filter.Limit = normalizeLimit(limit)

	items, total, err := s.appointments.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list appointments")
		return nil, err
	}
	if items == nil {
		items = []*domain.Appointment{}
	}
	return &ports.AppointmentListResult{
		Items:      items,
		Pagination: paginate(total, filter.Page, filter.Limit),
	}, nil
}

// publishTransition loads both parties and emits the lifecycle event. Lookup
// failures degrade to a partial event; the dispatcher skips recipients it
// cannot resolve.
func (s *AppointmentService) publishTransition(ctx context.Context, a *domain.Appointment, kind domain.EventKind) {
	customer, err := s.users.FindByID(ctx, a.CustomerID)
	if err != nil {
		s.log.Warn().Err(err).Str("appointment_id", a.ID).Msg("customer lookup failed for notification")
	}
	provider, err := s.users.FindByID(ctx, a.ProviderID)
	if err != nil {
		s.log.Warn().Err(err).Str("appointment_id", a.ID).Msg("provider lookup failed for notification")
	}
	s.events.Publish(domain.AppointmentEvent{
		Kind:        kind,
		Appointment: a,
		Customer:    customer,
		Provider:    provider,
	})
}

// applyUpdate mirrors the persisted transition onto the in-memory aggregate
// so the caller-facing result reflects the stored state.
func (s *AppointmentService) applyUpdate(a *domain.Appointment, u ports.StatusUpdate) {
	a.Status = u.Status
	a.UpdatedAt = u.UpdatedAt
	if u.AdminNotes != nil {
		a.AdminNotes = *u.AdminNotes
	}
	if u.ProviderNotes != nil {
		a.ProviderNotes = *u.ProviderNotes
	}
	if u.AdminApprovedAt != nil {
		a.AdminApprovedAt = u.AdminApprovedAt
	}
	if u.ProviderAcceptedAt != nil {
		a.ProviderAcceptedAt = u.ProviderAcceptedAt
	}
	if u.CompletedAt != nil {
		a.CompletedAt = u.CompletedAt
	}
	a.StatusHistory = append(a.StatusHistory, u.History)
}

func adminEventKind(status domain.AppointmentStatus) domain.EventKind {
	switch status {
	case domain.StatusAdminApproved:
		return domain.EventAdminApproved
	case domain.StatusAdminRejected:
		return domain.EventAdminRejected
	case domain.StatusCompleted:
		return domain.EventCompleted
	default:
		return domain.EventCancelled
	}
}

// validateBookingDate enforces the booking window: today up to seven days
// ahead, both bounds inclusive, compared date-only against the clock at
// submission time.
func validateBookingDate(date, now time.Time) error {
	today := dateOnly(now)
	selected := dateOnly(date)
	if selected.Before(today) {
		return fmt.Errorf("%w: appointment date cannot be in the past", domain.ErrValidation)
	}
	if selected.After(today.AddDate(0, 0, maxBookingLeadDays)) {
		return fmt.Errorf("%w: appointment date cannot be more than 1 week from today", domain.ErrValidation)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func providerVisible(status domain.AppointmentStatus) bool {
	for _, allowed := range providerVisibleStatuses {
		if allowed == status {
			return true
		}
	}
	return false
}

func statusFilter(raw string) domain.AppointmentStatus {
	if raw == "" || raw == "all" {
		return ""
	}
	return domain.AppointmentStatus(raw)
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

func paginate(total int64, page, limit int) ports.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return ports.Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateAppointmentID returns a human-readable id in the format
// APP-<base36 millis>-<5 random chars>. Uniqueness is not guaranteed here; a
// unique index on the collection backs it up.
func generateAppointmentID(ts time.Time) string {
	prefix := strings.ToUpper(strconv.FormatInt(ts.UnixMilli(), 36))
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive the suffix from the clock
		return fmt.Sprintf("APP-%s-%05X", prefix, ts.UnixNano()&0xFFFFF)
	}
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return fmt.Sprintf("APP-%s-%s", prefix, b)
}
