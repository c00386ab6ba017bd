package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

// ProviderService implements provider administration (application review)
// and the public browsing of approved providers.
type ProviderService struct {
	users      ports.UserRepository
	categories ports.CategoryService
	events     ports.EventSink
	log        zerolog.Logger

	now func() time.Time
}

func NewProviderService(
	users ports.UserRepository,
	categories ports.CategoryService,
	events ports.EventSink,
	log zerolog.Logger,
) *ProviderService {
	return &ProviderService{
		users:      users,
		categories: categories,
		events:     events,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ListApplications returns provider accounts for admin review, optionally
// filtered by approval status.
func (s *ProviderService) ListApplications(ctx context.Context, in ports.ListApplicationsInput) (*ports.ProviderListResult, error) {
	filter := ports.ProviderFilter{
		Sort:  ports.SortByNewest,
		Page:  normalizePage(in.Page),
		Limit: normalizeLimit(in.Limit),
	}
	if in.Status != "" && in.Status != "all" {
		status := domain.ApprovalStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown approval status %q", domain.ErrValidation, in.Status)
		}
		filter.Status = status
	}
	return s.listProviders(ctx, filter)
}

// GetApplication fetches a single provider account.
func (s *ProviderService) GetApplication(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil || user.Role != domain.RoleProvider {
		return nil, fmt.Errorf("provider application: %w", domain.ErrUserNotFound)
	}
	return user, nil
}

// UpdateApprovalStatus records an admin decision on a provider application.
// Approval requires a service category and an hourly rate within bounds.
// Approval metadata is kept mutually exclusive: the rejection reason survives
// only under rejected, approvedAt/approvedBy only under approved. The
// category provider counts are recomputed afterwards, and the provider is
// notified; both side effects are best-effort.
func (s *ProviderService) UpdateApprovalStatus(ctx context.Context, in ports.UpdateApprovalInput) (*domain.User, error) {
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown approval status %q", domain.ErrValidation, in.Status)
	}

	provider, err := s.users.FindByID(ctx, in.ProviderID)
	if err != nil || provider.Role != domain.RoleProvider || provider.Provider == nil {
		return nil, fmt.Errorf("provider application: %w", domain.ErrUserNotFound)
	}

	profile := *provider.Provider
	profile.Status = in.Status
	profile.RejectionReason = ""
	profile.ApprovedAt = nil
	profile.ApprovedBy = ""

	switch in.Status {
	case domain.ApprovalApproved:
		if profile.ServiceCategory == "" {
			return nil, fmt.Errorf("%w: service category is required for approval", domain.ErrValidation)
		}
		if profile.HourlyRate < domain.MinHourlyRate || profile.HourlyRate > domain.MaxHourlyRate {
			return nil, fmt.Errorf("%w: hourly rate must be between %d and %d",
				domain.ErrValidation, domain.MinHourlyRate, domain.MaxHourlyRate)
		}
		now := s.now()
		profile.ApprovedAt = &now
		profile.ApprovedBy = in.AdminID
	case domain.ApprovalRejected:
		profile.RejectionReason = in.RejectionReason
	}

	if err := s.users.UpdateProviderProfile(ctx, provider.ID, &profile); err != nil {
		s.log.Error().Err(err).Str("provider_id", provider.ID).Msg("provider status update failed")
		return nil, err
	}
	provider.Provider = &profile

	// The denormalized counts lag the write when this fails; they heal on the
	// next catalog read.
	if err := s.categories.RecountAll(ctx); err != nil {
		s.log.Warn().Err(err).Msg("category recount after approval change failed")
	}

	s.log.Info().
		Str("provider_id", provider.ID).
		Str("status", string(in.Status)).
		Msg("provider approval status updated")

	switch in.Status {
	case domain.ApprovalApproved:
		s.events.Publish(domain.AppointmentEvent{Kind: domain.EventApplicationApproved, Provider: provider})
	case domain.ApprovalRejected:
		s.events.Publish(domain.AppointmentEvent{Kind: domain.EventApplicationRejected, Provider: provider})
	}

	return provider, nil
}

// BrowseApproved returns approved providers for public browsing, filtered by
// category and minimum rating.
func (s *ProviderService) BrowseApproved(ctx context.Context, in ports.BrowseProvidersInput) (*ports.ProviderListResult, error) {
	sort := in.Sort
	switch sort {
	case "", ports.SortByRating:
		sort = ports.SortByRating
	case ports.SortByJobs, ports.SortByNewest:
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrValidation, in.Sort)
	}

	filter := ports.ProviderFilter{
		Status:    domain.ApprovalApproved,
		Category:  in.Category,
		MinRating: in.MinRating,
		Sort:      sort,
		Page:      normalizePage(in.Page),
		Limit:     normalizeLimit(in.Limit),
	}
	return s.listProviders(ctx, filter)
}

func (s *ProviderService) listProviders(ctx context.Context, filter ports.ProviderFilter) (*ports.ProviderListResult, error) {
	items, total, err := s.users.ListProviders(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list providers")
		return nil, err
	}
	if items == nil {
		items = []*domain.User{}
	}
	return &ports.ProviderListResult{
		Items:      items,
		Pagination: paginate(total, filter.Page, filter.Limit),
	}, nil
}
