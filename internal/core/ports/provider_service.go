package ports

import (
	"context"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

// ListApplicationsInput carries the admin filter for provider applications.
type ListApplicationsInput struct {
	Status string // optional approval status filter ("" or "all" = any)
	Page   int
	Limit  int
}

// BrowseProvidersInput carries the public filter for browsing approved
// providers.
type BrowseProvidersInput struct {
	Category  string
	MinRating float64
	Sort      string // rating | jobs | newest
	Page      int
	Limit     int
}

// UpdateApprovalInput carries an admin decision on a provider application.
type UpdateApprovalInput struct {
	ProviderID      string
	AdminID         string
	Status          domain.ApprovalStatus
	RejectionReason string
}

// ProviderListResult is returned by provider listing operations.
type ProviderListResult struct {
	Items      []*domain.User
	Pagination Pagination
}

// ProviderService defines provider administration and browsing use cases.
type ProviderService interface {
	ListApplications(ctx context.Context, input ListApplicationsInput) (*ProviderListResult, error)
	GetApplication(ctx context.Context, id string) (*domain.User, error)
	UpdateApprovalStatus(ctx context.Context, input UpdateApprovalInput) (*domain.User, error)
	BrowseApproved(ctx context.Context, input BrowseProvidersInput) (*ProviderListResult, error)
}
