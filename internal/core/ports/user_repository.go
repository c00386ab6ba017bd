package ports

import (
	"context"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

// Provider list sort orders.
const (
	SortByRating = "rating"
	SortByJobs   = "jobs"
	SortByNewest = "newest"
)

// ProviderFilter carries query parameters for listing provider users.
type ProviderFilter struct {
	Status    domain.ApprovalStatus // empty = any approval status
	Category  string                // empty = any category
	MinRating float64               // 0 = no rating floor
	Sort      string                // SortBy…; empty = rating
	Page      int                   // 1-based
	Limit     int
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrUserExists when the email
	// is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateProviderProfile replaces the provider profile of the given user.
	UpdateProviderProfile(ctx context.Context, id string, profile *domain.ProviderProfile) error
	// CountApprovedProviders counts users with role=provider, approval
	// status=approved and the given service category slug.
	CountApprovedProviders(ctx context.Context, categorySlug string) (int64, error)
	// ListProviders returns a page of provider users matching filter and the
	// total count.
	ListProviders(ctx context.Context, filter ProviderFilter) ([]*domain.User, int64, error)
}
