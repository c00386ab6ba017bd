package ports

import (
	"context"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

// CategoryRepository defines persistence operations for the service catalog.
type CategoryRepository interface {
	// ListActive returns all active categories, highest provider count first.
	ListActive(ctx context.Context) ([]*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// SetProviderCount stores the denormalized provider count for a slug.
	SetProviderCount(ctx context.Context, slug string, count int64) error
}
