package ports

import (
	"context"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

// CategoryService exposes the service catalog with freshly recomputed
// provider counts, and the explicit recomputation hook invoked after any
// provider approval-status change.
type CategoryService interface {
	ListActive(ctx context.Context) ([]*domain.Category, error)
	BySlug(ctx context.Context, slug string) (*domain.Category, error)
	// RecountAll recomputes the provider count of every active category.
	RecountAll(ctx context.Context) error
}
