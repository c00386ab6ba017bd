package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

// CategoryService serves the catalog with freshly recomputed provider counts.
// The count is derived by scanning the user collection, O(providers) per
// category; fine at catalog scale, but bulk listings recount per item, so a
// batched recount would be needed before the catalog grows.
type CategoryService struct {
	categories ports.CategoryRepository
	users      ports.UserRepository
	log        zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, users ports.UserRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, users: users, log: log}
}

// ListActive returns all active categories with freshly recomputed provider
// counts. The persisted count is refreshed best-effort; a write failure only
// affects staleness of later uncounted reads, never the returned values.
func (s *CategoryService) ListActive(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list categories")
		return nil, err
	}
	for _, category := range categories {
		if err := s.recount(ctx, category); err != nil {
			return nil, err
		}
	}
	return categories, nil
}

// BySlug returns a single category with a freshly recomputed provider count.
func (s *CategoryService) BySlug(ctx context.Context, slug string) (*domain.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.recount(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RecountAll recomputes the provider count of every active category. Invoked
// by the provider service after any approval-status change; eventually
// consistent with the triggering write.
func (s *CategoryService) RecountAll(ctx context.Context) error {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("recount categories: %w", err)
	}
	for _, category := range categories {
		if err := s.recount(ctx, category); err != nil {
			return fmt.Errorf("recount category %s: %w", category.Slug, err)
		}
	}
	return nil
}

func (s *CategoryService) recount(ctx context.Context, category *domain.Category) error {
	count, err := s.users.CountApprovedProviders(ctx, category.Slug)
	if err != nil {
		s.log.Error().Err(err).Str("slug", category.Slug).Msg("provider count failed")
		return err
	}
	category.ProviderCount = count
	if err := s.categories.SetProviderCount(ctx, category.Slug, count); err != nil {
		s.log.Warn().Err(err).Str("slug", category.Slug).Msg("failed to persist provider count")
	}
	return nil
}
