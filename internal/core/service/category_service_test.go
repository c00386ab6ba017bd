package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

type stubCategoryRepo struct {
	bySlug     map[string]*domain.Category
	persisted  map[string]int64
	listErr    error
	setErr     error
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		bySlug:    make(map[string]*domain.Category),
		persisted: make(map[string]int64),
	}
}

func (r *stubCategoryRepo) ListActive(_ context.Context) ([]*domain.Category, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Category
	for _, c := range r.bySlug {
		if !c.Active {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	c, ok := r.bySlug[slug]
	if !ok || !c.Active {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) SetProviderCount(_ context.Context, slug string, count int64) error {
	if r.setErr != nil {
		return r.setErr
	}
	r.persisted[slug] = count
	return nil
}

func (r *stubCategoryRepo) seed(slug string, active bool) {
	r.bySlug[slug] = &domain.Category{Name: slug, Slug: slug, Active: active}
}

func seedApprovedProvider(users *stubUserRepo, id, category string) {
	users.byID[id] = &domain.User{
		ID: id, Role: domain.RoleProvider,
		Provider: &domain.ProviderProfile{
			Status:          domain.ApprovalApproved,
			ServiceCategory: category,
			HourlyRate:      500,
		},
	}
}

func TestCategoryService_ListActive_RecomputesCounts(t *testing.T) {
	categories := newStubCategoryRepo()
	users := newStubUserRepo()
	svc := NewCategoryService(categories, users, discardLogger)

	categories.seed("plumbing", true)
	categories.seed("electrical", true)
	categories.seed("archived", false)
	seedApprovedProvider(users, "p1", "plumbing")
	seedApprovedProvider(users, "p2", "plumbing")
	// Unapproved providers never count.
	users.byID["p3"] = &domain.User{
		ID: "p3", Role: domain.RoleProvider,
		Provider: &domain.ProviderProfile{Status: domain.ApprovalPending, ServiceCategory: "plumbing"},
	}

	out, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 active categories, got %d", len(out))
	}

	counts := make(map[string]int64)
	for _, c := range out {
		counts[c.Slug] = c.ProviderCount
	}
	if counts["plumbing"] != 2 {
		t.Errorf("plumbing: expected 2 providers, got %d", counts["plumbing"])
	}
	if counts["electrical"] != 0 {
		t.Errorf("electrical: expected 0 providers, got %d", counts["electrical"])
	}
}

func TestCategoryService_ListActive_PersistsCounts(t *testing.T) {
	categories := newStubCategoryRepo()
	users := newStubUserRepo()
	svc := NewCategoryService(categories, users, discardLogger)

	categories.seed("plumbing", true)
	seedApprovedProvider(users, "p1", "plumbing")

	if _, err := svc.ListActive(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if categories.persisted["plumbing"] != 1 {
		t.Errorf("expected persisted count 1, got %d", categories.persisted["plumbing"])
	}
}

func TestCategoryService_ListActive_PersistFailureIsNotFatal(t *testing.T) {
	categories := newStubCategoryRepo()
	users := newStubUserRepo()
	svc := NewCategoryService(categories, users, discardLogger)

	categories.seed("plumbing", true)
	seedApprovedProvider(users, "p1", "plumbing")
	categories.setErr = errors.New("write unavailable")

	out, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("persist failure must not fail the read, got %v", err)
	}
	if out[0].ProviderCount != 1 {
		t.Errorf("returned count must still be fresh, got %d", out[0].ProviderCount)
	}
}

func TestCategoryService_BySlug(t *testing.T) {
	categories := newStubCategoryRepo()
	users := newStubUserRepo()
	svc := NewCategoryService(categories, users, discardLogger)

	categories.seed("cleaning", true)
	seedApprovedProvider(users, "p1", "cleaning")

	c, err := svc.BySlug(context.Background(), "cleaning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ProviderCount != 1 {
		t.Errorf("expected recomputed count 1, got %d", c.ProviderCount)
	}
}

func TestCategoryService_BySlug_NotFound(t *testing.T) {
	categories := newStubCategoryRepo()
	svc := NewCategoryService(categories, newStubUserRepo(), discardLogger)

	_, err := svc.BySlug(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_RecountAll(t *testing.T) {
	categories := newStubCategoryRepo()
	users := newStubUserRepo()
	svc := NewCategoryService(categories, users, discardLogger)

	categories.seed("plumbing", true)
	categories.seed("painting", true)
	seedApprovedProvider(users, "p1", "painting")

	if err := svc.RecountAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if categories.persisted["painting"] != 1 || categories.persisted["plumbing"] != 0 {
		t.Errorf("unexpected persisted counts: %+v", categories.persisted)
	}
}
