package domain

import (
	"errors"
	"time"
)

var ErrCategoryNotFound = errors.New("category not found")

// Category is a catalog entry for a service type. ProviderCount is a derived
// value: the number of approved providers whose service category matches
// Slug. It is recomputed on demand, not maintained incrementally, so readers
// must tolerate staleness between recomputation points.
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon,omitempty"`
	Active        bool      `json:"active"`
	StartingPrice float64   `json:"starting_price"`
	ProviderCount int64     `json:"provider_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
