package ports

import (
	"context"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

// ProviderApplicationInput carries the provider-only registration fields.
type ProviderApplicationInput struct {
	Phone           string
	District        string
	ServiceCategory string
	HourlyRate      float64
}

// RegisterInput carries the data for a new account. Provider must be non-nil
// when Role is provider and is ignored otherwise.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Provider *ProviderApplicationInput
}

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
