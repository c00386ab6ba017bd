package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

func customerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Sita Sharma",
		Email:    "Sita@Example.com",
		Password: "secret123",
		Role:     domain.RoleCustomer,
	}
}

func providerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Ram Thapa",
		Email:    "ram@example.com",
		Password: "secret123",
		Role:     domain.RoleProvider,
		Provider: &ports.ProviderApplicationInput{
			Phone:           "9800000000",
			District:        "Lalitpur",
			ServiceCategory: "plumbing",
			HourlyRate:      600,
		},
	}
}

func TestAuthService_Register_Customer(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", time.Hour)

	u, err := svc.Register(context.Background(), customerInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.Email != "sita@example.com" {
		t.Errorf("email must be lower-cased, got %q", u.Email)
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret123" {
		t.Error("password must be stored hashed")
	}
	if u.Provider != nil {
		t.Error("customer must not carry a provider profile")
	}
}

func TestAuthService_Register_Provider(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", time.Hour)

	u, err := svc.Register(context.Background(), providerInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.Provider == nil {
		t.Fatal("provider profile missing")
	}
	if u.Provider.Status != domain.ApprovalPending {
		t.Errorf("new provider must start pending, got %s", u.Provider.Status)
	}
	if u.Provider.Rating != domain.DefaultProviderRating {
		t.Errorf("expected default rating %v, got %v", domain.DefaultProviderRating, u.Provider.Rating)
	}
	if u.IsApprovedProvider() {
		t.Error("pending provider must not be bookable")
	}
}

func TestAuthService_Register_ProviderRateBounds(t *testing.T) {
	for _, rate := range []float64{50, 99.99, 5000.01} {
		users := newStubUserRepo()
		svc := NewAuthService(users, "secret", time.Hour)

		in := providerInput()
		in.Provider.HourlyRate = rate
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("rate=%v: expected ErrValidation, got %v", rate, err)
		}
	}
}

func TestAuthService_Register_ProviderDetailsRequired(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", time.Hour)

	in := providerInput()
	in.Provider = nil
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation without provider details, got %v", err)
	}
}

func TestAuthService_Register_AdminRoleRejected(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", time.Hour)

	in := customerInput()
	in.Role = domain.RoleAdmin
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("admin self-registration must be rejected, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), customerInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), customerInput()); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), customerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "SITA@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.Email != "sita@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["role"] != domain.RoleCustomer {
		t.Errorf("expected role claim customer, got %v", claims["role"])
	}
	if claims["user_id"] != user.ID {
		t.Errorf("expected user_id claim %q, got %v", user.ID, claims["user_id"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), customerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "sita@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", time.Hour)

	// Unknown account and bad password must be indistinguishable.
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
