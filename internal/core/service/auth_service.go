package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a customer account or a provider application. Provider
// registrations start in approval status pending and carry the billing
// attributes an admin later validates on approval.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if in.Role != domain.RoleCustomer && in.Role != domain.RoleProvider {
		return nil, fmt.Errorf("%w: role must be customer or provider", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if in.Role == domain.RoleProvider {
		if in.Provider == nil {
			return nil, fmt.Errorf("%w: provider details are required", domain.ErrValidation)
		}
		if in.Provider.ServiceCategory == "" {
			return nil, fmt.Errorf("%w: service category is required", domain.ErrValidation)
		}
		if in.Provider.HourlyRate < domain.MinHourlyRate || in.Provider.HourlyRate > domain.MaxHourlyRate {
			return nil, fmt.Errorf("%w: hourly rate must be between %d and %d",
				domain.ErrValidation, domain.MinHourlyRate, domain.MaxHourlyRate)
		}
		user.Provider = &domain.ProviderProfile{
			Status:          domain.ApprovalPending,
			Phone:           in.Provider.Phone,
			District:        in.Provider.District,
			ServiceCategory: in.Provider.ServiceCategory,
			HourlyRate:      in.Provider.HourlyRate,
			Rating:          domain.DefaultProviderRating,
		}
	}

	return s.users.Create(ctx, user)
}

// Login verifies credentials and returns a signed JWT plus the user. A
// provider whose application is not yet approved can still sign in; booking
// eligibility is enforced separately by the lifecycle engine.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
