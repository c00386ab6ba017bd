package domain

import (
	"errors"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// ApprovalStatus is the review state of a provider application.
type ApprovalStatus string

const (
	ApprovalUnapproved ApprovalStatus = "unapproved"
	ApprovalPending    ApprovalStatus = "pending"
	ApprovalApproved   ApprovalStatus = "approved"
	ApprovalRejected   ApprovalStatus = "rejected"
)

// Hourly rate bounds enforced for any provider profile.
const (
	MinHourlyRate = 100
	MaxHourlyRate = 5000
)

// DefaultProviderRating is the neutral rating assigned to new providers.
const DefaultProviderRating = 4.5

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Valid reports whether s is a known approval status.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalUnapproved, ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// ProviderProfile holds the provider-only attributes of a user. Approval
// metadata is mutually exclusive by status: RejectionReason is non-empty only
// under rejected, ApprovedAt/ApprovedBy are non-nil only under approved.
type ProviderProfile struct {
	Status          ApprovalStatus `json:"status" bson:"status"`
	Phone           string         `json:"phone,omitempty" bson:"phone,omitempty"`
	District        string         `json:"district,omitempty" bson:"district,omitempty"`
	ServiceCategory string         `json:"service_category" bson:"service_category"`
	HourlyRate      float64        `json:"hourly_rate" bson:"hourly_rate"`
	Rating          float64        `json:"rating" bson:"rating"`
	CompletedJobs   int            `json:"completed_jobs" bson:"completed_jobs"`
	RejectionReason string         `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	ApprovedBy      string         `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
}

// User models a principal in the system. Provider is non-nil only for
// role=provider users.
type User struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	Role         string           `json:"role"`
	Verified     bool             `json:"verified"`
	Provider     *ProviderProfile `json:"provider_profile,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// IsApprovedProvider reports whether u can be booked for appointments.
func (u *User) IsApprovedProvider() bool {
	return u.Role == RoleProvider && u.Provider != nil && u.Provider.Status == ApprovalApproved
}
