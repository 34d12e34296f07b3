package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Account types. The role model is closed: anything that is not a provider is
// treated as a seeker, including unknown or legacy values.
const (
	AccountTypeJobSeeker   = "job_seeker"
	AccountTypeJobProvider = "job_provider"
)

// RoleStaff is not an account type; it is granted via Profile.IsStaff and only
// matters for the admin console.
const RoleStaff = "staff"

// NormalizeAccountType collapses the account type to the two-value role model.
func NormalizeAccountType(accountType string) string {
	if accountType == AccountTypeJobProvider {
		return AccountTypeJobProvider
	}
	return AccountTypeJobSeeker
}

// Guardian consent status for minors.
const (
	ConsentStatusNone     = "none"
	ConsentStatusPending  = "pending"
	ConsentStatusGranted  = "granted"
	ConsentStatusDeclined = "declined"
)

// Profile is the user identity record, created at signup completion. Profiles
// are never hard-deleted; staff can disable them instead.
type Profile struct {
	ID                    string     `json:"id"`
	AccountType           string     `json:"account_type"`
	DisplayName           string     `json:"display_name"`
	City                  string     `json:"city"`
	MarketID              *string    `json:"market_id,omitempty"`
	Verified              bool       `json:"verified"`
	IsStaff               bool       `json:"is_staff"`
	IsDisabled            bool       `json:"is_disabled"`
	BirthDate             *time.Time `json:"birth_date,omitempty"`
	GuardianName          *string    `json:"guardian_name,omitempty"`
	GuardianEmail         *string    `json:"guardian_email,omitempty"`
	GuardianConsentStatus string     `json:"guardian_consent_status"`
	PreferredCategories   []string   `json:"preferred_categories,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// IsMinor reports whether the profile belongs to someone under 18. Profiles
// without a birth date are treated as adults; onboarding requires the date for
// seekers, so the nil case only covers providers.
func (p *Profile) IsMinor(now time.Time) bool {
	if p.BirthDate == nil {
		return false
	}
	return p.BirthDate.AddDate(18, 0, 0).After(now)
}

// Role returns the role lens used by handlers: staff beats account type.
func (p *Profile) Role() string {
	if p.IsStaff {
		return RoleStaff
	}
	return NormalizeAccountType(p.AccountType)
}

// Market is a region a profile and its jobs belong to.
type Market struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// ProfileRepository reads and mutates profile rows. Creation happens through
// the onboarding repository, which writes the profile and its consent request
// in one transaction.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	// GetByIDs batch-fetches profiles for enrichment; missing ids are simply
	// absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]Profile, error)
	Update(ctx context.Context, profile *Profile) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
}

type MarketRepository interface {
	List(ctx context.Context) ([]Market, error)
	GetByIDs(ctx context.Context, ids []string) ([]Market, error)
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, profile *Profile) error
	ListMarkets(ctx context.Context) ([]Market, error)
}

type AuthUsecase interface {
	// GetCurrentProfile returns NotFound for token holders who have not
	// completed onboarding; the frontend uses that to open the wizard.
	GetCurrentProfile(ctx context.Context, id string) (*Profile, error)
}
