package domain

import (
	"context"
	"time"
)

// OnboardingSubmitRequest completes signup. Minors (under 18) must provide
// guardian contact data; completing onboarding for a minor triggers the
// guardian-consent mail.
type OnboardingSubmitRequest struct {
	AccountType         string   `json:"account_type" validate:"required,oneof=job_seeker job_provider"`
	DisplayName         string   `json:"display_name" validate:"required,min=2,max=80"`
	City                string   `json:"city" validate:"required"`
	MarketID            *string  `json:"market_id,omitempty"`
	BirthDate           *string  `json:"birth_date,omitempty"` // Format: YYYY-MM-DD
	GuardianName        *string  `json:"guardian_name,omitempty"`
	GuardianEmail       *string  `json:"guardian_email,omitempty" validate:"omitempty,email"`
	PreferredCategories []string `json:"preferred_categories,omitempty"`
}

// OnboardingStatus is the completion summary shown by the wizard.
type OnboardingStatus struct {
	Completed             bool       `json:"completed"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
	GuardianConsentStatus string     `json:"guardian_consent_status"`
}

// GuardianConsent tracks one consent request. The token is the opaque secret
// embedded in the guardian's mail link.
type GuardianConsent struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	GuardianName  string     `json:"guardian_name"`
	GuardianEmail string     `json:"guardian_email"`
	Status        string     `json:"status"` // pending | granted | declined
	Token         string     `json:"-"`
	RequestedAt   time.Time  `json:"requested_at"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
}

type OnboardingRepository interface {
	GetStatus(ctx context.Context, userID string) (*OnboardingStatus, error)
	// SaveOnboarding upserts the profile and, for minors, the pending consent
	// row in one transaction.
	SaveOnboarding(ctx context.Context, profile *Profile, consent *GuardianConsent) error
	GetConsentByToken(ctx context.Context, token string) (*GuardianConsent, error)
	UpdateConsentStatus(ctx context.Context, consentID, status string) error
	ListPendingConsents(ctx context.Context, limit, offset int) ([]GuardianConsent, error)
}

type OnboardingUsecase interface {
	GetOnboardingStatus(ctx context.Context, userID string) (*OnboardingStatus, error)
	CompleteOnboarding(ctx context.Context, userID string, req *OnboardingSubmitRequest) (*OnboardingStatus, error)
	// DecideConsent is called from the guardian's mail link; decision is
	// granted or declined.
	DecideConsent(ctx context.Context, token, decision string) error
}
