package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"
	"jobbridge-backend/pkg/audit"
	"jobbridge-backend/pkg/email"

	"github.com/go-playground/validator/v10"
)

type onboardingUsecase struct {
	repo        domain.OnboardingRepository
	emailSvc    *email.EmailService
	trail       *audit.Trail
	validate    *validator.Validate
	frontendURL string
}

func NewOnboardingUsecase(
	repo domain.OnboardingRepository,
	emailSvc *email.EmailService,
	trail *audit.Trail,
	frontendURL string,
) domain.OnboardingUsecase {
	return &onboardingUsecase{
		repo:        repo,
		emailSvc:    emailSvc,
		trail:       trail,
		validate:    validator.New(),
		frontendURL: frontendURL,
	}
}

func (u *onboardingUsecase) GetOnboardingStatus(ctx context.Context, userID string) (*domain.OnboardingStatus, error) {
	status, err := u.repo.GetStatus(ctx, userID)
	if err != nil {
		return nil, apperror.Datastore("onboarding_status", err)
	}
	return status, nil
}

// CompleteOnboarding writes the profile. Seekers under 18 additionally get a
// pending guardian-consent row and a consent mail; until the guardian grants,
// the seeker cannot apply to live jobs.
func (u *onboardingUsecase) CompleteOnboarding(ctx context.Context, userID string, req *domain.OnboardingSubmitRequest) (*domain.OnboardingStatus, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Ungültige Onboarding-Daten: " + err.Error())
	}

	profile := &domain.Profile{
		ID:                    userID,
		AccountType:           req.AccountType,
		DisplayName:           req.DisplayName,
		City:                  req.City,
		MarketID:              req.MarketID,
		GuardianName:          req.GuardianName,
		GuardianEmail:         req.GuardianEmail,
		GuardianConsentStatus: domain.ConsentStatusNone,
		PreferredCategories:   req.PreferredCategories,
	}

	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apperror.BadRequest("Ungültiges Geburtsdatum, erwartet YYYY-MM-DD")
		}
		profile.BirthDate = &birthDate
	}

	var consent *domain.GuardianConsent
	if profile.IsMinor(timeNow()) {
		if req.GuardianName == nil || req.GuardianEmail == nil || *req.GuardianName == "" || *req.GuardianEmail == "" {
			return nil, apperror.BadRequest("Minderjährige benötigen Name und E-Mail eines Erziehungsberechtigten")
		}
		token, err := consentToken()
		if err != nil {
			return nil, apperror.Internal(err)
		}
		profile.GuardianConsentStatus = domain.ConsentStatusPending
		consent = &domain.GuardianConsent{
			UserID:        userID,
			GuardianName:  *req.GuardianName,
			GuardianEmail: *req.GuardianEmail,
			Status:        domain.ConsentStatusPending,
			Token:         token,
		}
	}

	if err := u.repo.SaveOnboarding(ctx, profile, consent); err != nil {
		return nil, apperror.Datastore("save_onboarding", err)
	}

	if consent != nil {
		u.trail.Record(ctx, audit.Event{
			Event:     audit.EventConsentRequested,
			ActorID:   userID,
			SubjectID: consent.GuardianEmail,
		})
		// Mail failure must not roll back onboarding; staff can resend from
		// the pending-consents list.
		data := email.GuardianConsentData{
			GuardianName: consent.GuardianName,
			MinorName:    profile.DisplayName,
			City:         profile.City,
			ConsentURL:   u.frontendURL + "/consent?token=" + consent.Token,
		}
		if err := u.emailSvc.SendGuardianConsentRequest(consent.GuardianEmail, data); err != nil {
			slog.Warn("guardian consent mail failed", "user_id", userID, "error", err)
		}
	}

	return u.GetOnboardingStatus(ctx, userID)
}

func (u *onboardingUsecase) DecideConsent(ctx context.Context, token, decision string) error {
	if decision != domain.ConsentStatusGranted && decision != domain.ConsentStatusDeclined {
		return apperror.BadRequest("Ungültige Entscheidung: " + decision)
	}

	consent, err := u.repo.GetConsentByToken(ctx, token)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Anfrage nicht gefunden")
		}
		return apperror.Datastore("consent_lookup", err)
	}
	if consent.Status != domain.ConsentStatusPending {
		return apperror.Conflict("Diese Anfrage wurde bereits entschieden")
	}

	if err := u.repo.UpdateConsentStatus(ctx, consent.ID, decision); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Anfrage nicht gefunden")
		}
		return apperror.Datastore("consent_update", err)
	}

	u.trail.Record(ctx, audit.Event{
		Event:     audit.EventConsentDecided,
		SubjectID: consent.UserID,
		Details:   map[string]string{"decision": decision},
	})
	return nil
}

func consentToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
