package usecase

import (
	"context"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"
)

type authUsecase struct {
	profileRepo domain.ProfileRepository
}

func NewAuthUsecase(profileRepo domain.ProfileRepository) domain.AuthUsecase {
	return &authUsecase{profileRepo: profileRepo}
}

// GetCurrentProfile loads the caller's own profile. A missing row is a normal
// pre-onboarding state, surfaced as NotFound rather than an internal error.
func (u *authUsecase) GetCurrentProfile(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Profil nicht gefunden")
		}
		return nil, apperror.Datastore("profile_lookup", err)
	}
	return profile, nil
}
