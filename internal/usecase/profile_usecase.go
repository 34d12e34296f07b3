package usecase

import (
	"context"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	marketRepo  domain.MarketRepository
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, marketRepo domain.MarketRepository) domain.ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo, marketRepo: marketRepo}
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Profil nicht gefunden")
		}
		return nil, apperror.Datastore("profile_lookup", err)
	}
	return profile, nil
}

// UpdateProfile writes the caller's own profile. Guardian and staff fields are
// preserved from the stored row; they change through their own flows.
func (u *profileUsecase) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	existing, err := u.profileRepo.GetByID(ctx, profile.ID)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Profil nicht gefunden")
		}
		return apperror.Datastore("profile_lookup", err)
	}

	existing.DisplayName = profile.DisplayName
	existing.City = profile.City
	existing.MarketID = profile.MarketID
	existing.PreferredCategories = profile.PreferredCategories

	if err := u.profileRepo.Update(ctx, existing); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Profil nicht gefunden")
		}
		return apperror.Datastore("profile_update", err)
	}
	return nil
}

func (u *profileUsecase) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	markets, err := u.marketRepo.List(ctx)
	if err != nil {
		return nil, apperror.Datastore("list_markets", err)
	}
	return markets, nil
}
