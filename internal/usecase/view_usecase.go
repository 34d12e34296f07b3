package usecase

import (
	"context"
	"log/slog"
	"time"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"
	"jobbridge-backend/pkg/audit"
)

type viewUsecase struct {
	demoRepo     domain.DemoSessionRepository
	overrideRepo domain.RoleOverrideRepository
	profileRepo  domain.ProfileRepository
	trail        *audit.Trail
	overrideTTL  time.Duration
}

func NewViewUsecase(
	demoRepo domain.DemoSessionRepository,
	overrideRepo domain.RoleOverrideRepository,
	profileRepo domain.ProfileRepository,
	trail *audit.Trail,
	overrideTTL time.Duration,
) domain.ViewUsecase {
	return &viewUsecase{
		demoRepo:     demoRepo,
		overrideRepo: overrideRepo,
		profileRepo:  profileRepo,
		trail:        trail,
		overrideTTL:  overrideTTL,
	}
}

// GetEffectiveView resolves the role lens and data partition for one request.
// Precedence: active demo session beats role override beats base account type.
// Resolution is fail-closed: a lookup error denies the request instead of
// guessing a view.
func (u *viewUsecase) GetEffectiveView(ctx context.Context, query domain.ViewQuery) (*domain.EffectiveView, error) {
	if query.UserID == "" {
		userID, err := domain.UserIDFromContext(ctx)
		if err != nil {
			return nil, err
		}
		query.UserID = userID
	}

	session, err := u.demoRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		return nil, apperror.Datastore("demo_session_lookup", err)
	}
	if session != nil && session.Enabled {
		role := domain.AccountTypeJobSeeker
		if session.DemoView != nil {
			role = domain.NormalizeAccountType(*session.DemoView)
		} else {
			slog.Warn("demo session without demo_view, defaulting to job_seeker", "user_id", query.UserID)
		}
		return &domain.EffectiveView{
			IsDemoEnabled: true,
			ViewRole:      role,
			Source:        domain.ViewSourceDemo,
			DemoView:      session.DemoView,
		}, nil
	}

	override, err := u.overrideRepo.GetActive(ctx, query.UserID, time.Now())
	if err != nil {
		return nil, apperror.Datastore("role_override_lookup", err)
	}
	if override != nil {
		expiresAt := override.ExpiresAt
		return &domain.EffectiveView{
			IsDemoEnabled:     false,
			ViewRole:          domain.NormalizeAccountType(override.ViewAs),
			Source:            domain.ViewSourceLive,
			OverrideExpiresAt: &expiresAt,
		}, nil
	}

	baseType := query.BaseAccountType
	if baseType == "" {
		profile, err := u.profileRepo.GetByID(ctx, query.UserID)
		if err != nil {
			if err == domain.ErrNotFound {
				// No profile yet (pre-onboarding); seeker is the floor role.
				baseType = domain.AccountTypeJobSeeker
			} else {
				return nil, apperror.Datastore("profile_lookup", err)
			}
		} else {
			baseType = profile.AccountType
		}
	}

	return &domain.EffectiveView{
		IsDemoEnabled: false,
		ViewRole:      domain.NormalizeAccountType(baseType),
		Source:        domain.ViewSourceLive,
	}, nil
}

func (u *viewUsecase) EnableDemo(ctx context.Context, userID, demoView string) (*domain.EffectiveView, error) {
	var dv *string
	if demoView != "" {
		normalized := domain.NormalizeAccountType(demoView)
		dv = &normalized
	}

	session := &domain.DemoSession{
		UserID:   userID,
		Enabled:  true,
		DemoView: dv,
	}
	if err := u.demoRepo.Upsert(ctx, session); err != nil {
		return nil, apperror.Datastore("demo_session_upsert", err)
	}

	u.trail.Record(ctx, audit.Event{
		Event:   audit.EventDemoEnabled,
		ActorID: userID,
		Details: map[string]string{"demo_view": demoView},
	})
	return u.GetEffectiveView(ctx, domain.ViewQuery{UserID: userID})
}

func (u *viewUsecase) DisableDemo(ctx context.Context, userID string) (*domain.EffectiveView, error) {
	session := &domain.DemoSession{
		UserID:  userID,
		Enabled: false,
	}
	if err := u.demoRepo.Upsert(ctx, session); err != nil {
		return nil, apperror.Datastore("demo_session_upsert", err)
	}

	u.trail.Record(ctx, audit.Event{
		Event:   audit.EventDemoDisabled,
		ActorID: userID,
	})
	return u.GetEffectiveView(ctx, domain.ViewQuery{UserID: userID})
}

func (u *viewUsecase) SetOverride(ctx context.Context, userID, viewAs string) (*domain.EffectiveView, error) {
	if viewAs != domain.AccountTypeJobSeeker && viewAs != domain.AccountTypeJobProvider {
		return nil, apperror.BadRequest("Ungültige Rolle: " + viewAs)
	}

	override := &domain.RoleOverride{
		UserID:    userID,
		ViewAs:    viewAs,
		ExpiresAt: time.Now().Add(u.overrideTTL),
		CreatedBy: userID,
	}
	if err := u.overrideRepo.Upsert(ctx, override); err != nil {
		return nil, apperror.Datastore("role_override_upsert", err)
	}

	u.trail.Record(ctx, audit.Event{
		Event:   audit.EventOverrideSet,
		ActorID: userID,
		Details: map[string]string{
			"view_as":    viewAs,
			"expires_at": override.ExpiresAt.UTC().Format(time.RFC3339),
		},
	})
	return u.GetEffectiveView(ctx, domain.ViewQuery{UserID: userID})
}

func (u *viewUsecase) ClearOverride(ctx context.Context, userID string) (*domain.EffectiveView, error) {
	if err := u.overrideRepo.Delete(ctx, userID); err != nil {
		return nil, apperror.Datastore("role_override_delete", err)
	}

	u.trail.Record(ctx, audit.Event{
		Event:   audit.EventOverrideCleared,
		ActorID: userID,
	})
	return u.GetEffectiveView(ctx, domain.ViewQuery{UserID: userID})
}
