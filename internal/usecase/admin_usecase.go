package usecase

import (
	"context"
	"strconv"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"
	"jobbridge-backend/pkg/audit"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type adminUsecase struct {
	adminRepo      domain.AdminRepository
	profileRepo    domain.ProfileRepository
	liveJobs       domain.LiveJobRepository
	onboardingRepo domain.OnboardingRepository
	trail          *audit.Trail
}

func NewAdminUsecase(
	adminRepo domain.AdminRepository,
	profileRepo domain.ProfileRepository,
	liveJobs domain.LiveJobRepository,
	onboardingRepo domain.OnboardingRepository,
	trail *audit.Trail,
) domain.AdminUsecase {
	return &adminUsecase{
		adminRepo:      adminRepo,
		profileRepo:    profileRepo,
		liveJobs:       liveJobs,
		onboardingRepo: onboardingRepo,
		trail:          trail,
	}
}

func pageBounds(page, pageSize int) (limit, offset int, normPage, normSize int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return pageSize, (page - 1) * pageSize, page, pageSize
}

func (u *adminUsecase) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats, err := u.adminRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Datastore("admin_stats", err)
	}
	return stats, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context, page, pageSize int) (*domain.PaginatedResult[domain.AdminUser], error) {
	limit, offset, page, pageSize := pageBounds(page, pageSize)
	users, total, err := u.adminRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Datastore("admin_list_users", err)
	}
	return &domain.PaginatedResult[domain.AdminUser]{
		Items:    users,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (u *adminUsecase) SetUserDisabled(ctx context.Context, actorID, userID string, disabled bool) error {
	if actorID == userID {
		return apperror.BadRequest("Eigenes Konto kann nicht deaktiviert werden")
	}

	if err := u.profileRepo.SetDisabled(ctx, userID, disabled); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Profil nicht gefunden")
		}
		return apperror.Datastore("set_user_disabled", err)
	}

	u.trail.Record(ctx, audit.Event{
		Event:     audit.EventStaffUserDisable,
		ActorID:   actorID,
		SubjectID: userID,
		Details:   map[string]string{"disabled": strconv.FormatBool(disabled)},
	})
	return nil
}

func (u *adminUsecase) ListJobs(ctx context.Context, status string, page, pageSize int) (*domain.PaginatedResult[domain.AdminJob], error) {
	if status != "" {
		switch status {
		case domain.JobStatusDraft, domain.JobStatusOpen, domain.JobStatusClosed,
			domain.JobStatusReviewing, domain.JobStatusReserved, domain.JobStatusFilled:
		default:
			return nil, apperror.BadRequest("Unbekannter Jobstatus: " + status)
		}
	}

	limit, offset, page, pageSize := pageBounds(page, pageSize)
	jobs, total, err := u.adminRepo.ListJobs(ctx, status, limit, offset)
	if err != nil {
		return nil, apperror.Datastore("admin_list_jobs", err)
	}
	return &domain.PaginatedResult[domain.AdminJob]{
		Items:    jobs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// CloseJob force-closes any live job regardless of ownership; that is the
// point of the moderation surface.
func (u *adminUsecase) CloseJob(ctx context.Context, actorID, jobID string) error {
	if err := u.liveJobs.UpdateStatus(ctx, jobID, domain.JobStatusClosed); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Job nicht gefunden")
		}
		return apperror.Datastore("admin_close_job", err)
	}

	u.trail.Record(ctx, audit.Event{
		Event:     audit.EventStaffJobClosed,
		ActorID:   actorID,
		SubjectID: jobID,
	})
	return nil
}

func (u *adminUsecase) ListPendingConsents(ctx context.Context, page, pageSize int) ([]domain.GuardianConsent, error) {
	limit, offset, _, _ := pageBounds(page, pageSize)
	consents, err := u.onboardingRepo.ListPendingConsents(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Datastore("list_pending_consents", err)
	}
	return consents, nil
}
