package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"
	"jobbridge-backend/pkg/audit"
	"jobbridge-backend/pkg/redis"
)

// applicationEventsChannel carries application lifecycle events for interested
// consumers (notification workers). Publishing is best effort.
const applicationEventsChannel = "jobbridge:applications"

type applicationUsecase struct {
	liveApps domain.ApplicationRepository
	demoApps domain.ApplicationRepository
	liveJobs domain.LiveJobRepository
	demoJobs domain.JobRepository
	profiles domain.ProfileRepository
	trail    *audit.Trail
}

func NewApplicationUsecase(
	liveApps domain.ApplicationRepository,
	demoApps domain.ApplicationRepository,
	liveJobs domain.LiveJobRepository,
	demoJobs domain.JobRepository,
	profiles domain.ProfileRepository,
	trail *audit.Trail,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		liveApps: liveApps,
		demoApps: demoApps,
		liveJobs: liveJobs,
		demoJobs: demoJobs,
		profiles: profiles,
		trail:    trail,
	}
}

func (u *applicationUsecase) appsRepo(view *domain.EffectiveView) domain.ApplicationRepository {
	if view.IsDemo() {
		return u.demoApps
	}
	return u.liveApps
}

func (u *applicationUsecase) jobsRepo(view *domain.EffectiveView) domain.JobRepository {
	if view.IsDemo() {
		return u.demoJobs
	}
	return u.liveJobs
}

func (u *applicationUsecase) ApplyToJob(ctx context.Context, view *domain.EffectiveView, userID, jobID, message string) (*domain.Application, error) {
	if view.ViewRole != domain.AccountTypeJobSeeker {
		return nil, apperror.Forbidden("Nur Jobsuchende können sich bewerben")
	}

	// Consent gate applies to the live partition only; the demo sandbox is for
	// exploring the product.
	if !view.IsDemo() {
		profile, err := u.profiles.GetByID(ctx, userID)
		if err != nil {
			if err == domain.ErrNotFound {
				return nil, apperror.Forbidden("Onboarding nicht abgeschlossen")
			}
			return nil, apperror.Datastore("profile_lookup", err)
		}
		if profile.IsMinor(timeNow()) && profile.GuardianConsentStatus != domain.ConsentStatusGranted {
			return nil, apperror.Forbidden("Einverständnis der Erziehungsberechtigten erforderlich")
		}
	}

	job, err := u.jobsRepo(view).GetByID(ctx, jobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job nicht gefunden")
		}
		return nil, apperror.Datastore("get_job", err)
	}
	if job.PostedBy == userID {
		return nil, apperror.BadRequest("Bewerbung auf eigenen Job nicht möglich")
	}
	if job.Status != domain.JobStatusOpen {
		return nil, apperror.Conflict("Dieser Job nimmt keine Bewerbungen mehr an")
	}

	// Friendly duplicate check; the unique constraint on the insert still
	// catches the race between two concurrent applies.
	exists, err := u.appsRepo(view).ExistsForJob(ctx, jobID, userID)
	if err != nil {
		return nil, apperror.Datastore("application_lookup", err)
	}
	if exists {
		return nil, apperror.Conflict("Du hast dich bereits auf diesen Job beworben")
	}

	app := &domain.Application{
		JobID:  jobID,
		UserID: userID,
	}
	if message != "" {
		app.Message = &message
	}
	created, err := u.appsRepo(view).Create(ctx, app)
	if err != nil {
		return nil, apperror.Datastore("create_application", err)
	}
	if !created {
		return nil, apperror.Conflict("Du hast dich bereits auf diesen Job beworben")
	}

	if !view.IsDemo() {
		publishApplicationEvent(ctx, "application_submitted", app.ID, jobID)
	}
	return app, nil
}

func (u *applicationUsecase) GetMyApplications(ctx context.Context, view *domain.EffectiveView, userID string) ([]domain.Application, error) {
	apps, err := u.appsRepo(view).GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Datastore("get_applications", err)
	}
	return apps, nil
}

func (u *applicationUsecase) ListByJobID(ctx context.Context, view *domain.EffectiveView, userID, jobID string) ([]domain.Application, error) {
	job, err := u.jobsRepo(view).GetByID(ctx, jobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job nicht gefunden")
		}
		return nil, apperror.Datastore("get_job", err)
	}
	if job.PostedBy != userID {
		return nil, apperror.Forbidden("Kein Zugriff auf diesen Job")
	}

	apps, err := u.appsRepo(view).GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Datastore("get_applications", err)
	}
	return apps, nil
}

// AcceptApplicant accepts one application and auto-rejects every still
// submitted peer on the same job in one transaction. single_hire fills the
// job, multi_hire reserves it so the provider can keep accepting.
func (u *applicationUsecase) AcceptApplicant(ctx context.Context, view *domain.EffectiveView, userID, applicationID string) (*domain.AcceptResult, error) {
	repo := u.appsRepo(view)

	app, err := repo.GetByID(ctx, applicationID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Bewerbung nicht gefunden")
		}
		return nil, apperror.Datastore("get_application", err)
	}

	job, err := u.jobsRepo(view).GetByID(ctx, app.JobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job nicht gefunden")
		}
		return nil, apperror.Datastore("get_job", err)
	}
	if job.PostedBy != userID {
		return nil, apperror.Forbidden("Kein Zugriff auf diese Bewerbung")
	}
	if !domain.IsTransitionAllowed(app.Status, domain.ApplicationStatusAccepted) {
		return nil, apperror.Conflict("Bewerbung kann im Status '" + app.Status + "' nicht angenommen werden")
	}

	jobStatus := domain.JobStatusFilled
	if job.HiringMode == domain.HiringModeMulti {
		jobStatus = domain.JobStatusReserved
	}

	result, err := repo.Accept(ctx, applicationID, jobStatus)
	if err != nil {
		if err == domain.ErrNotFound {
			// Lost a concurrent accept race between the read and the update.
			return nil, apperror.Conflict("Bewerbung wurde zwischenzeitlich geändert")
		}
		return nil, apperror.Datastore("accept_application", err)
	}

	u.trail.Record(ctx, audit.Event{
		Event:     audit.EventApplicantAccept,
		ActorID:   userID,
		SubjectID: result.Application.UserID,
		Details: map[string]string{
			"application_id":      applicationID,
			"job_id":              app.JobID,
			"job_status":          jobStatus,
			"auto_rejected_count": strconv.Itoa(result.AutoRejectedCount),
		},
	})
	if !view.IsDemo() {
		publishApplicationEvent(ctx, "application_accepted", applicationID, app.JobID)
	}
	return result, nil
}

func (u *applicationUsecase) RejectApplicant(ctx context.Context, view *domain.EffectiveView, userID, applicationID, reason string) error {
	repo := u.appsRepo(view)

	app, err := repo.GetByID(ctx, applicationID)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Bewerbung nicht gefunden")
		}
		return apperror.Datastore("get_application", err)
	}

	job, err := u.jobsRepo(view).GetByID(ctx, app.JobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Job nicht gefunden")
		}
		return apperror.Datastore("get_job", err)
	}
	if job.PostedBy != userID {
		return apperror.Forbidden("Kein Zugriff auf diese Bewerbung")
	}
	if !domain.IsTransitionAllowed(app.Status, domain.ApplicationStatusRejected) {
		return apperror.Conflict("Bewerbung kann im Status '" + app.Status + "' nicht abgelehnt werden")
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	if err := repo.UpdateStatus(ctx, applicationID, domain.ApplicationStatusRejected, reasonPtr); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Bewerbung nicht gefunden")
		}
		return apperror.Datastore("reject_application", err)
	}

	if !view.IsDemo() {
		publishApplicationEvent(ctx, "application_rejected", applicationID, app.JobID)
	}
	return nil
}

func (u *applicationUsecase) WithdrawApplication(ctx context.Context, view *domain.EffectiveView, userID, applicationID string, reason *string) error {
	repo := u.appsRepo(view)

	app, err := repo.GetByID(ctx, applicationID)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Bewerbung nicht gefunden")
		}
		return apperror.Datastore("get_application", err)
	}
	if app.UserID != userID {
		return apperror.Forbidden("Kein Zugriff auf diese Bewerbung")
	}
	if !domain.IsTransitionAllowed(app.Status, domain.ApplicationStatusWithdrawn) {
		return apperror.Conflict("Bewerbung kann im Status '" + app.Status + "' nicht zurückgezogen werden")
	}

	if err := repo.UpdateStatus(ctx, applicationID, domain.ApplicationStatusWithdrawn, reason); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Bewerbung nicht gefunden")
		}
		return apperror.Datastore("withdraw_application", err)
	}
	return nil
}

// publishApplicationEvent mirrors lifecycle changes to Redis. Missing Redis or
// a publish error never fails the request.
func publishApplicationEvent(ctx context.Context, eventType, applicationID, jobID string) {
	rdb := redis.Client()
	if rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{
		"type":           eventType,
		"application_id": applicationID,
		"job_id":         jobID,
	})
	if err := rdb.Publish(ctx, applicationEventsChannel, payload).Err(); err != nil {
		slog.Warn("application event publish failed", "type", eventType, "error", err)
	}
}
