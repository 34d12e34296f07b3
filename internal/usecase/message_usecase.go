package usecase

import (
	"context"
	"strings"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"
)

type messageUsecase struct {
	liveMsgs domain.MessageRepository
	demoMsgs domain.MessageRepository
	liveApps domain.ApplicationRepository
	demoApps domain.ApplicationRepository
	liveJobs domain.LiveJobRepository
	demoJobs domain.JobRepository
}

func NewMessageUsecase(
	liveMsgs domain.MessageRepository,
	demoMsgs domain.MessageRepository,
	liveApps domain.ApplicationRepository,
	demoApps domain.ApplicationRepository,
	liveJobs domain.LiveJobRepository,
	demoJobs domain.JobRepository,
) domain.MessageUsecase {
	return &messageUsecase{
		liveMsgs: liveMsgs,
		demoMsgs: demoMsgs,
		liveApps: liveApps,
		demoApps: demoApps,
		liveJobs: liveJobs,
		demoJobs: demoJobs,
	}
}

func (u *messageUsecase) msgsRepo(view *domain.EffectiveView) domain.MessageRepository {
	if view.IsDemo() {
		return u.demoMsgs
	}
	return u.liveMsgs
}

// authorize loads the application and verifies userID is one of its two
// parties (applicant or job owner).
func (u *messageUsecase) authorize(ctx context.Context, view *domain.EffectiveView, userID, applicationID string) (*domain.Application, error) {
	appsRepo := u.liveApps
	jobsRepo := domain.JobRepository(u.liveJobs)
	if view.IsDemo() {
		appsRepo = u.demoApps
		jobsRepo = u.demoJobs
	}

	app, err := appsRepo.GetByID(ctx, applicationID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Bewerbung nicht gefunden")
		}
		return nil, apperror.Datastore("get_application", err)
	}
	if app.UserID == userID {
		return app, nil
	}

	job, err := jobsRepo.GetByID(ctx, app.JobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job nicht gefunden")
		}
		return nil, apperror.Datastore("get_job", err)
	}
	if job.PostedBy != userID {
		return nil, apperror.Forbidden("Kein Zugriff auf diese Unterhaltung")
	}
	return app, nil
}

func (u *messageUsecase) Send(ctx context.Context, view *domain.EffectiveView, userID, applicationID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("Nachricht darf nicht leer sein")
	}
	if len(content) > 2000 {
		return nil, apperror.BadRequest("Nachricht ist zu lang (max. 2000 Zeichen)")
	}

	app, err := u.authorize(ctx, view, userID, applicationID)
	if err != nil {
		return nil, err
	}
	if !domain.CanChat(app.Status) {
		return nil, apperror.Conflict("Diese Unterhaltung ist geschlossen")
	}

	msg := &domain.Message{
		ApplicationID: applicationID,
		SenderID:      userID,
		Content:       content,
	}
	if err := u.msgsRepo(view).Create(ctx, msg); err != nil {
		return nil, apperror.Datastore("create_message", err)
	}

	if !view.IsDemo() {
		publishApplicationEvent(ctx, "message_sent", applicationID, app.JobID)
	}
	return msg, nil
}

func (u *messageUsecase) List(ctx context.Context, view *domain.EffectiveView, userID, applicationID string) ([]domain.Message, error) {
	if _, err := u.authorize(ctx, view, userID, applicationID); err != nil {
		return nil, err
	}

	messages, err := u.msgsRepo(view).ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, apperror.Datastore("list_messages", err)
	}
	return messages, nil
}

func (u *messageUsecase) MarkRead(ctx context.Context, view *domain.EffectiveView, userID, applicationID string) error {
	if _, err := u.authorize(ctx, view, userID, applicationID); err != nil {
		return err
	}

	if err := u.msgsRepo(view).MarkRead(ctx, applicationID, userID); err != nil {
		return apperror.Datastore("mark_messages_read", err)
	}
	return nil
}
