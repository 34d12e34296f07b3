package usecase

import (
	"context"
	"testing"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type messageUsecaseMocks struct {
	liveMsgs *mockMessageRepo
	demoMsgs *mockMessageRepo
	liveApps *mockApplicationRepo
	demoApps *mockApplicationRepo
	liveJobs *mockLiveJobRepo
	demoJobs *mockJobRepo
}

func newMessageUsecase() (domain.MessageUsecase, *messageUsecaseMocks) {
	m := &messageUsecaseMocks{
		liveMsgs: new(mockMessageRepo),
		demoMsgs: new(mockMessageRepo),
		liveApps: new(mockApplicationRepo),
		demoApps: new(mockApplicationRepo),
		liveJobs: new(mockLiveJobRepo),
		demoJobs: new(mockJobRepo),
	}
	uc := NewMessageUsecase(m.liveMsgs, m.demoMsgs, m.liveApps, m.demoApps, m.liveJobs, m.demoJobs)
	return uc, m
}

func TestSendMessage_ApplicantMayWriteWhileActive(t *testing.T) {
	uc, m := newMessageUsecase()

	m.liveApps.On("GetByID", mock.Anything, "app-1").
		Return(&domain.Application{ID: "app-1", JobID: "job-1", UserID: "seeker-1", Status: domain.ApplicationStatusNegotiating}, nil)
	m.liveMsgs.On("Create", mock.Anything, mock.MatchedBy(func(msg *domain.Message) bool {
		return msg.ApplicationID == "app-1" && msg.SenderID == "seeker-1" && msg.Content == "Wann passt es?"
	})).Return(nil)

	msg, err := uc.Send(context.Background(), liveView(domain.AccountTypeJobSeeker), "seeker-1", "app-1", "Wann passt es?")

	assert.NoError(t, err)
	assert.Equal(t, "seeker-1", msg.SenderID)
}

func TestSendMessage_ClosedApplicationIsReadOnly(t *testing.T) {
	uc, m := newMessageUsecase()

	m.liveApps.On("GetByID", mock.Anything, "app-1").
		Return(&domain.Application{ID: "app-1", JobID: "job-1", UserID: "seeker-1", Status: domain.ApplicationStatusRejected}, nil)

	msg, err := uc.Send(context.Background(), liveView(domain.AccountTypeJobSeeker), "seeker-1", "app-1", "Hallo?")

	assert.Nil(t, msg)
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
	m.liveMsgs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessage_ThirdPartyForbidden(t *testing.T) {
	uc, m := newMessageUsecase()

	m.liveApps.On("GetByID", mock.Anything, "app-1").
		Return(&domain.Application{ID: "app-1", JobID: "job-1", UserID: "seeker-1", Status: domain.ApplicationStatusSubmitted}, nil)
	m.liveJobs.On("GetByID", mock.Anything, "job-1").
		Return(&domain.Job{ID: "job-1", PostedBy: "provider-1"}, nil)

	_, err := uc.Send(context.Background(), liveView(domain.AccountTypeJobSeeker), "intruder", "app-1", "Hi")

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
}

func TestSendMessage_EmptyContentRejected(t *testing.T) {
	uc, m := newMessageUsecase()

	_, err := uc.Send(context.Background(), liveView(domain.AccountTypeJobSeeker), "seeker-1", "app-1", "   ")

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	m.liveApps.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestListMessages_DemoViewUsesDemoPartition(t *testing.T) {
	uc, m := newMessageUsecase()

	m.demoApps.On("GetByID", mock.Anything, "demo-app-1").
		Return(&domain.Application{ID: "demo-app-1", JobID: "demo-job-1", UserID: "seeker-1", Status: domain.ApplicationStatusSubmitted}, nil)
	m.demoMsgs.On("ListByApplication", mock.Anything, "demo-app-1").
		Return([]domain.Message{{ID: "m-1", ApplicationID: "demo-app-1"}}, nil)

	messages, err := uc.List(context.Background(), demoView(domain.AccountTypeJobSeeker), "seeker-1", "demo-app-1")

	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	m.liveMsgs.AssertNotCalled(t, "ListByApplication", mock.Anything, mock.Anything)
	m.liveApps.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestMarkRead_ProviderMarksApplicantMessages(t *testing.T) {
	uc, m := newMessageUsecase()

	m.liveApps.On("GetByID", mock.Anything, "app-1").
		Return(&domain.Application{ID: "app-1", JobID: "job-1", UserID: "seeker-1", Status: domain.ApplicationStatusAccepted}, nil)
	m.liveJobs.On("GetByID", mock.Anything, "job-1").
		Return(&domain.Job{ID: "job-1", PostedBy: "provider-1"}, nil)
	m.liveMsgs.On("MarkRead", mock.Anything, "app-1", "provider-1").Return(nil)

	err := uc.MarkRead(context.Background(), liveView(domain.AccountTypeJobProvider), "provider-1", "app-1")

	assert.NoError(t, err)
	m.liveMsgs.AssertExpectations(t)
}
