package usecase

import (
	"context"
	"errors"
	"testing"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type jobUsecaseMocks struct {
	liveJobs *mockLiveJobRepo
	demoJobs *mockJobRepo
	liveApps *mockApplicationRepo
	demoApps *mockApplicationRepo
	profiles *mockProfileRepo
	markets  *mockMarketRepo
}

func newJobUsecase() (domain.JobUsecase, *jobUsecaseMocks) {
	m := &jobUsecaseMocks{
		liveJobs: new(mockLiveJobRepo),
		demoJobs: new(mockJobRepo),
		liveApps: new(mockApplicationRepo),
		demoApps: new(mockApplicationRepo),
		profiles: new(mockProfileRepo),
		markets:  new(mockMarketRepo),
	}
	uc := NewJobUsecase(m.liveJobs, m.demoJobs, m.liveApps, m.demoApps, m.profiles, m.markets)
	return uc, m
}

func TestFetchJobs_DemoViewNeverTouchesLiveTables(t *testing.T) {
	uc, m := newJobUsecase()

	m.demoJobs.On("FetchFeed", mock.Anything, (*string)(nil), domain.JobStatusOpen, domain.DefaultJobsLimit, 0).
		Return([]domain.Job{{ID: "demo-job-1", PostedBy: "provider-1"}}, nil)
	m.demoApps.On("GetByUserID", mock.Anything, "user-1").Return([]domain.Application{}, nil)
	m.markets.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Market{}, nil)
	m.profiles.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Profile{}, nil)

	items, err := uc.FetchJobs(context.Background(), domain.FetchJobsParams{
		Mode:   domain.FetchModeFeed,
		View:   demoView(domain.AccountTypeJobSeeker),
		UserID: "user-1",
	})

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "demo-job-1", items[0].ID)
	m.liveJobs.AssertNotCalled(t, "FetchFeed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.liveApps.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestFetchJobs_DefaultsAndCapsLimit(t *testing.T) {
	uc, m := newJobUsecase()

	// Zero and oversized limits both collapse to the default page size.
	m.liveJobs.On("FetchFeed", mock.Anything, (*string)(nil), domain.JobStatusOpen, domain.DefaultJobsLimit, 0).
		Return([]domain.Job{}, nil).Twice()

	_, err := uc.FetchJobs(context.Background(), domain.FetchJobsParams{
		Mode: domain.FetchModeFeed,
		View: liveView(domain.AccountTypeJobSeeker),
	})
	assert.NoError(t, err)

	_, err = uc.FetchJobs(context.Background(), domain.FetchJobsParams{
		Mode:  domain.FetchModeFeed,
		View:  liveView(domain.AccountTypeJobSeeker),
		Limit: 500,
	})
	assert.NoError(t, err)
	m.liveJobs.AssertExpectations(t)
}

func TestFetchJobs_PassesPaginationWindow(t *testing.T) {
	uc, m := newJobUsecase()

	m.liveJobs.On("FetchFeed", mock.Anything, (*string)(nil), domain.JobStatusOpen, 10, 20).
		Return([]domain.Job{}, nil)

	_, err := uc.FetchJobs(context.Background(), domain.FetchJobsParams{
		Mode:   domain.FetchModeFeed,
		View:   liveView(domain.AccountTypeJobSeeker),
		Limit:  10,
		Offset: 20,
	})

	assert.NoError(t, err)
	m.liveJobs.AssertExpectations(t)
}

func TestFetchJobs_AnnotatesOwnApplication(t *testing.T) {
	uc, m := newJobUsecase()

	m.liveJobs.On("FetchFeed", mock.Anything, (*string)(nil), domain.JobStatusOpen, domain.DefaultJobsLimit, 0).
		Return([]domain.Job{{ID: "job-1", PostedBy: "provider-1"}, {ID: "job-2", PostedBy: "provider-1"}}, nil)
	m.liveApps.On("GetByUserID", mock.Anything, "user-1").
		Return([]domain.Application{{ID: "app-1", JobID: "job-1", UserID: "user-1", Status: domain.ApplicationStatusSubmitted}}, nil)
	m.markets.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Market{}, nil)
	m.profiles.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Profile{}, nil)

	items, err := uc.FetchJobs(context.Background(), domain.FetchJobsParams{
		Mode:   domain.FetchModeFeed,
		View:   liveView(domain.AccountTypeJobSeeker),
		UserID: "user-1",
	})

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, items[0].IsApplied)
	assert.Equal(t, "app-1", *items[0].ApplicationID)
	assert.Equal(t, domain.ApplicationStatusSubmitted, *items[0].ApplicationStatus)
	assert.False(t, items[1].IsApplied)
}

func TestFetchJobs_AnnotationFailureDegradesListing(t *testing.T) {
	uc, m := newJobUsecase()

	m.liveJobs.On("FetchFeed", mock.Anything, (*string)(nil), domain.JobStatusOpen, domain.DefaultJobsLimit, 0).
		Return([]domain.Job{{ID: "job-1", PostedBy: "provider-1"}}, nil)
	m.liveApps.On("GetByUserID", mock.Anything, "user-1").
		Return(nil, errors.New("permission denied"))
	m.markets.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Market{}, nil)
	m.profiles.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Profile{}, nil)

	items, err := uc.FetchJobs(context.Background(), domain.FetchJobsParams{
		Mode:   domain.FetchModeFeed,
		View:   liveView(domain.AccountTypeJobSeeker),
		UserID: "user-1",
	})

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.False(t, items[0].IsApplied)
}

func TestCreateJob_SeekerViewForbidden(t *testing.T) {
	uc, m := newJobUsecase()

	outcome, err := uc.CreateJob(context.Background(), liveView(domain.AccountTypeJobSeeker), "user-1",
		&domain.Job{Title: "Rasen mähen"}, nil)

	assert.Nil(t, outcome)
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
	m.liveJobs.AssertNotCalled(t, "CreateAtomic", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateJob_AtomicProcedureSucceeds(t *testing.T) {
	uc, m := newJobUsecase()

	details := &domain.JobPrivateDetails{Address: "Musterweg 1"}
	m.liveJobs.On("CreateAtomic", mock.Anything, mock.Anything, details).Return("job-1", nil)

	outcome, err := uc.CreateJob(context.Background(), liveView(domain.AccountTypeJobProvider), "provider-1",
		&domain.Job{Title: "Rasen mähen"}, details)

	assert.NoError(t, err)
	assert.Equal(t, domain.CreateOutcomeSuccess, outcome.Outcome)
	assert.Equal(t, "job-1", outcome.JobID)
	assert.Equal(t, domain.PrivateDetailsOK, outcome.PrivateDetails)
	assert.Equal(t, domain.CreatedViaRPC, outcome.CreatedVia)
	assert.Nil(t, outcome.PrivateError)
	m.liveJobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateJob_FallsBackToTableWhenProcedureFails(t *testing.T) {
	uc, m := newJobUsecase()

	m.liveJobs.On("CreateAtomic", mock.Anything, mock.Anything, (*domain.JobPrivateDetails)(nil)).
		Return("", errors.New("function create_job_atomic does not exist"))
	m.liveJobs.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
		return j.PostedBy == "provider-1" && j.Status == domain.JobStatusOpen
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Job).ID = "job-2"
	}).Return(nil)

	outcome, err := uc.CreateJob(context.Background(), liveView(domain.AccountTypeJobProvider), "provider-1",
		&domain.Job{Title: "Einkaufshilfe"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.CreateOutcomeSuccess, outcome.Outcome)
	assert.Equal(t, "job-2", outcome.JobID)
	assert.Equal(t, domain.PrivateDetailsSkipped, outcome.PrivateDetails)
	assert.Equal(t, domain.CreatedViaTable, outcome.CreatedVia)
}

func TestCreateJob_PartialWhenSidecarWriteFails(t *testing.T) {
	uc, m := newJobUsecase()

	details := &domain.JobPrivateDetails{Address: "Musterweg 1"}
	m.liveJobs.On("CreateAtomic", mock.Anything, mock.Anything, details).
		Return("", errors.New("rpc unavailable"))
	m.liveJobs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Job).ID = "job-3"
	}).Return(nil)
	m.liveJobs.On("UpsertPrivateDetails", mock.Anything, details).
		Return(errors.New("permission denied for table job_private_details"))

	outcome, err := uc.CreateJob(context.Background(), liveView(domain.AccountTypeJobProvider), "provider-1",
		&domain.Job{Title: "Nachhilfe"}, details)

	assert.NoError(t, err)
	assert.Equal(t, domain.CreateOutcomePartial, outcome.Outcome)
	assert.Equal(t, "job-3", outcome.JobID)
	assert.Equal(t, domain.PrivateDetailsFailed, outcome.PrivateDetails)
	assert.Equal(t, domain.CreatedViaTable, outcome.CreatedVia)
	if assert.NotNil(t, outcome.PrivateError) {
		assert.Equal(t, "job-3", outcome.PrivateError.Extra["job_id"])
	}
}

func TestRetrySaveJobPrivateDetails_ResumesPartialCreation(t *testing.T) {
	uc, m := newJobUsecase()

	m.liveJobs.On("GetByID", mock.Anything, "job-3").
		Return(&domain.Job{ID: "job-3", PostedBy: "provider-1"}, nil)
	m.liveJobs.On("UpsertPrivateDetails", mock.Anything, mock.MatchedBy(func(d *domain.JobPrivateDetails) bool {
		return d.JobID == "job-3" && d.Address == "Musterweg 1"
	})).Return(nil)

	err := uc.RetrySaveJobPrivateDetails(context.Background(), "provider-1", "job-3",
		&domain.JobPrivateDetails{Address: "Musterweg 1"})

	assert.NoError(t, err)
	m.liveJobs.AssertExpectations(t)
}

func TestRetrySaveJobPrivateDetails_NonOwnerForbidden(t *testing.T) {
	uc, m := newJobUsecase()

	m.liveJobs.On("GetByID", mock.Anything, "job-3").
		Return(&domain.Job{ID: "job-3", PostedBy: "provider-1"}, nil)

	err := uc.RetrySaveJobPrivateDetails(context.Background(), "intruder", "job-3",
		&domain.JobPrivateDetails{Address: "Musterweg 1"})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
	m.liveJobs.AssertNotCalled(t, "UpsertPrivateDetails", mock.Anything, mock.Anything)
}

func TestCreateJob_DemoViewWritesDemoPartition(t *testing.T) {
	uc, m := newJobUsecase()

	m.demoJobs.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
		return j.Status == domain.JobStatusOpen
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Job).ID = "demo-job-1"
	}).Return(nil)

	outcome, err := uc.CreateJob(context.Background(), demoView(domain.AccountTypeJobProvider), "provider-1",
		&domain.Job{Title: "Demo Job"}, &domain.JobPrivateDetails{Address: "ignored"})

	assert.NoError(t, err)
	assert.Equal(t, domain.CreateOutcomeSuccess, outcome.Outcome)
	assert.Equal(t, domain.CreatedViaDemo, outcome.CreatedVia)
	assert.Equal(t, domain.PrivateDetailsSkipped, outcome.PrivateDetails)
	m.liveJobs.AssertNotCalled(t, "CreateAtomic", mock.Anything, mock.Anything, mock.Anything)
	m.liveJobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetJobDetails_OwnerSeesPrivateDetails(t *testing.T) {
	uc, m := newJobUsecase()

	m.liveJobs.On("GetByID", mock.Anything, "job-1").
		Return(&domain.Job{ID: "job-1", PostedBy: "provider-1", AddressRevealPolicy: domain.AddressRevealAfterAccept}, nil)
	m.liveJobs.On("GetPrivateDetails", mock.Anything, "job-1").
		Return(&domain.JobPrivateDetails{JobID: "job-1", Address: "Musterweg 1, Bonn"}, nil)
	m.markets.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Market{}, nil)
	m.profiles.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Profile{}, nil)

	item, err := uc.GetJobDetails(context.Background(), liveView(domain.AccountTypeJobProvider), "provider-1", "job-1")

	assert.NoError(t, err)
	if assert.NotNil(t, item.PrivateDetails) {
		assert.Equal(t, "Musterweg 1, Bonn", item.PrivateDetails.Address)
	}
}

func TestGetJobDetails_AddressHiddenUntilAccepted(t *testing.T) {
	uc, m := newJobUsecase()

	m.liveJobs.On("GetByID", mock.Anything, "job-1").
		Return(&domain.Job{ID: "job-1", PostedBy: "provider-1", AddressRevealPolicy: domain.AddressRevealAfterAccept}, nil)
	m.liveApps.On("GetByUserID", mock.Anything, "seeker-1").
		Return([]domain.Application{{ID: "app-1", JobID: "job-1", UserID: "seeker-1", Status: domain.ApplicationStatusSubmitted}}, nil)
	m.markets.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Market{}, nil)
	m.profiles.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Profile{}, nil)

	item, err := uc.GetJobDetails(context.Background(), liveView(domain.AccountTypeJobSeeker), "seeker-1", "job-1")

	assert.NoError(t, err)
	assert.Nil(t, item.PrivateDetails)
	m.liveJobs.AssertNotCalled(t, "GetPrivateDetails", mock.Anything, mock.Anything)
}

func TestGetJobDetails_AcceptedApplicantSeesAddress(t *testing.T) {
	uc, m := newJobUsecase()

	m.liveJobs.On("GetByID", mock.Anything, "job-1").
		Return(&domain.Job{ID: "job-1", PostedBy: "provider-1", AddressRevealPolicy: domain.AddressRevealAfterAccept}, nil)
	m.liveApps.On("GetByUserID", mock.Anything, "seeker-1").
		Return([]domain.Application{{ID: "app-1", JobID: "job-1", UserID: "seeker-1", Status: domain.ApplicationStatusAccepted}}, nil)
	m.liveJobs.On("GetPrivateDetails", mock.Anything, "job-1").
		Return(&domain.JobPrivateDetails{JobID: "job-1", Address: "Musterweg 1, Bonn"}, nil)
	m.markets.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Market{}, nil)
	m.profiles.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Profile{}, nil)

	item, err := uc.GetJobDetails(context.Background(), liveView(domain.AccountTypeJobSeeker), "seeker-1", "job-1")

	assert.NoError(t, err)
	assert.NotNil(t, item.PrivateDetails)
	assert.True(t, item.IsApplied)
}
