package usecase

import (
	"context"
	"time"

	"jobbridge-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Profile, error) {
	args := m.Called(ctx, ids)
	if p, ok := args.Get(0).([]domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfileRepo) SetDisabled(ctx context.Context, id string, disabled bool) error {
	return m.Called(ctx, id, disabled).Error(0)
}

type mockDemoSessionRepo struct {
	mock.Mock
}

func (m *mockDemoSessionRepo) GetByUserID(ctx context.Context, userID string) (*domain.DemoSession, error) {
	args := m.Called(ctx, userID)
	if s, ok := args.Get(0).(*domain.DemoSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDemoSessionRepo) Upsert(ctx context.Context, session *domain.DemoSession) error {
	return m.Called(ctx, session).Error(0)
}

type mockRoleOverrideRepo struct {
	mock.Mock
}

func (m *mockRoleOverrideRepo) GetActive(ctx context.Context, userID string, now time.Time) (*domain.RoleOverride, error) {
	args := m.Called(ctx, userID, now)
	if o, ok := args.Get(0).(*domain.RoleOverride); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoleOverrideRepo) Upsert(ctx context.Context, override *domain.RoleOverride) error {
	return m.Called(ctx, override).Error(0)
}

func (m *mockRoleOverrideRepo) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockJobRepo struct {
	mock.Mock
}

func (m *mockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *mockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if j, ok := args.Get(0).(*domain.Job); ok {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJobRepo) FetchFeed(ctx context.Context, marketID *string, status string, limit, offset int) ([]domain.Job, error) {
	args := m.Called(ctx, marketID, status, limit, offset)
	if j, ok := args.Get(0).([]domain.Job); ok {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJobRepo) FetchByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Job, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if j, ok := args.Get(0).([]domain.Job); ok {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *mockJobRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockLiveJobRepo struct {
	mockJobRepo
}

func (m *mockLiveJobRepo) CreateAtomic(ctx context.Context, job *domain.Job, details *domain.JobPrivateDetails) (string, error) {
	args := m.Called(ctx, job, details)
	return args.String(0), args.Error(1)
}

func (m *mockLiveJobRepo) UpsertPrivateDetails(ctx context.Context, details *domain.JobPrivateDetails) error {
	return m.Called(ctx, details).Error(0)
}

func (m *mockLiveJobRepo) GetPrivateDetails(ctx context.Context, jobID string) (*domain.JobPrivateDetails, error) {
	args := m.Called(ctx, jobID)
	if d, ok := args.Get(0).(*domain.JobPrivateDetails); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockApplicationRepo struct {
	mock.Mock
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *domain.Application) (bool, error) {
	args := m.Called(ctx, app)
	return args.Bool(0), args.Error(1)
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*domain.Application); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if a, ok := args.Get(0).([]domain.Application); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if a, ok := args.Get(0).([]domain.Application); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationRepo) ExistsForJob(ctx context.Context, jobID, userID string) (bool, error) {
	args := m.Called(ctx, jobID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id, status string, reason *string) error {
	return m.Called(ctx, id, status, reason).Error(0)
}

func (m *mockApplicationRepo) Accept(ctx context.Context, applicationID, jobStatus string) (*domain.AcceptResult, error) {
	args := m.Called(ctx, applicationID, jobStatus)
	if r, ok := args.Get(0).(*domain.AcceptResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMarketRepo struct {
	mock.Mock
}

func (m *mockMarketRepo) List(ctx context.Context) ([]domain.Market, error) {
	args := m.Called(ctx)
	if mk, ok := args.Get(0).([]domain.Market); ok {
		return mk, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMarketRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Market, error) {
	args := m.Called(ctx, ids)
	if mk, ok := args.Get(0).([]domain.Market); ok {
		return mk, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMessageRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.Message, error) {
	args := m.Called(ctx, applicationID)
	if msgs, ok := args.Get(0).([]domain.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, applicationID, readerID string) error {
	return m.Called(ctx, applicationID, readerID).Error(0)
}

func strPtr(s string) *string { return &s }

func liveView(role string) *domain.EffectiveView {
	return &domain.EffectiveView{ViewRole: role, Source: domain.ViewSourceLive}
}

func demoView(role string) *domain.EffectiveView {
	dv := role
	return &domain.EffectiveView{
		IsDemoEnabled: true,
		ViewRole:      role,
		Source:        domain.ViewSourceDemo,
		DemoView:      &dv,
	}
}
