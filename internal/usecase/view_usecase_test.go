package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"
	"jobbridge-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newViewUsecase(demo *mockDemoSessionRepo, override *mockRoleOverrideRepo, profiles *mockProfileRepo) domain.ViewUsecase {
	return NewViewUsecase(demo, override, profiles, audit.Default(), 4*time.Hour)
}

func TestGetEffectiveView_DemoBeatsOverrideAndBase(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	dv := domain.AccountTypeJobProvider
	demo.On("GetByUserID", mock.Anything, "user-1").
		Return(&domain.DemoSession{UserID: "user-1", Enabled: true, DemoView: &dv}, nil)

	// Override and profile repos must not be consulted while demo is on, even
	// though an active override exists in the store.
	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.GetEffectiveView(context.Background(), domain.ViewQuery{
		UserID:          "user-1",
		BaseAccountType: domain.AccountTypeJobSeeker,
	})

	assert.NoError(t, err)
	assert.True(t, view.IsDemoEnabled)
	assert.Equal(t, domain.ViewSourceDemo, view.Source)
	assert.Equal(t, domain.AccountTypeJobProvider, view.ViewRole)
	assert.Nil(t, view.OverrideExpiresAt)
	override.AssertNotCalled(t, "GetActive", mock.Anything, mock.Anything, mock.Anything)
	profiles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetEffectiveView_DisabledDemoFallsThroughToOverride(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	expiresAt := time.Now().Add(time.Hour)
	demo.On("GetByUserID", mock.Anything, "user-1").
		Return(&domain.DemoSession{UserID: "user-1", Enabled: false}, nil)
	override.On("GetActive", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).
		Return(&domain.RoleOverride{UserID: "user-1", ViewAs: domain.AccountTypeJobProvider, ExpiresAt: expiresAt}, nil)

	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.GetEffectiveView(context.Background(), domain.ViewQuery{
		UserID:          "user-1",
		BaseAccountType: domain.AccountTypeJobSeeker,
	})

	assert.NoError(t, err)
	assert.False(t, view.IsDemoEnabled)
	assert.Equal(t, domain.ViewSourceLive, view.Source)
	assert.Equal(t, domain.AccountTypeJobProvider, view.ViewRole)
	if assert.NotNil(t, view.OverrideExpiresAt) {
		assert.Equal(t, expiresAt, *view.OverrideExpiresAt)
	}
}

func TestGetEffectiveView_ExpiredOverrideFallsBackToBase(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	demo.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	// The repository filters on expires_at > now, so an expired row comes back
	// as absent.
	override.On("GetActive", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).Return(nil, nil)

	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.GetEffectiveView(context.Background(), domain.ViewQuery{
		UserID:          "user-1",
		BaseAccountType: domain.AccountTypeJobSeeker,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ViewSourceLive, view.Source)
	assert.Equal(t, domain.AccountTypeJobSeeker, view.ViewRole)
	assert.Nil(t, view.OverrideExpiresAt)
}

func TestGetEffectiveView_DemoWithoutDemoViewDefaultsToSeeker(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	demo.On("GetByUserID", mock.Anything, "user-1").
		Return(&domain.DemoSession{UserID: "user-1", Enabled: true, DemoView: nil}, nil)

	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.GetEffectiveView(context.Background(), domain.ViewQuery{UserID: "user-1"})

	assert.NoError(t, err)
	assert.Equal(t, domain.ViewSourceDemo, view.Source)
	assert.Equal(t, domain.AccountTypeJobSeeker, view.ViewRole)
}

func TestGetEffectiveView_UnknownAccountTypeNormalizesToSeeker(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	demo.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	override.On("GetActive", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).Return(nil, nil)

	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.GetEffectiveView(context.Background(), domain.ViewQuery{
		UserID:          "user-1",
		BaseAccountType: "legacy_business",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AccountTypeJobSeeker, view.ViewRole)
}

func TestGetEffectiveView_AnonymousIsRejected(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	// No user id in the query and none on the context: resolution fails fast
	// before any repository is consulted.
	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.GetEffectiveView(context.Background(), domain.ViewQuery{})

	assert.Nil(t, view)
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, "Nicht authentifiziert", appErr.Message)
	demo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestGetEffectiveView_UserIDFromRequestContext(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	demo.On("GetByUserID", mock.Anything, "user-7").Return(nil, nil)
	override.On("GetActive", mock.Anything, "user-7", mock.AnythingOfType("time.Time")).Return(nil, nil)

	ctx := context.WithValue(context.Background(), domain.KeyUserID, "user-7")
	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.GetEffectiveView(ctx, domain.ViewQuery{BaseAccountType: domain.AccountTypeJobProvider})

	assert.NoError(t, err)
	assert.Equal(t, domain.AccountTypeJobProvider, view.ViewRole)
}

func TestGetEffectiveView_LookupErrorFailsClosed(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	demo.On("GetByUserID", mock.Anything, "user-1").Return(nil, errors.New("connection refused"))

	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.GetEffectiveView(context.Background(), domain.ViewQuery{
		UserID:          "user-1",
		BaseAccountType: domain.AccountTypeJobProvider,
	})

	assert.Nil(t, view)
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
}

func TestGetEffectiveView_MissingProfileGetsSeekerFloor(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	demo.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	override.On("GetActive", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).Return(nil, nil)
	profiles.On("GetByID", mock.Anything, "user-1").Return(nil, domain.ErrNotFound)

	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.GetEffectiveView(context.Background(), domain.ViewQuery{UserID: "user-1"})

	assert.NoError(t, err)
	assert.Equal(t, domain.AccountTypeJobSeeker, view.ViewRole)
	assert.Equal(t, domain.ViewSourceLive, view.Source)
}

func TestSetOverride_RejectsUnknownRole(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.SetOverride(context.Background(), "user-1", "superadmin")

	assert.Nil(t, view)
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	override.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSetOverride_UpsertsWithTTLAndReturnsView(t *testing.T) {
	demo := new(mockDemoSessionRepo)
	override := new(mockRoleOverrideRepo)
	profiles := new(mockProfileRepo)

	before := time.Now()
	override.On("Upsert", mock.Anything, mock.MatchedBy(func(o *domain.RoleOverride) bool {
		return o.UserID == "user-1" &&
			o.ViewAs == domain.AccountTypeJobProvider &&
			o.CreatedBy == "user-1" &&
			o.ExpiresAt.After(before.Add(3*time.Hour))
	})).Return(nil)
	demo.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	override.On("GetActive", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).
		Return(&domain.RoleOverride{UserID: "user-1", ViewAs: domain.AccountTypeJobProvider, ExpiresAt: before.Add(4 * time.Hour)}, nil)

	uc := newViewUsecase(demo, override, profiles)
	view, err := uc.SetOverride(context.Background(), "user-1", domain.AccountTypeJobProvider)

	assert.NoError(t, err)
	assert.Equal(t, domain.AccountTypeJobProvider, view.ViewRole)
	override.AssertExpectations(t)
}
