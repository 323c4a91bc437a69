package usecase_test

import (
	"context"
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepo) CountJobs(ctx context.Context, employerID *int64) (int64, error) {
	args := m.Called(ctx, employerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepo) CountApplications(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepo) CountApplicationsToEmployer(ctx context.Context, employerID int64) (int64, error) {
	args := m.Called(ctx, employerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepo) CountApplicationsByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepo) CountSavedJobs(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepo) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("admin totals", func(t *testing.T) {
		repo := new(MockDashboardRepo)
		repo.On("CountUnreadNotifications", ctx, int64(1)).Return(int64(2), nil)
		repo.On("CountUsers", ctx).Return(int64(10), nil)
		repo.On("CountJobs", ctx, (*int64)(nil)).Return(int64(4), nil)
		repo.On("CountApplications", ctx).Return(int64(7), nil)

		summary, err := usecase.NewDashboardUsecase(repo).Summary(ctx, &domain.Actor{UserID: 1, Abilities: domain.AbilitiesForRole("admin")})
		require.NoError(t, err)
		assert.Equal(t, "admin", summary.Role)
		assert.Equal(t, map[string]int64{"users": 10, "jobs": 4, "applications": 7, "unread_notifications": 2}, summary.Totals)
	})

	t.Run("employer totals", func(t *testing.T) {
		repo := new(MockDashboardRepo)
		repo.On("CountUnreadNotifications", ctx, int64(3)).Return(int64(0), nil)
		repo.On("CountJobs", ctx, mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 3 })).Return(int64(2), nil)
		repo.On("CountApplicationsToEmployer", ctx, int64(3)).Return(int64(5), nil)

		summary, err := usecase.NewDashboardUsecase(repo).Summary(ctx, &domain.Actor{UserID: 3, Abilities: domain.AbilitiesForRole("employer")})
		require.NoError(t, err)
		assert.Equal(t, "employer", summary.Role)
		assert.Equal(t, int64(5), summary.Totals["applications_to_my_jobs"])
	})

	t.Run("seeker totals", func(t *testing.T) {
		repo := new(MockDashboardRepo)
		repo.On("CountUnreadNotifications", ctx, int64(4)).Return(int64(1), nil)
		repo.On("CountApplicationsByUser", ctx, int64(4)).Return(int64(3), nil)
		repo.On("CountSavedJobs", ctx, int64(4)).Return(int64(6), nil)

		summary, err := usecase.NewDashboardUsecase(repo).Summary(ctx, &domain.Actor{UserID: 4, Role: "seeker", Abilities: domain.AbilitiesForRole("seeker")})
		require.NoError(t, err)
		assert.Equal(t, "seeker", summary.Role)
		assert.Equal(t, map[string]int64{"my_applications": 3, "my_saved_jobs": 6, "unread_notifications": 1}, summary.Totals)
		repo.AssertExpectations(t)
	})
}
