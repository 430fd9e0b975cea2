package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nyumbani/config"
	"nyumbani/infras/otel/mocks"
	userMocks "nyumbani/internal/domains/user/mocks"
	"nyumbani/internal/domains/user/model"
	"nyumbani/internal/domains/user/model/dto"
	"nyumbani/internal/domains/user/service"
	cacheMocks "nyumbani/shared/cache/mocks"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/password"
)

type fixture struct {
	svc   service.User
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidation run on goroutines; lookups always miss so
	// each test drives the repository path.
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		svc:   service.New(repo, cfg, mockCache, mocks.NewOtel()),
		repo:  repo,
		cache: mockCache,
	}
}

func TestUserService_Create(t *testing.T) {
	t.Run("provisions a staff account with a hashed password", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, constant.RoleAdmin, user.Role)
				assert.NoError(t, password.Verify("staff-pass-123", user.Password))

				return nil
			})

		err := f.svc.Create(context.Background(), dto.CreateUserRequest{
			Email:    "neema@example.com",
			Password: "staff-pass-123",
			Role:     constant.RoleAdmin,
		})

		assert.NoError(t, err)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Create(context.Background(), dto.CreateUserRequest{
			Email:    "neema@example.com",
			Password: "staff-pass-123",
		})

		assert.Error(t, err)
	})
}

func TestUserService_GetEmployees(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			flt, ok := filter.Filters[0].(gDto.Filter)
			assert.True(t, ok)
			assert.Equal(t, model.FieldRole, flt.Field)
			assert.Equal(t, constant.RoleAdmin, flt.Value)

			return 1, nil
		})

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.User{{ID: "admin-1", Email: "neema@example.com", Role: constant.RoleAdmin}}, nil)

	res, err := f.svc.GetEmployees(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Users, 1)
	assert.Equal(t, constant.RoleAdmin, res.Users[0].Role)
}

func TestUserService_Get(t *testing.T) {
	t.Run("returns the stored user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "user-1", Email: "asha@example.com"}, nil)

		res, err := f.svc.Get(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.ID)
	})

	t.Run("missing user yields not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("deletes an existing user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "user-1"))
	})

	t.Run("missing user yields not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Error(t, f.svc.Delete(context.Background(), "missing"))
	})
}
