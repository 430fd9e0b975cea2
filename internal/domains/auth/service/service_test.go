package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nyumbani/config"
	"nyumbani/infras/jwt"
	jwtMocks "nyumbani/infras/jwt/mocks"
	"nyumbani/infras/otel/mocks"
	"nyumbani/internal/domains/auth/model/dto"
	"nyumbani/internal/domains/auth/service"
	userMocks "nyumbani/internal/domains/user/mocks"
	userModel "nyumbani/internal/domains/user/model"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/password"
)

type fixture struct {
	svc      service.Auth
	userRepo *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	userRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	return fixture{
		svc:      service.New(userRepo, &config.Config{}, mocks.NewOtel(), mockJWT),
		userRepo: userRepo,
		jwt:      mockJWT,
	}
}

func activeUser(t *testing.T, plaintext string) userModel.User {
	hashed, err := password.Hash(plaintext)
	assert.NoError(t, err)

	return userModel.User{
		ID:       "user-1",
		Email:    "asha@example.com",
		Password: hashed,
		Role:     constant.RoleTenant,
		Active:   true,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("registers a new tenant account", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		f.userRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, constant.RoleTenant, user.Role)
				assert.True(t, user.Active)
				assert.NoError(t, password.Verify("secret-pass", user.Password))

				return nil
			})

		err := f.svc.Register(context.Background(), dto.RegisterRequest{
			Email:    "asha@example.com",
			Password: "secret-pass",
		})

		assert.NoError(t, err)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Register(context.Background(), dto.RegisterRequest{
			Email:    "asha@example.com",
			Password: "secret-pass",
		})

		assert.Error(t, err)
	})

	t.Run("propagates lookup failures", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))

		err := f.svc.Register(context.Background(), dto.RegisterRequest{
			Email:    "asha@example.com",
			Password: "secret-pass",
		})

		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues a token pair for valid credentials", func(t *testing.T) {
		f := newFixture(t)
		user := activeUser(t, "secret-pass")

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.jwt.EXPECT().
			GenerateTokenPair(user.ID, user.Email, user.Role).
			Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil)
		f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "asha@example.com",
			Password: "secret-pass",
		})

		assert.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, "refresh", res.RefreshToken)
		assert.Equal(t, int64(900), res.ExpiresIn)
	})

	t.Run("wrong password is rejected without leaking which part failed", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(t, "secret-pass"), nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "asha@example.com",
			Password: "wrong-pass",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("unknown email is rejected with the same message", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret-pass",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("deactivated accounts cannot log in", func(t *testing.T) {
		f := newFixture(t)
		user := activeUser(t, "secret-pass")
		user.Active = false

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "asha@example.com",
			Password: "secret-pass",
		})

		assert.Error(t, err)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates a valid refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().
			RefreshTokens("old-refresh").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 900}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "old-refresh"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
		assert.Equal(t, "new-refresh", res.RefreshToken)
	})

	t.Run("invalid refresh token yields unauthorized", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens("garbage").Return(nil, jwt.ErrInvalidToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("changes the password when the current one matches", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(t, "old-pass-123"), nil)

		f.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				hashed, ok := req[userModel.FieldPassword].(string)
				assert.True(t, ok)
				assert.NoError(t, password.Verify("new-pass-456", hashed))

				return nil
			})

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "old-pass-123",
			NewPassword:     "new-pass-456",
		}, "user-1")

		assert.NoError(t, err)
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(t, "old-pass-123"), nil)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "not-it",
			NewPassword:     "new-pass-456",
		}, "user-1")

		assert.Error(t, err)
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "old-pass-123",
			NewPassword:     "new-pass-456",
		}, "missing")

		assert.Error(t, err)
	})
}
