package service

import (
	"context"
	"testing"
	"time"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/repository"
	"circleshop/internal/app/shop/repository/mocks"
	"circleshop/internal/app/shop/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthServiceForTest() (*AuthService, *mocks.MockUserRepository) {
	userRepo := new(mocks.MockUserRepository)
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(userRepo, jwtManager), userRepo
}

func TestRegister_Success(t *testing.T) {
	service, userRepo := newAuthServiceForTest()

	ctx := context.Background()
	req := &entity.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}

	userRepo.On("ExistsByUsername", ctx, "alice").Return(false, nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := service.Register(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, util.CheckPassword("password123", user.PasswordHash))
}

func TestRegister_UsernameTaken(t *testing.T) {
	service, userRepo := newAuthServiceForTest()

	ctx := context.Background()
	req := &entity.RegisterRequest{Username: "alice", Password: "password123"}

	userRepo.On("ExistsByUsername", ctx, "alice").Return(true, nil)

	user, err := service.Register(ctx, req)

	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Nil(t, user)
	userRepo.AssertNotCalled(t, "Create")
}

func TestLogin_Success(t *testing.T) {
	service, userRepo := newAuthServiceForTest()

	ctx := context.Background()
	hash, err := util.HashPassword("password123")
	assert.NoError(t, err)

	user := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: hash}
	userRepo.On("GetByUsername", ctx, "alice").Return(user, nil)

	resp, err := service.Login(ctx, &entity.LoginRequest{Username: "alice", Password: "password123"})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.Equal(t, "alice", resp.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, userRepo := newAuthServiceForTest()

	ctx := context.Background()
	hash, _ := util.HashPassword("password123")
	user := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: hash}

	userRepo.On("GetByUsername", ctx, "alice").Return(user, nil)

	resp, err := service.Login(ctx, &entity.LoginRequest{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestLogin_UnknownUser(t *testing.T) {
	service, userRepo := newAuthServiceForTest()

	ctx := context.Background()
	userRepo.On("GetByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	resp, err := service.Login(ctx, &entity.LoginRequest{Username: "ghost", Password: "password123"})

	// Неизвестное имя неотличимо от неверного пароля
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}
