package service

import (
	"context"
	"errors"
	"testing"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotificationsFor_Empty(t *testing.T) {
	messageRepo := new(mocks.MockMessageRepository)
	productRepo := new(mocks.MockProductRepository)
	feedbackRepo := new(mocks.MockFeedbackRepository)
	service := NewNotificationService(messageRepo, productRepo, feedbackRepo)

	ctx := context.Background()
	userID := uuid.New()

	messageRepo.On("GetProductIDsForUser", ctx, userID).Return([]uuid.UUID{}, nil)

	notifications, err := service.NotificationsFor(ctx, userID)

	assert.NoError(t, err)
	assert.Empty(t, notifications)
	productRepo.AssertNotCalled(t, "GetByIDs")
}

func TestNotificationsFor_PreservesRecencyOrder(t *testing.T) {
	messageRepo := new(mocks.MockMessageRepository)
	productRepo := new(mocks.MockProductRepository)
	feedbackRepo := new(mocks.MockFeedbackRepository)
	service := NewNotificationService(messageRepo, productRepo, feedbackRepo)

	ctx := context.Background()
	userID := uuid.New()
	newerID := uuid.New()
	olderID := uuid.New()

	// Репозиторий отдает товары свежие первыми, БД может вернуть их в любом порядке
	messageRepo.On("GetProductIDsForUser", ctx, userID).Return([]uuid.UUID{newerID, olderID}, nil)
	productRepo.On("GetByIDs", ctx, []uuid.UUID{newerID, olderID}).Return([]entity.Product{
		{ID: olderID, Name: "Older"},
		{ID: newerID, Name: "Newer"},
	}, nil)
	feedbackRepo.On("CountByProduct", ctx, newerID).Return(&entity.FeedbackCounts{Likes: 2}, nil)
	feedbackRepo.On("CountByProduct", ctx, olderID).Return(&entity.FeedbackCounts{Dislikes: 1}, nil)

	notifications, err := service.NotificationsFor(ctx, userID)

	assert.NoError(t, err)
	assert.Len(t, notifications, 2)
	assert.Equal(t, "Newer", notifications[0].Product.Name)
	assert.Equal(t, int64(2), notifications[0].Feedback.Likes)
	assert.Equal(t, "Older", notifications[1].Product.Name)
	assert.Equal(t, int64(1), notifications[1].Feedback.Dislikes)
}

func TestNotificationsFor_SkipsDeletedProducts(t *testing.T) {
	messageRepo := new(mocks.MockMessageRepository)
	productRepo := new(mocks.MockProductRepository)
	feedbackRepo := new(mocks.MockFeedbackRepository)
	service := NewNotificationService(messageRepo, productRepo, feedbackRepo)

	ctx := context.Background()
	userID := uuid.New()
	aliveID := uuid.New()
	deletedID := uuid.New()

	messageRepo.On("GetProductIDsForUser", ctx, userID).Return([]uuid.UUID{deletedID, aliveID}, nil)
	productRepo.On("GetByIDs", ctx, []uuid.UUID{deletedID, aliveID}).Return([]entity.Product{
		{ID: aliveID, Name: "Alive"},
	}, nil)
	feedbackRepo.On("CountByProduct", ctx, aliveID).Return(&entity.FeedbackCounts{}, nil)

	notifications, err := service.NotificationsFor(ctx, userID)

	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "Alive", notifications[0].Product.Name)
}

func TestNotificationsFor_RepoError(t *testing.T) {
	messageRepo := new(mocks.MockMessageRepository)
	productRepo := new(mocks.MockProductRepository)
	feedbackRepo := new(mocks.MockFeedbackRepository)
	service := NewNotificationService(messageRepo, productRepo, feedbackRepo)

	ctx := context.Background()
	userID := uuid.New()

	messageRepo.On("GetProductIDsForUser", ctx, userID).Return(nil, errors.New("db error"))

	notifications, err := service.NotificationsFor(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, notifications)
}
