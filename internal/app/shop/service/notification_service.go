package service

import (
	"context"
	"fmt"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/repository"

	"github.com/google/uuid"
)

// NotificationService собирает товары, фигурирующие в переписке пользователя.
// Дедупликация по товару среди сообщений, где пользователь - отправитель
// ИЛИ получатель; порядок - по свежести последнего сообщения, новые первыми.
type NotificationService struct {
	messageRepo  repository.MessageRepository
	productRepo  repository.ProductRepository
	feedbackRepo repository.FeedbackRepository
}

// NewNotificationService создает сервис уведомлений
func NewNotificationService(
	messageRepo repository.MessageRepository,
	productRepo repository.ProductRepository,
	feedbackRepo repository.FeedbackRepository,
) *NotificationService {
	return &NotificationService{
		messageRepo:  messageRepo,
		productRepo:  productRepo,
		feedbackRepo: feedbackRepo,
	}
}

// NotificationsFor возвращает уникальные товары из переписки пользователя
// с агрегатом реакций по каждому
func (s *NotificationService) NotificationsFor(ctx context.Context, userID uuid.UUID) ([]entity.ProductNotification, error) {
	productIDs, err := s.messageRepo.GetProductIDsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect products: %w", err)
	}
	if len(productIDs) == 0 {
		return []entity.ProductNotification{}, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Порядок productIDs (свежие первыми) сохраняется в выдаче
	notifications := make([]entity.ProductNotification, 0, len(productIDs))
	for _, id := range productIDs {
		product, ok := byID[id]
		if !ok {
			// Товар удален после переписки - пропускаем
			continue
		}

		counts, err := s.feedbackRepo.CountByProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count feedback: %w", err)
		}

		notifications = append(notifications, entity.ProductNotification{
			Product:  product,
			Feedback: *counts,
		})
	}

	return notifications, nil
}
