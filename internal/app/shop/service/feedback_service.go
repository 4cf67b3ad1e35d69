package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/infrastructure"
	"circleshop/internal/app/shop/repository"

	"github.com/google/uuid"

	"circleshop/pkg/logger"
	"circleshop/pkg/metrics"
)

// FeedbackService обрабатывает реакции like/dislike на товары
type FeedbackService struct {
	feedbackRepo  repository.FeedbackRepository
	productRepo   repository.ProductRepository
	kafkaProducer infrastructure.MessagePublisher
}

// NewFeedbackService создает сервис реакций с внедрением зависимостей
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	productRepo repository.ProductRepository,
	kafkaProducer infrastructure.MessagePublisher,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo:  feedbackRepo,
		productRepo:   productRepo,
		kafkaProducer: kafkaProducer,
	}
}

// React атомарно вставляет или перезаписывает реакцию пользователя на товар.
// Возвращает сохраненную реакцию - всегда последнюю.
// Реакция ограничена набором {like, dislike}: исходная система пропускала
// произвольные строки, здесь это намеренно ужесточено.
func (s *FeedbackService) React(ctx context.Context, userID, productID uuid.UUID, reaction entity.ReactionType) (entity.ReactionType, error) {
	if !reaction.Valid() {
		return "", ErrInvalidReaction
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return "", ErrProductNotFound
		}
		return "", fmt.Errorf("failed to get product: %w", err)
	}

	feedback := &entity.ProductFeedback{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Reaction:  reaction,
	}
	if err := s.feedbackRepo.Upsert(ctx, feedback); err != nil {
		return "", fmt.Errorf("failed to store reaction: %w", err)
	}

	metrics.ReactionsRecorded.WithLabelValues(string(reaction)).Inc()
	s.publishFeedbackEvent(ctx, userID, productID, reaction)

	return reaction, nil
}

// Counts возвращает свежий агрегат реакций по товару
// Пересчитывается на каждый вызов, между мутациями результат идентичен
func (s *FeedbackService) Counts(ctx context.Context, productID uuid.UUID) (*entity.FeedbackCounts, error) {
	counts, err := s.feedbackRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}

	return counts, nil
}

// publishFeedbackEvent отправляет событие FEEDBACK_SET в Kafka
// Реакция уже сохранена, проблемы с Kafka не критичны
func (s *FeedbackService) publishFeedbackEvent(ctx context.Context, userID, productID uuid.UUID, reaction entity.ReactionType) {
	event := entity.FeedbackEvent{
		EventType: "FEEDBACK_SET",
		ProductID: productID,
		UserID:    userID,
		Reaction:  reaction,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal feedback event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, productID.String(), data); err != nil {
		logger.Error().Err(err).Msg("Failed to publish feedback event")
	}
}
