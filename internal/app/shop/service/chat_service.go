package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/infrastructure"
	"circleshop/internal/app/shop/repository"

	"github.com/google/uuid"

	"circleshop/pkg/logger"
	"circleshop/pkg/metrics"
)

// ChatService обрабатывает сообщения, привязанные к товару:
// рассылку "спросить мой круг" и чат товара с правилом fan-out
type ChatService struct {
	messageRepo   repository.MessageRepository
	circleRepo    repository.CircleRepository
	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
	kafkaProducer infrastructure.MessagePublisher
}

// NewChatService создает сервис сообщений с внедрением зависимостей
func NewChatService(
	messageRepo repository.MessageRepository,
	circleRepo repository.CircleRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	kafkaProducer infrastructure.MessagePublisher,
) *ChatService {
	return &ChatService{
		messageRepo:   messageRepo,
		circleRepo:    circleRepo,
		userRepo:      userRepo,
		productRepo:   productRepo,
		kafkaProducer: kafkaProducer,
	}
}

// AskCircle создает по сообщению для каждого существующего получателя.
// Несуществующий получатель пропускается молча - это не ошибка батча.
// Возвращает ID созданных сообщений.
func (s *ChatService) AskCircle(ctx context.Context, senderID, productID uuid.UUID, text string, recipientIDs []uuid.UUID) ([]uuid.UUID, error) {
	// Текст обрезается, но пустой не блокирует рассылку
	text = strings.TrimSpace(text)

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	created := make([]uuid.UUID, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		recipient, err := s.userRepo.GetByID(ctx, recipientID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				continue
			}
			return created, fmt.Errorf("failed to resolve recipient: %w", err)
		}

		message := &entity.Message{
			ID:          uuid.New(),
			SenderID:    senderID,
			RecipientID: recipient.ID,
			ProductID:   product.ID,
			Text:        text,
		}
		if err := s.messageRepo.Create(ctx, message); err != nil {
			// Отката нет: уже созданные сообщения остаются
			return created, fmt.Errorf("failed to create message: %w", err)
		}
		created = append(created, message.ID)
		metrics.MessagesCreated.Inc()
	}

	if len(created) > 0 {
		s.publishMessageEvent(ctx, senderID, productID, len(created))
	}

	return created, nil
}

// PostChatMessage применяет правило fan-out при каждой публикации:
//  1. Автор владеет хотя бы одной связью круга - по сообщению каждому участнику.
//  2. Иначе, если автор состоит участником ровно в одной связи - одно
//     сообщение владельцу этой связи.
//  3. Иначе публикация молча отбрасывается.
//
// Пустой после обрезки пробелов текст - no-op, не ошибка.
func (s *ChatService) PostChatMessage(ctx context.Context, authorID, productID uuid.UUID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	recipients, err := s.fanOutRecipients(ctx, authorID)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		logger.Debug().
			Str("author_id", authorID.String()).
			Str("product_id", productID.String()).
			Msg("Chat post dropped: author has no circle relation")
		return nil
	}

	for _, recipientID := range recipients {
		message := &entity.Message{
			ID:          uuid.New(),
			SenderID:    authorID,
			RecipientID: recipientID,
			ProductID:   product.ID,
			Text:        text,
		}
		if err := s.messageRepo.Create(ctx, message); err != nil {
			// Частично выполненный fan-out допустим, отката нет
			return fmt.Errorf("failed to create message: %w", err)
		}
		metrics.MessagesCreated.Inc()
	}

	s.publishMessageEvent(ctx, authorID, productID, len(recipients))

	return nil
}

// fanOutRecipients вычисляет адресатов по правилу fan-out
func (s *ChatService) fanOutRecipients(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	owned, err := s.circleRepo.GetByOwner(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load circle: %w", err)
	}

	if len(owned) > 0 {
		recipients := make([]uuid.UUID, 0, len(owned))
		for _, edge := range owned {
			recipients = append(recipients, edge.MemberID)
		}
		return recipients, nil
	}

	memberships, err := s.circleRepo.GetByMember(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}

	// Адресат однозначен только при единственной связи; участие
	// в нескольких кругах отбрасывается так же молча, как и отсутствие связей
	if len(memberships) == 1 {
		return []uuid.UUID{memberships[0].OwnerID}, nil
	}

	return nil, nil
}

// ListChat возвращает сообщения товара с участием пользователя,
// старые первыми. Чистое чтение.
func (s *ChatService) ListChat(ctx context.Context, productID, participantID uuid.UUID) ([]entity.Message, error) {
	messages, err := s.messageRepo.GetChat(ctx, productID, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return messages, nil
}

// publishMessageEvent отправляет событие MESSAGE_POSTED в Kafka
// Сообщения уже записаны, проблемы с Kafka не критичны
func (s *ChatService) publishMessageEvent(ctx context.Context, senderID, productID uuid.UUID, recipients int) {
	event := entity.MessageEvent{
		EventType:  "MESSAGE_POSTED",
		SenderID:   senderID,
		ProductID:  productID,
		Recipients: recipients,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal message event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, productID.String(), data); err != nil {
		logger.Error().Err(err).Msg("Failed to publish message event")
	}
}
