package repository

import (
	"context"

	"circleshop/internal/app/shop/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository создает новый репозиторий сообщений
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create создает сообщение
func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	result := r.db.WithContext(ctx).Create(message)
	return result.Error
}

// GetChat возвращает сообщения товара с участием пользователя,
// старые первыми
func (r *messageRepository) GetChat(ctx context.Context, productID, participantID uuid.UUID) ([]entity.Message, error) {
	var messages []entity.Message
	result := r.db.WithContext(ctx).
		Preload("Sender").
		Where("product_id = ? AND (sender_id = ? OR recipient_id = ?)",
			productID, participantID, participantID).
		Order("created_at ASC").
		Find(&messages)

	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}

// GetProductIDsForUser возвращает уникальные товары из переписки пользователя,
// отсортированные по свежести последнего сообщения
func (r *messageRepository) GetProductIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).Model(&entity.Message{}).
		Select("product_id").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Group("product_id").
		Order("MAX(created_at) DESC").
		Pluck("product_id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}
