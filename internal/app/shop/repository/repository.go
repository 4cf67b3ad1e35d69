package repository

import (
	"context"
	"errors"

	"circleshop/internal/app/shop/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrEdgeNotFound    = errors.New("circle edge not found")
	ErrDuplicateEdge   = errors.New("circle edge already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	SearchByName(ctx context.Context, query string) ([]entity.Product, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type CircleRepository interface {
	Create(ctx context.Context, edge *entity.CircleEdge) error
	Delete(ctx context.Context, ownerID, memberID uuid.UUID) error
	// GetByOwner возвращает исходящие связи владельца в порядке добавления,
	// с предзагруженным Member
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.CircleEdge, error)
	// GetByMember возвращает связи, где пользователь состоит участником
	GetByMember(ctx context.Context, memberID uuid.UUID) ([]entity.CircleEdge, error)
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	// ListByUsersAndProducts возвращает покупки, ограниченные обоими наборами,
	// для батч-резолвера видимости
	ListByUsersAndProducts(ctx context.Context, userIDs, productIDs []uuid.UUID) ([]entity.Purchase, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// GetChat возвращает сообщения товара, где участник - отправитель или
	// получатель, в порядке возрастания created_at
	GetChat(ctx context.Context, productID, participantID uuid.UUID) ([]entity.Message, error)
	// GetProductIDsForUser возвращает уникальные товары из переписки
	// пользователя, свежие сообщения - первыми
	GetProductIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type FeedbackRepository interface {
	// Upsert атомарно вставляет или перезаписывает реакцию по ключу
	// (product_id, user_id)
	Upsert(ctx context.Context, feedback *entity.ProductFeedback) error
	CountByProduct(ctx context.Context, productID uuid.UUID) (*entity.FeedbackCounts, error)
}
