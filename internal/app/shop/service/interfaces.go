package service

import (
	"context"

	"circleshop/internal/app/shop/entity"

	"github.com/google/uuid"
)

// VisibilityResolver отвечает на вопрос "покупал ли кто-то из круга зрителя
// этот товар, и под какой меткой отношения"
type VisibilityResolver interface {
	Resolve(ctx context.Context, viewerID, productID uuid.UUID) (*entity.CirclePurchase, error)
	ResolveAll(ctx context.Context, viewerID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]*entity.CirclePurchase, error)
}

type ChatServiceInterface interface {
	AskCircle(ctx context.Context, senderID, productID uuid.UUID, text string, recipientIDs []uuid.UUID) ([]uuid.UUID, error)
	PostChatMessage(ctx context.Context, authorID, productID uuid.UUID, text string) error
	ListChat(ctx context.Context, productID, participantID uuid.UUID) ([]entity.Message, error)
}

type FeedbackServiceInterface interface {
	React(ctx context.Context, userID, productID uuid.UUID, reaction entity.ReactionType) (entity.ReactionType, error)
	Counts(ctx context.Context, productID uuid.UUID) (*entity.FeedbackCounts, error)
}

type NotificationServiceInterface interface {
	NotificationsFor(ctx context.Context, userID uuid.UUID) ([]entity.ProductNotification, error)
}

type CatalogServiceInterface interface {
	ListProducts(ctx context.Context, viewerID *uuid.UUID) ([]entity.ProductWithCircle, error)
	GetProduct(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*entity.ProductWithCircle, error)
	SearchProducts(ctx context.Context, query string, viewerID *uuid.UUID) ([]entity.ProductWithCircle, error)
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	RecordPurchase(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.Purchase, error)
}

type CircleServiceInterface interface {
	ListMembers(ctx context.Context, ownerID uuid.UUID) ([]entity.CircleMemberView, error)
	AddMember(ctx context.Context, ownerID uuid.UUID, req *entity.AddCircleMemberRequest) (*entity.CircleEdge, error)
	RemoveMember(ctx context.Context, ownerID, memberID uuid.UUID) error
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error)
}

// RatingServiceInterface пересчитывает рейтинги товаров из реакций
// Вызывается фоновым cron-воркером
type RatingServiceInterface interface {
	RecomputeRatings(ctx context.Context) (int, error)
}
