package repository

import (
	"context"

	"circleshop/internal/app/shop/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository создает новый репозиторий покупок
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create создает запись о покупке
func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	result := r.db.WithContext(ctx).Create(purchase)
	return result.Error
}

// ExistsByUserAndProduct проверяет, покупал ли пользователь товар
func (r *purchaseRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// ListByUsersAndProducts возвращает покупки, ограниченные обоими наборами
// Один запрос на страницу списка/поиска вместо пары запросов на каждый товар
func (r *purchaseRepository) ListByUsersAndProducts(ctx context.Context, userIDs, productIDs []uuid.UUID) ([]entity.Purchase, error) {
	if len(userIDs) == 0 || len(productIDs) == 0 {
		return []entity.Purchase{}, nil
	}

	var purchases []entity.Purchase
	result := r.db.WithContext(ctx).
		Where("user_id IN ? AND product_id IN ?", userIDs, productIDs).
		Find(&purchases)

	if result.Error != nil {
		return nil, result.Error
	}

	return purchases, nil
}
