package repository

import (
	"context"

	"circleshop/internal/app/shop/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository создает новый репозиторий реакций
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Upsert вставляет реакцию либо перезаписывает существующую
// INSERT ... ON CONFLICT выполняется атомарно: конкурентные первые реакции
// одной пары (product, user) сериализуются в одну строку
func (r *feedbackRepository) Upsert(ctx context.Context, feedback *entity.ProductFeedback) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"reaction": feedback.Reaction,
		}),
	}).Create(feedback)

	return result.Error
}

// CountByProduct считает реакции по товару
// Агрегат всегда пересчитывается запросом, без кеширования
func (r *feedbackRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (*entity.FeedbackCounts, error) {
	counts := &entity.FeedbackCounts{}

	if err := r.countReaction(ctx, productID, entity.ReactionLike, &counts.Likes); err != nil {
		return nil, err
	}
	if err := r.countReaction(ctx, productID, entity.ReactionDislike, &counts.Dislikes); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *feedbackRepository) countReaction(ctx context.Context, productID uuid.UUID, reaction entity.ReactionType, out *int64) error {
	result := r.db.WithContext(ctx).Model(&entity.ProductFeedback{}).
		Where("product_id = ? AND reaction = ?", productID, reaction).
		Count(out)
	return result.Error
}
