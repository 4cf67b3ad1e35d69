package service

import (
	"context"
	"fmt"

	"circleshop/internal/app/shop/repository"

	"circleshop/pkg/logger"
	"circleshop/pkg/metrics"
)

// RatingService пересчитывает рейтинг товаров из реакций like/dislike.
// Рейтинг - доля лайков, растянутая на шкалу 0..5; без реакций рейтинг 0.
type RatingService struct {
	productRepo  repository.ProductRepository
	feedbackRepo repository.FeedbackRepository
}

// NewRatingService создает сервис пересчета рейтингов
func NewRatingService(
	productRepo repository.ProductRepository,
	feedbackRepo repository.FeedbackRepository,
) *RatingService {
	return &RatingService{
		productRepo:  productRepo,
		feedbackRepo: feedbackRepo,
	}
}

// RecomputeRatings пересчитывает рейтинг каждого товара
// Возвращает количество обновленных товаров
func (s *RatingService) RecomputeRatings(ctx context.Context) (int, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load products: %w", err)
	}

	updated := 0
	for _, product := range products {
		counts, err := s.feedbackRepo.CountByProduct(ctx, product.ID)
		if err != nil {
			return updated, fmt.Errorf("failed to count feedback: %w", err)
		}

		rating := 0.0
		total := counts.Likes + counts.Dislikes
		if total > 0 {
			rating = 5 * float64(counts.Likes) / float64(total)
		}

		if rating == product.Rating {
			continue
		}

		if err := s.productRepo.UpdateRating(ctx, product.ID, rating); err != nil {
			// Один неудачный товар не прерывает обход остальных
			logger.Warn().Err(err).
				Str("product_id", product.ID.String()).
				Msg("Failed to update product rating")
			continue
		}
		updated++
	}

	metrics.RatingSweeps.Inc()
	return updated, nil
}
