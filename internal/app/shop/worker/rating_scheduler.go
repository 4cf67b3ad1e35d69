package worker

import (
	"context"

	"circleshop/internal/app/shop/service"
	"circleshop/pkg/logger"

	"github.com/robfig/cron/v3"
)

// RatingScheduler запускает периодический пересчет рейтингов товаров
type RatingScheduler struct {
	cron      *cron.Cron
	ratingSvc service.RatingServiceInterface
}

func NewRatingScheduler(ratingSvc service.RatingServiceInterface) *RatingScheduler {
	return &RatingScheduler{
		cron:      cron.New(),
		ratingSvc: ratingSvc,
	}
}

// Start регистрирует задачу по расписанию и сразу выполняет первый пересчет
func (s *RatingScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting rating scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		updated, err := s.ratingSvc.RecomputeRatings(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Rating recompute failed")
			return
		}
		logger.Info().Int("updated", updated).Msg("Rating recompute completed")
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	if _, err := s.ratingSvc.RecomputeRatings(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial rating recompute failed")
	}

	return nil
}

func (s *RatingScheduler) Stop() {
	logger.Info().Msg("Stopping rating scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *RatingScheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}
