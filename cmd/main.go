package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"circleshop/internal/app/shop/config"
	"circleshop/internal/app/shop/handler"
	"circleshop/internal/app/shop/repository"
	"circleshop/internal/app/shop/service"
	"circleshop/internal/app/shop/util"
	"circleshop/internal/app/shop/worker"
	"circleshop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("shop", cfg.LogLevel)

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	redisClient, err := util.NewRedisClient(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().
		Str("addr", cfg.Redis.Address()).
		Msg("Connected to Redis")

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	circleRepo := repository.NewCircleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenDuration)

	visibilityService := service.NewVisibilityService(circleRepo, purchaseRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(productRepo, purchaseRepo, visibilityService, redisClient, kafkaProducer)
	circleService := service.NewCircleService(circleRepo, userRepo)
	chatService := service.NewChatService(messageRepo, circleRepo, userRepo, productRepo, kafkaProducer)
	feedbackService := service.NewFeedbackService(feedbackRepo, productRepo, kafkaProducer)
	notificationService := service.NewNotificationService(messageRepo, productRepo, feedbackRepo)
	ratingService := service.NewRatingService(productRepo, feedbackRepo)

	authMiddleware := handler.NewAuthMiddleware(jwtManager)
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	circleHandler := handler.NewCircleHandler(circleService)
	chatHandler := handler.NewChatHandler(chatService, feedbackService, catalogService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	router := handler.SetupRoutes(
		authHandler,
		catalogHandler,
		circleHandler,
		chatHandler,
		notificationHandler,
		authMiddleware,
	)

	// Фоновый пересчет рейтингов товаров из реакций
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()

	ratingScheduler := worker.NewRatingScheduler(ratingService)
	if err := ratingScheduler.Start(schedulerCtx, cfg.Worker.RatingCronSchedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start rating scheduler")
	}
	defer ratingScheduler.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Shop Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Shop Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Shop Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
