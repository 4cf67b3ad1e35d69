package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"circleshop/pkg/logger"
	"circleshop/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	circleHandler *CircleHandler,
	chatHandler *ChatHandler,
	notificationHandler *NotificationHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("shop"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "shop",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Публичные эндпоинты (без аутентификации)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Каталог: чтение доступно анонимам, аннотация круга появляется у авторизованных
	products := router.Group("/products")
	{
		products.GET("/", authMiddleware.OptionalAuthenticate(), catalogHandler.ListProducts)
		products.GET("/search", authMiddleware.OptionalAuthenticate(), catalogHandler.SearchProducts)
		products.GET("/:product_id", authMiddleware.OptionalAuthenticate(), catalogHandler.GetProduct)

		protected := products.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("/", catalogHandler.CreateProduct)
			protected.POST("/:product_id/purchase", catalogHandler.RecordPurchase)
			protected.GET("/:product_id/chat", chatHandler.GetChat)
			protected.POST("/:product_id/chat", chatHandler.PostChatMessage)
			protected.POST("/:product_id/react", chatHandler.React)
		}
	}

	// Круг пользователя - все маршруты требуют аутентификации
	circle := router.Group("/circle")
	circle.Use(authMiddleware.Authenticate())
	{
		circle.GET("/", circleHandler.ListMembers)
		circle.POST("/", circleHandler.AddMember)
		circle.DELETE("/:member_id", circleHandler.RemoveMember)
		circle.POST("/ask", chatHandler.AskCircle)
	}

	// Уведомления - товары из переписки пользователя
	notifications := router.Group("/notifications")
	notifications.Use(authMiddleware.Authenticate())
	{
		notifications.GET("/", notificationHandler.ListNotifications)
	}

	return router
}
