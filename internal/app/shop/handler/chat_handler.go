package handler

import (
	"errors"
	"net/http"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ChatHandler обрабатывает HTTP запросы чатов товаров и реакций
type ChatHandler struct {
	chatService     service.ChatServiceInterface
	feedbackService service.FeedbackServiceInterface
	catalogService  service.CatalogServiceInterface
	validator       *validator.Validate
}

// NewChatHandler создает обработчик чатов
func NewChatHandler(
	chatService service.ChatServiceInterface,
	feedbackService service.FeedbackServiceInterface,
	catalogService service.CatalogServiceInterface,
) *ChatHandler {
	return &ChatHandler{
		chatService:     chatService,
		feedbackService: feedbackService,
		catalogService:  catalogService,
		validator:       validator.New(),
	}
}

// GetChat обрабатывает GET /products/:product_id/chat
// Возвращает товар, сообщения с участием пользователя и агрегат реакций
func (h *ChatHandler) GetChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID, &userID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	messages, err := h.chatService.ListChat(c.Request.Context(), productID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get chat"})
		return
	}

	counts, err := h.feedbackService.Counts(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feedback"})
		return
	}

	c.JSON(http.StatusOK, entity.ChatView{
		Product:  product.Product,
		Messages: messages,
		Feedback: *counts,
	})
}

// PostChatMessage обрабатывает POST /products/:product_id/chat
func (h *ChatHandler) PostChatMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req entity.PostChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.chatService.PostChatMessage(c.Request.Context(), userID, productID, req.Text); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// React обрабатывает POST /products/:product_id/react
// Повторная реакция того же пользователя перезаписывает предыдущую
func (h *ChatHandler) React(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req entity.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	reaction, err := h.feedbackService.React(c.Request.Context(), userID, productID, req.Reaction)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, service.ErrInvalidReaction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reaction"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record reaction"})
		}
		return
	}

	counts, err := h.feedbackService.Counts(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"reaction": reaction,
		"feedback": counts,
	})
}

// AskCircle обрабатывает POST /circle/ask
// Рассылает вопрос о товаре выбранным участникам, несуществующие получатели пропускаются
func (h *ChatHandler) AskCircle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.AskCircleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	created, err := h.chatService.AskCircle(c.Request.Context(), userID, req.ProductID, req.Message, req.Recipients)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"message_ids": created,
		"sent":        len(created),
	})
}
