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

// CircleHandler обрабатывает HTTP запросы управления кругом
type CircleHandler struct {
	circleService service.CircleServiceInterface
	validator     *validator.Validate
}

// NewCircleHandler создает обработчик круга
func NewCircleHandler(circleService service.CircleServiceInterface) *CircleHandler {
	return &CircleHandler{
		circleService: circleService,
		validator:     validator.New(),
	}
}

// ListMembers обрабатывает GET /circle/
func (h *CircleHandler) ListMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	members, err := h.circleService.ListMembers(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get circle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"total":   len(members),
	})
}

// AddMember обрабатывает POST /circle/
func (h *CircleHandler) AddMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.AddCircleMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	edge, err := h.circleService.AddMember(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrDuplicateMember):
			c.JSON(http.StatusConflict, gin.H{"error": "User already in circle"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "ok",
		"member": edge,
	})
}

// RemoveMember обрабатывает DELETE /circle/:member_id
func (h *CircleHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	memberID, err := uuid.Parse(c.Param("member_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	if err := h.circleService.RemoveMember(c.Request.Context(), userID, memberID); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
