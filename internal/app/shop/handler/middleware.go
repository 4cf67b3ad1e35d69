package handler

import (
	"net/http"
	"strings"

	"circleshop/internal/app/shop/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Ключи контекста Gin с данными аутентифицированного пользователя
const (
	ctxUserIDKey   = "user_id"
	ctxUsernameKey = "username"
)

// AuthMiddleware проверяет JWT токен в запросах
type AuthMiddleware struct {
	jwtManager *util.JWTManager
}

// NewAuthMiddleware создает новый middleware для аутентификации
func NewAuthMiddleware(jwtManager *util.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Authenticate требует валидный Bearer токен и кладет данные пользователя
// в контекст Gin
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.claimsFromHeader(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUsernameKey, claims.Username)
		c.Next()
	}
}

// OptionalAuthenticate пропускает запрос в любом случае
// Витрина каталога доступна анонимно, но залогиненный зритель получает
// аннотации покупок круга
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := m.claimsFromHeader(c); ok {
			c.Set(ctxUserIDKey, claims.UserID)
			c.Set(ctxUsernameKey, claims.Username)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) claimsFromHeader(c *gin.Context) (*util.JWTClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}

// currentUserID достает ID аутентифицированного пользователя из контекста
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := value.(uuid.UUID)
	return id, ok
}

// viewerID возвращает указатель на ID зрителя либо nil для анонима
func viewerID(c *gin.Context) *uuid.UUID {
	if id, ok := currentUserID(c); ok {
		return &id
	}
	return nil
}
