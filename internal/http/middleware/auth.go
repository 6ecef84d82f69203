package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-bidding/internal/interface/http/response"
	"github.com/ignatzorin/freelance-bidding/internal/service"
)

// ContextUserIDKey - ключ gin.Context с ID профиля из access токена.
const ContextUserIDKey = "userID"

// AuthMiddleware проверяет JWT access токен.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "требуется авторизация")
			return
		}

		userID, err := tokens.ParseAccess(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "недействительный или просроченный токен")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
