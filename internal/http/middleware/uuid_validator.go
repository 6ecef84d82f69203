package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-bidding/internal/interface/http/response"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

// UUIDValidator проверяет, что параметр пути является валидным UUID.
// Использование: router.GET("/bids/:id", UUIDValidator("id"), handler.GetBid)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param(paramName)); err != nil {
			response.Error(c, apperror.Validation(paramName+" должен быть корректным UUID"))
			c.Abort()
			return
		}
		c.Next()
	}
}
