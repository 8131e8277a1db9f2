// auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"epost-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Middleware que valida el token y guarda el actor en el contexto
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access Denied. No Token Provided"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)

		actor, err := authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Expired Token"})
			c.Abort()
			return
		}

		c.Set("userID", actor.ID)
		c.Set("userRole", actor.Role)
		c.Next()
	}
}
