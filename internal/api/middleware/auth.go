package middleware

import (
	"IOStatDO/internal/pkg/jwt"
	"IOStatDO/internal/pkg/logger"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errMissingToken  = errors.New("Authorization header is required")
	errInvalidFormat = errors.New("Invalid authorization format")
)

// JWTAuthMiddleware creates a middleware to validate JWT tokens
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := jwt.ValidateToken(token, jwtSecret)
		if err != nil {
			logger.Warn("Invalid JWT token",
				logger.Err(err),
				logger.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Store username in context for future use
		c.Set("username", claims.Username)
		c.Next()
	}
}

// extractToken reads a bearer token from the Authorization header. Browsers
// cannot set headers on WebSocket upgrades, so those may use ?token= instead.
func extractToken(c *gin.Context) (string, error) {
	if c.Request.Header.Get("Upgrade") == "websocket" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errInvalidFormat
	}
	return parts[1], nil
}
