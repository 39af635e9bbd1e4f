package auth

import (
	"IOStatDO/internal/pkg/config"
	"IOStatDO/internal/pkg/jwt"
	"IOStatDO/internal/pkg/logger"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the login endpoint
func RegisterRoutes(engine *gin.Engine, cfg *config.Config) {
	authGroup := engine.Group("/api/auth")
	{
		authGroup.POST("/login", loginHandler(cfg))
	}
}

func loginHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var credentials struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}

		if err := c.ShouldBindJSON(&credentials); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if !credentialsMatch(cfg.API.Auth, credentials.Username, credentials.Password) {
			logger.Warn("Failed authentication attempt",
				logger.String("username", credentials.Username),
				logger.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		tokenExpiration := 24 * time.Hour
		if cfg.API.Auth.JWTExpiration > 0 {
			tokenExpiration = time.Duration(cfg.API.Auth.JWTExpiration) * time.Second
		}

		token, err := jwt.GenerateToken(credentials.Username, cfg.API.Auth.JWTSecret, tokenExpiration)
		if err != nil {
			logger.Error("Failed to generate token", logger.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "success",
			"token":      token,
			"expires_in": tokenExpiration.Seconds(),
		})
	}
}

func credentialsMatch(auth config.AuthConfig, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(auth.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(auth.Password)) == 1
	return userOK && passOK
}
