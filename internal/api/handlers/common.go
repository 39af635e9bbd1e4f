package handlers

import (
	"IOStatDO/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleError provides a consistent way to handle errors in route handlers
func HandleError(c *gin.Context, err error) {
	HandleErrorWithStatus(c, http.StatusInternalServerError, err)
}

// HandleErrorWithStatus is HandleError with an explicit status code
func HandleErrorWithStatus(c *gin.Context, status int, err error) {
	logger.Error("API error",
		logger.String("path", c.Request.URL.Path),
		logger.Int("status", status),
		logger.Err(err))
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
