package httpHandler

import (
	"context"
	"net/http"
	"time"

	"healthbridge/db"
	"healthbridge/schemas"

	"github.com/gin-gonic/gin"
)

const readyTimeout = 2 * time.Second

type SystemHandler struct {
	db db.Database
}

func NewSystemHandler(database db.Database) *SystemHandler {
	return &SystemHandler{db: database}
}

// Root handles GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to HealthBridge API"})
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// Ready handles GET /ready by pinging the database.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, schemas.ErrorResponse{Detail: "Database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
