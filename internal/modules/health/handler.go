package health

import (
	"net/http"
	"time"

	"taskhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/health-check", h.Check)
}

// Check reports liveness plus a database ping.
// @Summary		Health check
// @Tags		Health
// @Success		200	{object}	response.Envelope "Service healthy"
// @Failure		503	{object}	response.Envelope "Database unreachable"
// @Router		/health-check [GET]
func (h *Handler) Check(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, "Database unreachable")
		return
	}

	response.Success(c, http.StatusOK, "Service is healthy", gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
