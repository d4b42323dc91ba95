package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the database and the session store respond
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a HealthHandler; a nil redis client is reported as disabled
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{"database": "ok", "redis": "disabled"}

	if err := h.pingDB(ctx); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = err.Error()
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status = http.StatusServiceUnavailable
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	checks["status"] = "ok"
	if status != http.StatusOK {
		checks["status"] = "degraded"
	}
	c.JSON(status, checks)
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
