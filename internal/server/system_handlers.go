package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FransiTsena/fitme-sub001/internal/api"
	"github.com/FransiTsena/fitme-sub001/internal/logger"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// QueuePinger is satisfied by *email.Service.
type QueuePinger interface {
	Ping(ctx context.Context) error
}

// @Summary      Health check
// @Description  Reports ok when the database and, if configured, the email queue answer a ping.
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Failure      503 {object} api.HealthResponse
// @Router       /health [get]
func Health(db Pinger, queue QueuePinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable"})
			return
		}
		if queue != nil {
			if err := queue.Ping(ctx); err != nil {
				logger.WithError(err).Warn("email queue health check failed")
				c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
