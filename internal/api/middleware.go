package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/meeting-room-backend/internal/metrics"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// RequestLogger logs each request with its latency and outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Get().Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// TrackMetrics records request counts and durations per route. Uses the
// route template rather than the raw path to keep label cardinality bounded.
func TrackMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		if metrics.HTTPRequestsTotal != nil {
			metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		}
		if metrics.HTTPRequestDuration != nil {
			metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		}
	}
}
