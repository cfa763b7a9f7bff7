package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/recipenest/recipenest-web/pkg/logger"
	"github.com/recipenest/recipenest-web/pkg/metrics"
	"go.uber.org/zap"
)

// ObservabilityMiddleware records request metrics and logs every request
// with the matched route template, so path parameters never explode the
// label cardinality.
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		duration := metrics.MeasureDuration(start)

		metrics.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, route, status).Inc()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Float64("duration_seconds", duration),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			logger.Error("request failed", fields...)
			return
		}

		logger.Debug("request handled", fields...)
	}
}
