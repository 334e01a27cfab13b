package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sergeii/toolbelt/internal/metrics"
)

func Logger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Warn()
		case status >= 400:
			event = logger.Info()
		default:
			event = logger.Debug()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(started)).
			Str("request_id", GetRequestID(c)).
			Msg("Handled API request")
	}
}

// Metrics counts requests per matched route so that query strings do not leak into labels.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.APIRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		collector.APIDurations.WithLabelValues(route).Observe(time.Since(started).Seconds())
	}
}
