package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger emits one structured line per request, after the handler chain ran.
// The session source is included so staff and member traffic can be told
// apart in the logs without parsing paths.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		}

		source := "none"
		if p, ok := Principal(c); ok {
			source = p.Source.String()
		}

		event.
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency_ms", time.Since(start)).
			Str("ip", GetClientIP(c)).
			Str("session", source).
			Msg("HTTP Request")
	}
}
