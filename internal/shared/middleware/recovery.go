package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"foundation-backend/internal/shared/response"
)

// Recovery converts panics into a generic 500. The panic value is logged with
// the request id but never echoed to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("path", c.Request.URL.Path).
					Interface("panic", r).
					Msg("Panic recovered")

				response.InternalServerError(c, "something went wrong")
				c.Abort()
			}
		}()

		c.Next()
	}
}
