package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brari/internal/transport/http/response"
)

// AuthBearer gates a route group behind the static ingestion secret. The
// whole header must match "Bearer <secret>" exactly; nothing else runs on a
// mismatch.
func AuthBearer(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+secret {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
