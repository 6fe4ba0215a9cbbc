package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IDHeaderName is the header the storefront client sends its shared
// identifier in.
const IDHeaderName = "X-Gamelle-Identifier"

// CheckIDHeader rejects requests whose identifier header does not match id.
func CheckIDHeader(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(IDHeaderName) != id {
			// If the header is absent or the value is incorrect, reject the request
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
