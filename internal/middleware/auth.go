package middleware

import (
	"net/http"

	"freshmarket_back_end/internal/auth"
	"freshmarket_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

// AuthRequired resolves the session cookie to a user and puts the
// identity into the request context. Unauthenticated requests are
// rejected with 401 before reaching the handler.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(auth.SessionCookieName)

		user, err := auth.LookupSession(database.DB, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

// VendorOnly rejects non-vendor users. Must run after AuthRequired.
func VendorOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "vendor" {
			c.JSON(http.StatusForbidden, gin.H{"error": "vendor account required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
