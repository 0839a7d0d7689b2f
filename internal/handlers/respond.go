package handlers

import (
	"net/http"

	"freshmarket_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Fail writes a service error as the API's {"error": ...} body. Unexpected
// errors are logged and masked; categorized errors surface their message.
func Fail(c *gin.Context, err error) {
	status := services.StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
