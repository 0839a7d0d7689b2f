package handlers

import (
	"context"
	"errors"
	"net/http"

	"freshmarket_back_end/internal/auth"
	"freshmarket_back_end/internal/config"
	"freshmarket_back_end/internal/database"
	"freshmarket_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
	"gorm.io/gorm"
)

type ctxKey string

// ProviderKey carries the path-level provider name to gothic's provider
// resolver configured in main.
const ProviderKey ctxKey = "provider"

// BeginOAuth starts the provider handshake (GET /api/auth/:provider).
func BeginOAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no provider specified"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// OAuthCallback completes the handshake, finds or creates the user and
// opens the same session cookie local login uses.
func OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no provider specified"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err = database.DB.Where("email = ? AND provider = ?", gothUser.Email, provider).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:            uuid.NewString(),
			Email:         gothUser.Email,
			Provider:      provider,
			Name:          gothUser.Name,
			Role:          models.RoleBuyer,
			EmailVerified: true, // the provider vouches for the address
		}
		if err := database.DB.Create(&user).Error; err != nil {
			Fail(c, err)
			return
		}
	} else if err != nil {
		Fail(c, err)
		return
	}

	session, err := auth.CreateSession(database.DB, user.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	auth.SetSessionCookie(c, session.Token)

	c.Redirect(http.StatusTemporaryRedirect, config.C.FrontendURL)
}
