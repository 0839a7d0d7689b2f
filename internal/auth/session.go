package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"freshmarket_back_end/internal/models"
	"freshmarket_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	SessionCookieName = "fm_session"
	SessionTTL        = 30 * 24 * time.Hour
)

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// CreateSession opens a new 30-day session for the user.
func CreateSession(db *gorm.DB, userID string) (*models.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// LookupSession resolves a token to its user. Expired sessions are deleted
// on the spot and report as missing.
func LookupSession(db *gorm.DB, token string) (*models.User, error) {
	if token == "" {
		return nil, services.ErrAuthRequired
	}

	var session models.Session
	err := db.First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrAuthRequired
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		db.Delete(&session)
		return nil, services.ErrAuthRequired
	}

	var user models.User
	if err := db.First(&user, "id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			db.Delete(&session)
			return nil, services.ErrAuthRequired
		}
		return nil, err
	}
	return &user, nil
}

// DeleteSession logs a session out; deleting an unknown token is a no-op.
func DeleteSession(db *gorm.DB, token string) error {
	return db.Delete(&models.Session{}, "token = ?", token).Error
}

// SetSessionCookie installs the httpOnly session cookie.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(SessionTTL.Seconds()), "/", "", false, true)
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
