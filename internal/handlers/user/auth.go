package user

import (
	"errors"
	"net/http"

	"freshmarket_back_end/internal/auth"
	"freshmarket_back_end/internal/cache"
	"freshmarket_back_end/internal/config"
	"freshmarket_back_end/internal/database"
	"freshmarket_back_end/internal/handlers"
	"freshmarket_back_end/internal/models"
	"freshmarket_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Register creates a local account, opens a session and mails a
// verification link.
func Register(mailer *utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
			Vendor   bool   `json:"vendor"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		if len(input.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
			return
		}

		var existing models.User
		err := database.DB.Where("email = ? AND provider = ?", input.Email, models.ProviderLocal).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			handlers.Fail(c, err)
			return
		}

		hashed, err := auth.HashPassword(input.Password)
		if err != nil {
			handlers.Fail(c, err)
			return
		}

		role := models.RoleBuyer
		if input.Vendor {
			role = models.RoleVendor
		}

		user := models.User{
			ID:       uuid.NewString(),
			Email:    input.Email,
			Provider: models.ProviderLocal,
			Password: hashed,
			Name:     input.Name,
			Role:     role,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			handlers.Fail(c, err)
			return
		}

		session, err := auth.CreateSession(database.DB, user.ID)
		if err != nil {
			handlers.Fail(c, err)
			return
		}
		auth.SetSessionCookie(c, session.Token)

		go sendVerificationMail(mailer, user)

		c.JSON(http.StatusCreated, gin.H{
			"user_id": user.ID,
			"email":   user.Email,
			"name":    user.Name,
			"role":    user.Role,
		})
	}
}

func sendVerificationMail(mailer *utils.Mailer, user models.User) {
	token, err := auth.GenerateVerificationToken(user.ID, user.Email)
	if err != nil {
		log.Warn().Err(err).Msg("verification token generation failed")
		return
	}
	link := config.C.BaseURL + "/api/auth/verify?token=" + token
	if err := mailer.Send(user.Email, "Verify your FreshMarket email",
		utils.VerificationEmailHTML(link), nil, ""); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("verification mail failed")
	}
}

// Login checks credentials and opens a session.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var user models.User
	err := database.DB.Where("email = ? AND provider = ?", input.Email, models.ProviderLocal).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err != nil {
		handlers.Fail(c, err)
		return
	}

	ok, err := auth.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	session, err := auth.CreateSession(database.DB, user.ID)
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	auth.SetSessionCookie(c, session.Token)

	c.JSON(http.StatusOK, gin.H{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}

// Logout deletes the session server-side and clears the cookie.
func Logout(c *gin.Context) {
	if token, err := c.Cookie(auth.SessionCookieName); err == nil && token != "" {
		if err := auth.DeleteSession(database.DB, token); err != nil {
			handlers.Fail(c, err)
			return
		}
	}
	auth.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func Me(c *gin.Context) {
	user, err := cache.GetUser(database.DB, c.GetString("user_id"))
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// VerifyEmail flips the verified flag for a valid token.
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	userID, err := auth.ParseVerificationToken(token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
		return
	}

	if err := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("email_verified", true).Error; err != nil {
		handlers.Fail(c, err)
		return
	}
	cache.InvalidateUser(userID)

	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}
