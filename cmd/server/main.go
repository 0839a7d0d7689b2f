package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"freshmarket_back_end/internal/config"
	"freshmarket_back_end/internal/database"
	"freshmarket_back_end/internal/handlers"
	"freshmarket_back_end/internal/payment"
	"freshmarket_back_end/internal/routes"
	"freshmarket_back_end/internal/services"
	"freshmarket_back_end/internal/utils"
	"freshmarket_back_end/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()
	initLogger()

	if config.C.PaymentProvider == "stripe" {
		stripe.Key = config.C.StripeSecretKey
		if stripe.Key == "" {
			log.Fatal().Msg("PAYMENT_PROVIDER=stripe requires STRIPE_SECRET_KEY")
		}
		log.Info().Msg("stripe payments enabled")
	} else {
		log.Info().Msg("using simulated payment provider")
	}

	database.Connect()
	initOAuthProviders()

	hub := ws.NewHub()
	mailer := utils.NewMailer(config.C.SMTP)
	checkout := &services.CheckoutService{
		DB:       database.DB,
		Provider: payment.FromConfig(config.C.PaymentProvider),
		Mailer:   mailer,
		Hub:      hub,
	}

	if config.C.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		Checkout: checkout,
		Mailer:   mailer,
		Hub:      hub,
	})

	log.Info().Str("port", config.C.Port).Msg("freshmarket server listening")
	if err := r.Run(":" + config.C.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func initLogger() {
	level, err := zerolog.ParseLevel(config.C.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.C.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func initOAuthProviders() {
	if config.C.GoogleClientID == "" || config.C.GoogleClientSecret == "" {
		log.Warn().Msg("google oauth not configured")
		return
	}

	secret := config.C.SessionSecret
	if secret == "" {
		log.Fatal().Msg("SESSION_SECRET is required for oauth")
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   config.C.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = store

	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider := req.FormValue("provider"); provider != "" {
			return provider, nil
		}
		// Fall back to the path segment used by /api/auth/:provider.
		if provider, ok := req.Context().Value(handlers.ProviderKey).(string); ok && provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	goth.UseProviders(google.New(
		config.C.GoogleClientID,
		config.C.GoogleClientSecret,
		config.C.BaseURL+"/api/auth/google/callback",
	))
	log.Info().Msg("google oauth enabled")
}
