package auth

import (
	"net/http"
	"time"

	"github.com/PocketCal/PC-Backend/internal/config"
	"github.com/PocketCal/PC-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	SetTokenTTL(time.Duration(cfg.TokenTTLHours) * time.Hour)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	r.Use(limiter.Middleware)

	r.Post("/register", RegisterHandler)
	r.Post("/login", LoginHandler)
	r.Post("/google", GoogleLoginHandler)
	r.Post("/github", GitHubLoginHandler)

	return r
}
