package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"linewatch/internal/pkg/basicauth"
	"linewatch/internal/pkg/limiter"
	"linewatch/internal/pkg/logx"
)

// Webhook rate limits per client IP. The platforms batch events, so sustained
// traffic stays low even for busy bots; the burst absorbs delivery retries.
const (
	WebhookRate  = 5
	WebhookBurst = 10
)

// Router sets up the HTTP routing table.
// It applies CORS, request-id, logging and recovery middleware globally, rate
// limiting on the webhook POSTs, and the Basic auth gate on the admin routes.
func Router(deps *AppDeps) http.Handler {
	webhookLimiter := limiter.NewIPRateLimiter(rate.Limit(WebhookRate), WebhookBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/", HandleHome(deps))
	r.Get("/health", HandleHealth(deps))

	r.Route("/line", func(line chi.Router) {
		line.Get("/webhook", HandleLineWebhookProbe())
		line.With(webhookLimiter.Middleware).Post("/webhook", HandleLineWebhook(deps))
	})

	r.With(webhookLimiter.Middleware).Post("/stripe/webhook", HandleStripeWebhook(deps))

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(basicauth.Middleware(deps.Config.AdminUsername, deps.Config.AdminPassword))
		admin.Get("/users", HandleAdminUsers(deps))
	})

	return r
}
