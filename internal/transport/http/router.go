package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	adminapp "github.com/waza/waitlist-api/internal/application/admin"
	"github.com/waza/waitlist-api/internal/application/verification"
	"github.com/waza/waitlist-api/internal/application/waitlist"
	"github.com/waza/waitlist-api/internal/config"
	"github.com/waza/waitlist-api/internal/transport/http/handler"
	appmiddleware "github.com/waza/waitlist-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the public endpoints.
	publicRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verificationSvc := verification.NewService(verification.ServiceDeps{
		Codes:      deps.CodeRepo,
		Tokens:     deps.TokenRepo,
		Mailer:     deps.Mailer,
		Secret:     cfg.TokenSecret,
		DevLogging: cfg.AppEnv == "development",
	})
	waitlistSvc := waitlist.NewService(waitlist.ServiceDeps{
		Submissions: deps.SubmissionRepo,
		Tokens:      deps.TokenRepo,
		Mailer:      deps.Mailer,
		Notifier:    deps.Notifier,
	})
	adminSvc := adminapp.NewService(deps.AdminTokenRepo, cfg.AdminFallbackToken, nil)

	healthH := handler.NewHealthHandler()
	verificationH := handler.NewVerificationHandler(verificationSvc)
	waitlistH := handler.NewWaitlistHandler(waitlistSvc)
	adminH := handler.NewAdminHandler(waitlistSvc, adminSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes ────────────────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(publicRL.Limit).Post("/verification/request", verificationH.RequestCode)
		r.With(publicRL.Limit).Post("/verification/check", verificationH.CheckCode)
		r.With(publicRL.Limit).Post("/waitlist", waitlistH.Submit)

		// ── Admin routes (bearer token via query param) ──────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.AdminAuth(adminSvc))

			r.Get("/admin/submissions", adminH.ListSubmissions)
			r.Delete("/admin/submissions", adminH.DeleteSubmission)
			r.Post("/admin/tokens", adminH.CreateToken)
			r.Delete("/admin/tokens/{id}", adminH.DeactivateToken)
		})
	})

	return r
}
