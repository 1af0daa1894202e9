package http

import (
	"log/slog"
	"os"

	"github.com/contracthq/contracts-backend-go/internal/handler/http/middleware"
	"github.com/contracthq/contracts-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	FrontendURL     string
	Env             string
	CronSecretToken string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	contractHandler ContractHandler,
	requestHandler RequestHandler,
	companyHandler CompanyHandler,
	analyticsHandler AnalyticsHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "contracthq"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// External scheduler entry point, guarded by a shared token
		// instead of session auth.
		r.Route("/contracts/cron", func(r chi.Router) {
			r.Use(middleware.CronAuth(cfg.CronSecretToken))
			r.Post("/", contractHandler.RunCron)
			r.Get("/", contractHandler.CronHealth)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/contracts", func(r chi.Router) {
				r.Get("/my", contractHandler.ListMy)

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", requestHandler.Create)
					r.Get("/", requestHandler.ListMy)
				})

				r.Route("/status", func(r chi.Router) {
					r.Get("/", contractHandler.GetExpiring)
					r.Get("/expired", contractHandler.GetExpired)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", contractHandler.TriggerStatusUpdate)
					})
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", contractHandler.GetByID)
					r.Get("/history", contractHandler.GetHistory)

					r.Route("/documents", func(r chi.Router) {
						r.Get("/", contractHandler.ListDocuments)
						r.Post("/", contractHandler.UploadDocument)
						r.Delete("/{docID}", contractHandler.RemoveDocument)
					})

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/", contractHandler.Update)
						r.Delete("/", contractHandler.Delete)
					})
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", contractHandler.List)
					r.Post("/", contractHandler.Create)
				})
			})

			// Admin only
			r.Route("/admin/requests", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", requestHandler.ListAll)
				r.Put("/", requestHandler.Process)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)

				r.Route("/{id}", func(r chi.Router) {
					// Self or admin; the service enforces it.
					r.Put("/password", userHandler.ChangePassword)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Get("/", userHandler.GetByID)
						r.Put("/", userHandler.Update)
						r.Delete("/", userHandler.Delete)
					})
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
				})
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", companyHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", companyHandler.Create)
					r.Put("/", companyHandler.Update)
					r.Delete("/", companyHandler.Delete)
				})
			})

			// Admin only
			r.Route("/analytics", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", analyticsHandler.GetOverview)
				r.Get("/activity", analyticsHandler.GetRecentActivity)
			})
		})
	})
	return r
}
