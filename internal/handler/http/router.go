package http

import (
	"log/slog"
	"os"

	"github.com/allinone-hr/wfh-backend-go/internal/config"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/middleware"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	wfhHandler WFHHandler,
	employeeHandler EmployeeHandler,
	delegationHandler DelegationHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "wfh-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(cfg.App.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// The SSE stream authenticates with its own short-lived token.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{staffID}", employeeHandler.GetByStaffID)
				r.Get("/manager/{staffID}", employeeHandler.ListByManager)
			})

			r.Route("/wfh", func(r chi.Router) {
				r.Post("/", wfhHandler.Submit)

				// HR Team / MD only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCompanyScope)
					r.Get("/", wfhHandler.ListAll)
					r.Get("/dept/{dept}", wfhHandler.ListByDepartment)
					r.Get("/date/{date}", wfhHandler.ListByDate)
				})

				r.Get("/requester/{staffID}", wfhHandler.ListByRequester)
				r.Get("/requester/{staffID}/approved", wfhHandler.ListApprovedByRequester)
				r.Get("/staff/{staffID}", wfhHandler.ListByStaff)
				r.Get("/manager/{staffID}", wfhHandler.ListByManager)

				r.Route("/{requestID}", func(r chi.Router) {
					r.Get("/", wfhHandler.GetByID)
					r.Get("/audit", wfhHandler.AuditTrail)

					r.Route("/entries/{entryID}", func(r chi.Router) {
						r.Put("/approve", wfhHandler.Approve)
						r.Put("/reject", wfhHandler.Reject)
						r.Put("/cancel", wfhHandler.Cancel)
						r.Put("/revoke", wfhHandler.Revoke)
						r.Put("/withdraw", wfhHandler.Withdraw)
						r.Put("/acknowledge", wfhHandler.Acknowledge)
					})
				})
			})

			r.Route("/delegations", func(r chi.Router) {
				r.Post("/", delegationHandler.Create)
				r.Get("/staff/{staffID}", delegationHandler.ListByStaff)
				r.Get("/{delegateID}", delegationHandler.GetByID)
				r.Put("/{delegateID}/accept", delegationHandler.Accept)
				r.Put("/{delegateID}/reject", delegationHandler.Reject)
				r.Get("/{delegateID}/history", delegationHandler.History)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/count", notificationHandler.Count)
				r.Get("/", notificationHandler.Feed)
				r.Get("/stream-token", notificationHandler.GetSSEToken)
			})
		})
	})
	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
