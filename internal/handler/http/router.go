package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/timetrack-backend-go/internal/config"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, timesheetHandler TimesheetHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timetrack-cmlabs"),
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
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/yo", func(w http.ResponseWriter, r *http.Request) {
		w.Write(([]byte("hello world\n")))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/timesheet", func(r chi.Router) {
				r.Get("/summary", timesheetHandler.HoursSummary)

				// Manager or admin only
				r.Route("/analytics", func(r chi.Router) {
					r.Use(middleware.RequireAttendanceRole)
					r.Get("/clock-in-trend", timesheetHandler.ClockInTrend)
					r.Get("/clock-out-trend", timesheetHandler.ClockOutTrend)
					r.Get("/attendance-summary", timesheetHandler.TeamHoursSummary)
					r.Get("/timesheet-summary", timesheetHandler.TimesheetSummary)
				})

				r.Route("/records", func(r chi.Router) {
					r.Get("/", timesheetHandler.ListRecords)
					r.Get("/work-hours/{employeeID}", timesheetHandler.WorkHours)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAttendanceAdmin)
					r.Get("/open-session", timesheetHandler.OpenSession)
				})
			})
		})
	})
	return r
}
