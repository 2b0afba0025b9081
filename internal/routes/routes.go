package routes

import (
	"net/http"

	"github.com/templui/habits/internal/app"
	"github.com/templui/habits/internal/handler"
	"github.com/templui/habits/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	habit := handler.NewHabitHandler(app.HabitService)
	day := handler.NewDayHandler(app.HabitService)
	summary := handler.NewSummaryHandler(app.HabitService, app.ExportService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", health.Health)

	// Habits
	mux.HandleFunc("POST /habits", habit.Create)
	mux.HandleFunc("GET /habits", habit.List)
	mux.HandleFunc("PATCH /habits/{id}/toggle", habit.Toggle)

	// Days
	mux.HandleFunc("GET /day", day.Day)

	// Summary
	mux.HandleFunc("GET /summary", summary.Summary)
	mux.HandleFunc("POST /summary/export", summary.Export)

	// 405 on known paths, the catch-all below would otherwise turn these into 404
	mux.HandleFunc("/health", handler.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc("/habits", handler.MethodNotAllowed(http.MethodGet, http.MethodPost))
	mux.HandleFunc("/habits/{id}/toggle", handler.MethodNotAllowed(http.MethodPatch))
	mux.HandleFunc("/day", handler.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc("/summary", handler.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc("/summary/export", handler.MethodNotAllowed(http.MethodPost))

	// 404
	mux.HandleFunc("/{path...}", func(w http.ResponseWriter, r *http.Request) {
		handler.Error(w, http.StatusNotFound, "route not found")
	})

	// Writes (create, toggle, export) share one limiter per client IP
	rateLimiter := middleware.NewRateLimiter(app.Context(), app.Cfg.RateLimitWrites, app.Cfg.RateLimitWindow)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,      // Request ID first so every later log line carries it
		middleware.RequestLogging,
		middleware.Recover,
		middleware.CORS(app.Cfg.CORSAllowedOrigins), // Preflight answered before rate limiting
		middleware.RateLimitWrites(rateLimiter),
	)

	return handler
}
