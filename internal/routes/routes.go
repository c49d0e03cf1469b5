package routes

import (
	"net/http"

	"github.com/templui/okrledger/internal/app"
	"github.com/templui/okrledger/internal/handler"
	"github.com/templui/okrledger/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	progress := handler.NewProgressHandler(app.ProgressService, app.ObjectiveService)
	review := handler.NewReviewHandler(app.ReviewService)
	objective := handler.NewObjectiveHandler(app.ObjectiveService, app.ExportService)
	coverage := handler.NewCoverageHandler(app.CoverageService, app.ObjectiveService)

	mux := http.NewServeMux()

	// Writes are rate limited per actor, falling back to client IP
	limit := middleware.RateLimitWrites(app.Cfg.RateLimitWrites, app.Cfg.RateLimitWindow)
	write := func(h http.HandlerFunc) http.HandlerFunc {
		return limit(middleware.RequireAuth(h))
	}
	read := middleware.RequireAuth

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)

	// ============================================================================
	// LEDGER
	// ============================================================================

	mux.HandleFunc("POST /api/progress", write(progress.Submit))
	mux.HandleFunc("GET /api/progress", read(progress.List))

	mux.HandleFunc("POST /api/reviews/quarterly", write(review.Submit))
	mux.HandleFunc("GET /api/reviews/quarterly", read(review.Get))
	mux.HandleFunc("GET /api/reviews/quarterly/grading", read(review.Grading))

	// ============================================================================
	// OBJECTIVES
	// ============================================================================

	mux.HandleFunc("POST /api/objectives", write(objective.Create))
	mux.HandleFunc("GET /api/objectives", read(objective.List))
	mux.HandleFunc("GET /api/objectives/{id}", read(objective.Get))
	mux.HandleFunc("PUT /api/objectives/{id}", write(objective.Update))
	mux.HandleFunc("DELETE /api/objectives/{id}", write(objective.Delete))
	mux.HandleFunc("POST /api/objectives/{id}/key-results", write(objective.AddKeyResult))
	mux.HandleFunc("GET /api/objectives/{id}/export", read(objective.Export))
	mux.HandleFunc("POST /api/objectives/{id}/export", write(objective.Archive))

	// ============================================================================
	// COVERAGE
	// ============================================================================

	mux.HandleFunc("GET /api/objectives/{id}/coverage", read(coverage.Objective))
	mux.HandleFunc("GET /api/key-results/{id}/coverage", read(coverage.KeyResult))
	mux.HandleFunc("GET /api/coverage/missing", read(coverage.Missing))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", health.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID, // Request id first so every later log line carries it
		middleware.AuthMiddleware(app.AuthService),
		middleware.RequestLogging,
	)

	return handler
}
