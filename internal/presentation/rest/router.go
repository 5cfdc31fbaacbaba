package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/auth"
)

// NewRouter assembles the HTTP surface. Admin routes (session debug and
// application listings) sit behind JWT auth; the chat flow itself is open
// for the demo frontend.
func NewRouter(h *Handler, tokens *auth.JWTService, metricsHandler http.Handler, serviceName string, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Post("/chat", h.handleChat)
	r.Post("/verify", h.handleVerify)
	r.Get("/stages", h.handleStages)
	r.Post("/auth/login", h.handleLogin)

	r.Get("/healthz", healthHandler(serviceName, "ok"))
	r.Get("/readyz", healthHandler(serviceName, "ready"))
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokens))
		r.Get("/session/{sessionID}", h.handleGetSession)
		r.Delete("/session/{sessionID}", h.handleDeleteSession)
		r.Get("/applications", h.handleListApplications)
		r.Get("/applications/{applicationID}", h.handleGetApplication)
	})

	return r
}

func healthHandler(serviceName, status string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  status,
			"service": serviceName,
		})
	}
}

// requestLogger emits one structured line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()))
		})
	}
}
