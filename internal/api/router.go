package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/traderscope/journal/backend/internal/api/handlers"
	"github.com/traderscope/journal/backend/pkg/config"
	"github.com/traderscope/journal/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	tradeHandler *handlers.TradeHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	noteHandler *handlers.NoteHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API (authenticated)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware())

	// Trade endpoints
	api.HandleFunc("/trades", tradeHandler.List).Methods("GET")
	api.HandleFunc("/trades", tradeHandler.Create).Methods("POST")
	api.HandleFunc("/trades/{id}", tradeHandler.Get).Methods("GET")
	api.HandleFunc("/trades/{id}", tradeHandler.Update).Methods("PUT")
	api.HandleFunc("/trades/{id}", tradeHandler.Delete).Methods("DELETE")

	// Note endpoints
	api.HandleFunc("/notes", noteHandler.ListNotes).Methods("GET")
	api.HandleFunc("/notes", noteHandler.CreateNote).Methods("POST")
	api.HandleFunc("/notes/{id}", noteHandler.GetNote).Methods("GET")
	api.HandleFunc("/notes/{id}", noteHandler.UpdateNote).Methods("PUT")
	api.HandleFunc("/notes/{id}", noteHandler.DeleteNote).Methods("DELETE")

	// Event endpoints
	api.HandleFunc("/events", noteHandler.ListEvents).Methods("GET")
	api.HandleFunc("/events", noteHandler.CreateEvent).Methods("POST")
	api.HandleFunc("/events/{id}", noteHandler.DeleteEvent).Methods("DELETE")

	// Analytics endpoints
	analytics := api.PathPrefix("/analytics").Subrouter()
	analytics.HandleFunc("/metrics", analyticsHandler.Metrics).Methods("GET")
	analytics.HandleFunc("/equity-curve", analyticsHandler.EquityCurve).Methods("GET")
	analytics.HandleFunc("/monthly", analyticsHandler.Monthly).Methods("GET")
	analytics.HandleFunc("/symbols", analyticsHandler.Symbols).Methods("GET")
	analytics.HandleFunc("/strategies", analyticsHandler.Strategies).Methods("GET")
	analytics.HandleFunc("/trade-types", analyticsHandler.TradeTypes).Methods("GET")
	analytics.HandleFunc("/time-of-day", analyticsHandler.TimeOfDay).Methods("GET")
	analytics.HandleFunc("/heatmap", analyticsHandler.Heatmap).Methods("GET")
	analytics.HandleFunc("/distribution", analyticsHandler.Distribution).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(rateLimitMiddleware(cfg))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "journal-api",
	})
}

// authMiddleware requires the user identity set by the upstream auth proxy.
// Session handling itself lives outside this service.
func authMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(handlers.UserIDHeader)
			if userID == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Missing user identity",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware applies a per-instance token bucket to all requests
func rateLimitMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(cfg.Journal.RateLimitRPS), cfg.Journal.RateLimitBurst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
