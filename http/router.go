package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Handlers groups what the router dispatches to.
type Handlers struct {
	Quotes    *QuoteHandler
	Proposals *ProposalHandler
	Limiter   *RateLimiter
}

// NewRouter builds the chi router with the standard middleware stack.
func NewRouter(h Handlers, log zerolog.Logger) http.Handler {
	log = log.With().Str("component", "http").Logger()
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", handleHealth(log))

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(h.Limiter, log))

		r.Route("/quote", func(r chi.Router) {
			r.Post("/", h.Quotes.Quote)
			r.Post("/batch", h.Quotes.Batch)
			r.Post("/report", h.Quotes.Report)
		})

		r.Route("/proposals", func(r chi.Router) {
			r.Post("/", h.Proposals.Accept)
			r.Get("/", h.Proposals.List)
			r.Get("/{id}", h.Proposals.Get)
		})
	})

	return r
}

func handleHealth(log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func loggingMiddleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration_ms", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("HTTP request")
		})
	}
}
