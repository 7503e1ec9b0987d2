package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/die-Manufaktur/seo-copilot-api/internal/origin"
)

// compressionLevel is the gzip level for response compression
const compressionLevel = 5

// requestTimeout bounds end-to-end request handling, including the
// outbound page fetch
const requestTimeout = 90 * time.Second

// RouterConfig wires the router's collaborators and limits
type RouterConfig struct {
	// Analyzer runs page analyses
	Analyzer PageAnalyzer
	// Origins is the compiled origin allowlist
	Origins *origin.Matcher
	// Emitter delivers analytics events; nil disables analytics
	Emitter EventEmitter
	// MaxBodySize caps the analyze request body in bytes; zero disables the cap
	MaxBodySize int64
	// RateRPS is the sustained analyze request rate; zero disables limiting
	RateRPS float64
	// RateBurst is the rate limiter burst size
	RateBurst int
}

// NewRouter creates a chi router with all endpoints and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	h := &Handler{
		analyzer:    cfg.Analyzer,
		emitter:     cfg.Emitter,
		maxBodySize: cfg.MaxBodySize,
	}

	var limiter *rate.Limiter
	if cfg.RateRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateRPS), cfg.RateBurst)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(compressionLevel))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)

		// origin enforcement and rate limiting apply to the analysis
		// route only; health stays open for infrastructure probes
		r.Route("/analyze", func(r chi.Router) {
			r.Use(requireAllowedOrigin(cfg.Origins))
			r.Use(limitRequests(limiter))
			r.Post("/", h.handleAnalyze)
			// preflights are answered by the origin middleware
			r.Options("/", func(http.ResponseWriter, *http.Request) {})
		})
	})

	return r
}
