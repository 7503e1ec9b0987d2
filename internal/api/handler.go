// Package api provides the HTTP boundary for the SEO analysis service.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/die-Manufaktur/seo-copilot-api/internal/analytics"
	"github.com/die-Manufaktur/seo-copilot-api/internal/analyzer"
	"github.com/die-Manufaktur/seo-copilot-api/internal/htmldoc"
	"github.com/die-Manufaktur/seo-copilot-api/internal/types"
)

// PageAnalyzer runs a full analysis for one page
type PageAnalyzer interface {
	Analyze(ctx context.Context, rawURL, keyphrase string) (*types.AnalysisReport, error)
}

// EventEmitter delivers analysis outcome events to an analytics sink
type EventEmitter interface {
	Emit(ctx context.Context, event analytics.Event) error
}

// Handler manages API endpoints
type Handler struct {
	analyzer    PageAnalyzer
	emitter     EventEmitter
	maxBodySize int64
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Service   string `json:"service" example:"seo-copilot"`
	Timestamp string `json:"timestamp" example:"2026-01-15T10:30:00Z"`
}

// AnalyzeRequest represents a page analysis request
type AnalyzeRequest struct {
	// URL is the page to analyze
	URL string `json:"url" example:"https://example.com/blog/post"`
	// Keyphrase is the focus keyphrase to evaluate the page against
	Keyphrase string `json:"keyphrase,omitempty" example:"coffee brewing"`
}

// AnalyzeResponse represents the analysis response envelope
type AnalyzeResponse struct {
	// Success indicates whether the analysis completed successfully
	Success bool `json:"success"`
	// Data holds the analysis report when successful
	Data *types.AnalysisReport `json:"data,omitempty"`
	// Error is the normalized error payload when the analysis fails
	Error *Error `json:"error,omitempty"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "seo-copilot",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleAnalyze processes page analysis requests
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req AnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.URL == "" {
		writeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrURLRequired.Error())
		return
	}

	started := time.Now()

	report, err := h.analyzer.Analyze(r.Context(), req.URL, req.Keyphrase)
	if err != nil {
		log.Warn().Err(err).Str("url", req.URL).Msg("page analysis failed")
		h.emitEvent(r.Context(), req.URL, started, nil)
		h.respondAnalyzeError(w, err)

		return
	}

	h.emitEvent(r.Context(), report.URL, started, report)

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success: true,
		Data:    report,
	})
}

// respondAnalyzeError maps pipeline errors onto HTTP statuses and
// normalized error codes. Unknown errors return a generic message so
// internals never leak to the client.
func (h *Handler) respondAnalyzeError(w http.ResponseWriter, err error) {
	var statusErr *analyzer.UpstreamStatusError

	switch {
	case errors.Is(err, analyzer.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, errCodeInvalidURL, err.Error())
	case errors.Is(err, analyzer.ErrFetchTimeout), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, errCodeFetchFailed, "page fetch timed out")
	case errors.As(err, &statusErr):
		writeError(w, http.StatusBadGateway, errCodeFetchFailed,
			fmt.Sprintf("target returned status %d", statusErr.StatusCode))
	case errors.Is(err, analyzer.ErrFetchFailed):
		writeError(w, http.StatusBadGateway, errCodeFetchFailed, "failed to fetch page")
	case errors.Is(err, htmldoc.ErrUnparseable):
		writeError(w, http.StatusUnprocessableEntity, errCodeParseFailed, "failed to parse page")
	default:
		writeError(w, http.StatusInternalServerError, errCodeInternal, "internal error")
	}
}

// emitEvent reports the analysis outcome to the analytics sink. Delivery
// failures are logged and never affect the client response.
func (h *Handler) emitEvent(ctx context.Context, url string, started time.Time, report *types.AnalysisReport) {
	if h.emitter == nil {
		return
	}

	event := analytics.Event{
		Event:      "analysis_failed",
		URL:        url,
		Success:    false,
		DurationMS: time.Since(started).Milliseconds(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	if report != nil {
		event.Event = "analysis_completed"
		event.Success = true
		event.Score = report.Score
	}

	if err := h.emitter.Emit(ctx, event); err != nil {
		log.Warn().Err(err).Str("event", event.Event).Msg("analytics delivery failed")
	}
}
