package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/die-Manufaktur/seo-copilot-api/internal/analytics"
	"github.com/die-Manufaktur/seo-copilot-api/internal/analyzer"
	"github.com/die-Manufaktur/seo-copilot-api/internal/origin"
	"github.com/die-Manufaktur/seo-copilot-api/internal/types"
)

const allowedOrigin = "https://app.webflow-ext.com"

// stubAnalyzer returns a canned report or error
type stubAnalyzer struct {
	report *types.AnalysisReport
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, rawURL, keyphrase string) (*types.AnalysisReport, error) {
	if s.err != nil {
		return nil, s.err
	}

	report := *s.report
	report.URL = rawURL
	report.Keyphrase = keyphrase

	return &report, nil
}

// stubEmitter records emitted events
type stubEmitter struct {
	events []analytics.Event
	err    error
}

func (s *stubEmitter) Emit(_ context.Context, event analytics.Event) error {
	s.events = append(s.events, event)

	return s.err
}

func sampleReport() *types.AnalysisReport {
	return &types.AnalysisReport{
		ReportID: "report-1",
		Checks: []types.CheckResult{
			{Title: "Keyphrase in Title", Passed: true, Priority: types.PriorityHigh},
		},
		PassedChecks: 1,
		FailedChecks: 0,
		Score:        100,
		Timestamp:    "2026-08-25T12:00:00Z",
	}
}

func newTestRouter(t *testing.T, a PageAnalyzer, emitter EventEmitter) http.Handler {
	t.Helper()

	matcher, err := origin.NewMatcher([]string{
		"https://webflow.com",
		"*.webflow-ext.com",
		"http://localhost:1337",
	})
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		Analyzer:    a,
		Origins:     matcher,
		Emitter:     emitter,
		MaxBodySize: 1 << 16,
	})
}

func doAnalyze(t *testing.T, handler http.Handler, body string, requestOrigin string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if requestOrigin != "" {
		req.Header.Set("Origin", requestOrigin)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) AnalyzeResponse {
	t.Helper()

	var envelope AnalyzeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))

	return envelope
}

func TestHandleHealth(t *testing.T) {
	handler := newTestRouter(t, &stubAnalyzer{report: sampleReport()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "seo-copilot", health.Service)
}

func TestHandleAnalyze_Success(t *testing.T) {
	emitter := &stubEmitter{}
	handler := newTestRouter(t, &stubAnalyzer{report: sampleReport()}, emitter)

	rec := doAnalyze(t, handler, `{"url":"https://example.com","keyphrase":"coffee"}`, allowedOrigin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Data)
	assert.Equal(t, "report-1", envelope.Data.ReportID)
	assert.Nil(t, envelope.Error)

	require.Len(t, emitter.events, 1)
	assert.Equal(t, "analysis_completed", emitter.events[0].Event)
	assert.True(t, emitter.events[0].Success)
	assert.Equal(t, 100, emitter.events[0].Score)
}

func TestHandleAnalyze_BadRequests(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"url":`},
		{name: "unknown field", body: `{"url":"https://example.com","extra":true}`},
		{name: "trailing object", body: `{"url":"https://example.com"}{"again":true}`},
		{name: "wrong type", body: `{"url":42}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestRouter(t, &stubAnalyzer{report: sampleReport()}, nil)

			rec := doAnalyze(t, handler, tc.body, allowedOrigin)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			envelope := decodeEnvelope(t, rec)
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, errCodeInvalidRequest, envelope.Error.Code)
		})
	}
}

func TestHandleAnalyze_MissingURL(t *testing.T) {
	handler := newTestRouter(t, &stubAnalyzer{report: sampleReport()}, nil)

	rec := doAnalyze(t, handler, `{"keyphrase":"coffee"}`, allowedOrigin)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, errCodeInvalidRequest, envelope.Error.Code)
	assert.Contains(t, envelope.Error.Message, "url is required")
}

func TestHandleAnalyze_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid url",
			err:        analyzer.ErrInvalidURL,
			wantStatus: http.StatusBadRequest,
			wantCode:   errCodeInvalidURL,
		},
		{
			name:       "fetch timeout",
			err:        analyzer.ErrFetchTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   errCodeFetchFailed,
		},
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   errCodeFetchFailed,
		},
		{
			name:       "upstream status",
			err:        &analyzer.UpstreamStatusError{StatusCode: http.StatusNotFound},
			wantStatus: http.StatusBadGateway,
			wantCode:   errCodeFetchFailed,
		},
		{
			name:       "fetch failed",
			err:        analyzer.ErrFetchFailed,
			wantStatus: http.StatusBadGateway,
			wantCode:   errCodeFetchFailed,
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   errCodeInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			emitter := &stubEmitter{}
			handler := newTestRouter(t, &stubAnalyzer{err: tc.err}, emitter)

			rec := doAnalyze(t, handler, `{"url":"https://example.com"}`, allowedOrigin)

			require.Equal(t, tc.wantStatus, rec.Code)

			envelope := decodeEnvelope(t, rec)
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tc.wantCode, envelope.Error.Code)
			assert.Nil(t, envelope.Data)

			require.Len(t, emitter.events, 1)
			assert.Equal(t, "analysis_failed", emitter.events[0].Event)
			assert.False(t, emitter.events[0].Success)
		})
	}
}

func TestHandleAnalyze_UpstreamStatusInMessage(t *testing.T) {
	handler := newTestRouter(t, &stubAnalyzer{err: &analyzer.UpstreamStatusError{StatusCode: 503}}, nil)

	rec := doAnalyze(t, handler, `{"url":"https://example.com"}`, allowedOrigin)

	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, envelope.Error.Message, "503")
}

func TestHandleAnalyze_InternalErrorHidesDetails(t *testing.T) {
	handler := newTestRouter(t, &stubAnalyzer{err: errors.New("dial tcp 10.0.0.5: connect refused")}, nil)

	rec := doAnalyze(t, handler, `{"url":"https://example.com"}`, allowedOrigin)

	envelope := decodeEnvelope(t, rec)
	assert.NotContains(t, envelope.Error.Message, "10.0.0.5")
}

func TestHandleAnalyze_BodyTooLarge(t *testing.T) {
	matcher, err := origin.NewMatcher([]string{allowedOrigin})
	require.NoError(t, err)

	handler := NewRouter(RouterConfig{
		Analyzer:    &stubAnalyzer{report: sampleReport()},
		Origins:     matcher,
		MaxBodySize: 64,
	})

	padding := strings.Repeat("a", 256)
	body := `{"url":"https://example.com","keyphrase":"` + padding + `"}`

	rec := doAnalyze(t, handler, body, allowedOrigin)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, errCodeInvalidRequest, envelope.Error.Code)
}

func TestHandleAnalyze_EmitterFailureDoesNotAffectResponse(t *testing.T) {
	emitter := &stubEmitter{err: errors.New("webhook down")}
	handler := newTestRouter(t, &stubAnalyzer{report: sampleReport()}, emitter)

	rec := doAnalyze(t, handler, `{"url":"https://example.com"}`, allowedOrigin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestHandleAnalyze_ContentEncoding(t *testing.T) {
	handler := newTestRouter(t, &stubAnalyzer{report: sampleReport()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze",
		bytes.NewReader([]byte(`{"url":"https://example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", allowedOrigin)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
