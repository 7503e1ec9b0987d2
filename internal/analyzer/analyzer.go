// Package analyzer orchestrates a single page analysis: it validates the
// target URL, fetches the page through a hardened client, extracts a
// document model, evaluates the check battery, and scores the results.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/die-Manufaktur/seo-copilot-api/internal/htmldoc"
	"github.com/die-Manufaktur/seo-copilot-api/internal/sanitize"
	"github.com/die-Manufaktur/seo-copilot-api/internal/types"
	"github.com/die-Manufaktur/seo-copilot-api/internal/urlcheck"
)

// Analyzer runs the full analysis pipeline for one page at a time. It is
// safe for concurrent use.
type Analyzer struct {
	fetcher     Fetcher
	timeout     time.Duration
	concurrency int
}

// New creates an Analyzer with the provided options applied over defaults
func New(opts ...Option) *Analyzer {
	options := DefaultOptions()

	for _, opt := range opts {
		opt(options)
	}

	fetcher := options.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(options.FetchTimeout, options.MaxResponseBytes, options.UserAgent)
	}

	concurrency := options.CheckConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Analyzer{
		fetcher:     fetcher,
		timeout:     options.FetchTimeout,
		concurrency: concurrency,
	}
}

// Analyze validates and fetches the target page, then evaluates every
// check and assembles the report. Validation failures return before any
// network access.
func (a *Analyzer) Analyze(ctx context.Context, rawURL, keyphrase string) (*types.AnalysisReport, error) {
	normalized, err := urlcheck.Validate(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	keyphrase = sanitize.Keywords(keyphrase)

	doc, err := a.fetchDocument(ctx, normalized, parsed)
	if err != nil {
		return nil, err
	}

	checks := a.runChecks(ctx, CheckInput{
		Doc:       doc,
		URL:       parsed,
		Keyphrase: keyphrase,
	})

	passed := lo.CountBy(checks, func(c types.CheckResult) bool { return c.Passed })

	report := &types.AnalysisReport{
		ReportID:     uuid.NewString(),
		URL:          normalized,
		Keyphrase:    keyphrase,
		Checks:       checks,
		PassedChecks: passed,
		FailedChecks: len(checks) - passed,
		Score:        Score(checks),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	log.Debug().
		Str("report_id", report.ReportID).
		Str("url", normalized).
		Int("score", report.Score).
		Int("passed", report.PassedChecks).
		Int("failed", report.FailedChecks).
		Msg("analysis complete")

	return report, nil
}

// fetchDocument retrieves and parses the target page under the fetch
// deadline
func (a *Analyzer) fetchDocument(ctx context.Context, targetURL string, base *url.URL) (*htmldoc.Document, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	body, statusCode, err := a.fetcher.Fetch(fetchCtx, targetURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrFetchTimeout, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	defer body.Close()

	if statusCode < 200 || statusCode > 299 {
		return nil, &UpstreamStatusError{StatusCode: statusCode}
	}

	rawHTML, err := io.ReadAll(body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrFetchTimeout, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	doc, err := htmldoc.Extract(string(rawHTML), base)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// runChecks evaluates the check battery with bounded concurrency.
// Results are written by registry index so output order is stable no
// matter how the checks are scheduled. Cancellation stops scheduling;
// unevaluated slots stay zero-valued since the caller has gone away.
func (a *Analyzer) runChecks(ctx context.Context, in CheckInput) []types.CheckResult {
	results := make([]types.CheckResult, len(checkRegistry))
	sem := make(chan struct{}, a.concurrency)

	var wg sync.WaitGroup

	for i, check := range checkRegistry {
		if ctx.Err() != nil {
			break
		}

		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
			wg.Add(1)

			go func(i int, check checkFunc) {
				defer wg.Done()
				defer func() { <-sem }()

				results[i] = check(in)
			}(i, check)
		}
	}

	wg.Wait()

	return results
}
