// Package types holds the shared result types produced by the analysis
// pipeline and returned over the HTTP boundary.
package types

// Priority classifies how much a check contributes to the overall score
type Priority string

const (
	// PriorityHigh marks structurally important signals (title, headings)
	PriorityHigh Priority = "high"
	// PriorityMedium marks signals with moderate ranking impact
	PriorityMedium Priority = "medium"
	// PriorityLow marks cosmetic or secondary signals
	PriorityLow Priority = "low"
)

// CheckResult contains the outcome of a single SEO check
type CheckResult struct {
	// Title is the short display name of the check
	Title string `json:"title" example:"Keyphrase in Title" description:"Short display name of the check"`
	// Description explains what the check evaluates
	Description string `json:"description" description:"What the check evaluates"`
	// Result is the human-readable outcome text
	Result string `json:"result" example:"Your focus keyphrase appears in the page title" description:"Human-readable outcome"`
	// Passed reports whether the page satisfied the check
	Passed bool `json:"passed" example:"true" description:"Whether the page satisfied the check"`
	// Priority weights the check in the overall score
	Priority Priority `json:"priority" example:"high" description:"Score weight bucket (high/medium/low)"`
	// LearnMoreLink points at documentation for the underlying signal
	LearnMoreLink string `json:"learnMoreLink,omitempty" description:"Documentation link for the signal"`
}

// AnalysisReport contains the full result of analyzing one page
type AnalysisReport struct {
	// ReportID uniquely identifies this analysis run
	ReportID string `json:"reportId" description:"Unique identifier for this analysis run"`
	// URL is the normalized HTTPS URL that was analyzed
	URL string `json:"url" example:"https://example.com/page" description:"Normalized URL that was analyzed"`
	// Keyphrase is the sanitized focus keyphrase used by the checks
	Keyphrase string `json:"keyphrase" description:"Sanitized focus keyphrase"`
	// Checks holds every check outcome in fixed battery order
	Checks []CheckResult `json:"checks" description:"Check outcomes in fixed battery order"`
	// PassedChecks counts the checks that passed
	PassedChecks int `json:"passedChecks" description:"Number of passed checks"`
	// FailedChecks counts the checks that failed
	FailedChecks int `json:"failedChecks" description:"Number of failed checks"`
	// Score is the weighted overall score in [0,100]
	Score int `json:"score" example:"67" description:"Weighted overall score 0-100"`
	// Timestamp is when the analysis completed, RFC3339 UTC
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z" description:"Completion time, RFC3339 UTC"`
}
