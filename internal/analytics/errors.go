package analytics

import "errors"

var (
	// ErrMissingWebhookURL is returned when the analytics webhook URL is not configured
	ErrMissingWebhookURL = errors.New("analytics webhook URL is required")
	// ErrDeliveryFailed is returned when an analytics webhook request fails
	ErrDeliveryFailed = errors.New("analytics delivery failed")
	// ErrUnexpectedStatus is returned when the webhook returns an unexpected HTTP status
	ErrUnexpectedStatus = errors.New("unexpected analytics webhook response status")
)
