package models

import (
	"encoding/json"
	"time"
)

// Source values stamped on outbound payloads so the webhook target can route them
const (
	SourceNewsletter = "website-newsletter"
	SourceLeadMagnet = "website-lead-magnet"
	SourceContact    = "website-contact"
	SourceCapture    = "website-email-capture"
)

// TimestampLayout matches the ISO-8601 form browsers emit (millisecond precision, UTC "Z")
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout after converting it to UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewsletterRequest is the body posted by the newsletter and lead magnet forms
type NewsletterRequest struct {
	Email         string `json:"email"`
	N8nWebhookURL string `json:"n8nWebhookUrl"`
	LeadMagnet    bool   `json:"leadMagnet,omitempty"`
}

// EmailSubmission is the payload relayed to the webhook target. It lives for a single request.
type EmailSubmission struct {
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// SubmissionResult is returned to the browser on success
type SubmissionResult struct {
	EmailSubmission
	Response json.RawMessage `json:"response,omitempty"` // upstream body, when it parsed as JSON
}
