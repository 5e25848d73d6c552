package models

import "encoding/json"

// ContactRequest is the body posted by the contact form
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

// ContactSubmission is the payload relayed to the contact webhook
type ContactSubmission struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// ContactResult is returned to the browser on success
type ContactResult struct {
	ContactSubmission
	Response json.RawMessage `json:"response,omitempty"`
}
