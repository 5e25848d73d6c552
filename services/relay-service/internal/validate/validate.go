// Package validate checks form submissions before they are relayed.
package validate

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/stoik/leadrelay/internal/models"
)

const (
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Invalid email format"
	MsgWebhookRequired   = "n8n webhook URL is required"
	MsgWebhookInvalid    = "Invalid n8n webhook URL"
	MsgWebhookNotAllowed = "n8n webhook URL is not allowed"
	MsgNameRequired      = "Name is required"
	MsgMessageRequired   = "Message is required"
)

// \s in RE2 is ASCII only; \v, Unicode separators and BOM are excluded explicitly
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// ValidationError names the offending field and carries the message shown to the caller
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IsValidationError reports whether err wraps a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Email checks presence and shape of an address. The input is trimmed first.
func Email(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &ValidationError{Field: "email", Message: MsgEmailRequired}
	}
	if !emailPattern.MatchString(email) {
		return "", &ValidationError{Field: "email", Message: MsgEmailInvalid}
	}
	return email, nil
}

// Newsletter validates a newsletter / lead magnet request and returns a trimmed copy.
// Fields are checked in order: email presence, email format, webhook URL.
func Newsletter(req models.NewsletterRequest) (models.NewsletterRequest, error) {
	email, err := Email(req.Email)
	if err != nil {
		return req, err
	}
	req.Email = email

	req.N8nWebhookURL = strings.TrimSpace(req.N8nWebhookURL)
	if req.N8nWebhookURL == "" {
		return req, &ValidationError{Field: "n8nWebhookUrl", Message: MsgWebhookRequired}
	}
	if !isHTTPURL(req.N8nWebhookURL) {
		return req, &ValidationError{Field: "n8nWebhookUrl", Message: MsgWebhookInvalid}
	}
	return req, nil
}

// Contact validates a contact form request and returns a trimmed copy
func Contact(req models.ContactRequest) (models.ContactRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return req, &ValidationError{Field: "name", Message: MsgNameRequired}
	}
	email, err := Email(req.Email)
	if err != nil {
		return req, err
	}
	req.Email = email
	req.Company = strings.TrimSpace(req.Company)
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return req, &ValidationError{Field: "message", Message: MsgMessageRequired}
	}
	return req, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
