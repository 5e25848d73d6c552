package models

import (
	"time"

	"github.com/google/uuid"
)

// CaptureRequest is the body posted by gated-content forms (templates, checklists)
type CaptureRequest struct {
	Email      string `json:"email"`
	TemplateID string `json:"templateId,omitempty"`
	Source     string `json:"source,omitempty"`
}

// EmailCapture database model
type EmailCapture struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	TemplateID *string   `json:"templateId,omitempty" db:"template_id"`
	Source     string    `json:"source" db:"source"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
