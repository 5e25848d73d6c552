package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/stoik/leadrelay/internal/models"
	"github.com/stoik/leadrelay/services/relay-service/internal/relay"
	"github.com/stoik/leadrelay/services/relay-service/internal/validate"
)

func (s *Server) handleNewsletter(c *gin.Context) {
	var req models.NewsletterRequest
	if !bindJSON(c, &req) {
		return
	}

	req, err := validate.Newsletter(req)
	if err != nil {
		writeError(c, err, msgNewsletterFailed)
		return
	}

	source, message := s.cfg.Source, msgNewsletterOK
	if req.LeadMagnet {
		source, message = models.SourceLeadMagnet, msgLeadMagnetOK
	}
	submission := models.EmailSubmission{
		Email:     req.Email,
		Timestamp: models.FormatTimestamp(s.now()),
		Source:    source,
	}

	res, err := s.relay.Forward(c.Request.Context(), req.N8nWebhookURL, submission)
	if err != nil {
		if errors.Is(err, relay.ErrDestinationNotAllowed) {
			err = &validate.ValidationError{Field: "n8nWebhookUrl", Message: validate.MsgWebhookNotAllowed}
		} else {
			s.logger.Warn("newsletter relay failed", "email", submission.Email, "error", err)
		}
		writeError(c, err, msgNewsletterFailed)
		return
	}

	s.logger.Info("newsletter submission relayed", "email", submission.Email, "source", source, "upstream_status", res.StatusCode)
	writeSuccess(c, message, models.SubmissionResult{EmailSubmission: submission, Response: res.Body})
}

func (s *Server) handleContact(c *gin.Context) {
	var req models.ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	req, err := validate.Contact(req)
	if err != nil {
		writeError(c, err, msgContactFailed)
		return
	}

	if s.cfg.ContactURL == "" {
		writeError(c, errors.New("relay.contact_url is empty"), msgContactNotReady)
		return
	}

	submission := models.ContactSubmission{
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Message:   req.Message,
		Timestamp: models.FormatTimestamp(s.now()),
		Source:    models.SourceContact,
	}

	res, err := s.relay.Forward(c.Request.Context(), s.cfg.ContactURL, submission)
	if err != nil {
		s.logger.Warn("contact relay failed", "email", submission.Email, "error", err)
		writeError(c, err, msgContactFailed)
		return
	}

	s.logger.Info("contact submission relayed", "email", submission.Email, "upstream_status", res.StatusCode)
	writeSuccess(c, msgContactOK, models.ContactResult{ContactSubmission: submission, Response: res.Body})
}

func (s *Server) handleEmailCapture(c *gin.Context) {
	var req models.CaptureRequest
	if !bindJSON(c, &req) {
		return
	}

	email, err := validate.Email(req.Email)
	if err != nil {
		writeError(c, err, msgCaptureFailed)
		return
	}

	source := req.Source
	if source == "" {
		source = models.SourceCapture
	}

	capture, err := s.captures.Save(c.Request.Context(), email, req.TemplateID, source)
	if err != nil {
		s.logger.Error("email capture failed", "email", email, "error", err)
		writeError(c, err, msgCaptureFailed)
		return
	}

	s.logger.Info("email captured", "email", email, "template_id", req.TemplateID, "id", capture.ID.String())
	writeSuccess(c, msgCaptureOK, capture)
}
