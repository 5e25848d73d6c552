package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoik/leadrelay/internal/models"
)

func TestEmail(t *testing.T) {
	valid := []string{"a@b.co", "john.doe+tag@example.com", "  padded@example.org  "}
	for _, in := range valid {
		_, err := Email(in)
		assert.NoError(t, err, "Email(%q)", in)
	}

	invalid := map[string]string{
		"":                       MsgEmailRequired,
		"   ":                    MsgEmailRequired,
		"plainaddress":           MsgEmailInvalid,
		"no-tld@example":         MsgEmailInvalid,
		"two@@example.com":       MsgEmailInvalid,
		"white space@ex.com":     MsgEmailInvalid,
		"@example.com":           MsgEmailInvalid,
		"le\vad@example.com":     MsgEmailInvalid,
		"le\u00a0ad@example.com": MsgEmailInvalid,
		"lead@exa\u2003mple.com": MsgEmailInvalid,
		"lead@example.\u2028com": MsgEmailInvalid,
		"le\ufeffad@example.com": MsgEmailInvalid,
		"lead@exam\u1680ple.com": MsgEmailInvalid,
	}
	for in, msg := range invalid {
		_, err := Email(in)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "Email(%q)", in)
		assert.Equal(t, "email", ve.Field)
		assert.Equal(t, msg, ve.Message, "Email(%q)", in)
	}
}

func TestEmailTrims(t *testing.T) {
	email, err := Email("  user@example.com\n")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestNewsletter(t *testing.T) {
	tests := []struct {
		name  string
		req   models.NewsletterRequest
		field string
		msg   string
	}{
		{"missing everything", models.NewsletterRequest{}, "email", MsgEmailRequired},
		{"bad email, missing url", models.NewsletterRequest{Email: "nope"}, "email", MsgEmailInvalid},
		{"missing url", models.NewsletterRequest{Email: "a@b.co"}, "n8nWebhookUrl", MsgWebhookRequired},
		{"relative url", models.NewsletterRequest{Email: "a@b.co", N8nWebhookURL: "/webhook/x"}, "n8nWebhookUrl", MsgWebhookInvalid},
		{"ftp url", models.NewsletterRequest{Email: "a@b.co", N8nWebhookURL: "ftp://n8n.example.com/x"}, "n8nWebhookUrl", MsgWebhookInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Newsletter(tt.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.msg, ve.Message)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestNewsletterValid(t *testing.T) {
	req, err := Newsletter(models.NewsletterRequest{
		Email:         " lead@example.com ",
		N8nWebhookURL: " https://n8n.example.com/webhook/newsletter ",
		LeadMagnet:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "lead@example.com", req.Email)
	assert.Equal(t, "https://n8n.example.com/webhook/newsletter", req.N8nWebhookURL)
	assert.True(t, req.LeadMagnet)
}

func TestContact(t *testing.T) {
	_, err := Contact(models.ContactRequest{Email: "a@b.co", Message: "hi"})
	assert.EqualError(t, err, "name: "+MsgNameRequired)

	_, err = Contact(models.ContactRequest{Name: "Ada", Message: "hi"})
	assert.EqualError(t, err, "email: "+MsgEmailRequired)

	_, err = Contact(models.ContactRequest{Name: "Ada", Email: "a@b", Message: "hi"})
	assert.EqualError(t, err, "email: "+MsgEmailInvalid)

	_, err = Contact(models.ContactRequest{Name: "Ada", Email: "a@b.co", Message: "  "})
	assert.EqualError(t, err, "message: "+MsgMessageRequired)

	req, err := Contact(models.ContactRequest{Name: " Ada ", Email: "a@b.co", Company: " ACME ", Message: " Hello "})
	require.NoError(t, err)
	assert.Equal(t, models.ContactRequest{Name: "Ada", Email: "a@b.co", Company: "ACME", Message: "Hello"}, req)
}

func TestIsValidationErrorFalseForOtherErrors(t *testing.T) {
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(assert.AnError))
}
