// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders
// email bodies from HTML templates embedded in the binary.
package email

import (
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/scripts/internal/config"
)

// DefaultSender is the From address used for every email.
const DefaultSender = "Scripts <onboarding@resend.dev>"

// sender is the part of the Resend emails service the client uses.
type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	emails sender
	logger *zerolog.Logger
}

// NewClient creates an email Client with the Resend API key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		emails: resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		logger: logger,
	}
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	body, err := Render(templateName, data)
	if err != nil {
		return err
	}

	sent, err := c.emails.Send(&resend.SendEmailRequest{
		From:    DefaultSender,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("email_id", sent.Id).
		Str("to", to).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}
