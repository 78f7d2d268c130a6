package mailer

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendGridClient is the subset of *sendgrid.Client used here.
type sendGridClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	client sendGridClient
	from   mail.Address
}

// NewSendGridSender returns a sender authenticated with apiKey.
func NewSendGridSender(apiKey string, from mail.Address) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey), from: from}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	m := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.from.Name, s.from.Address),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.Text,
		msg.HTML,
	)
	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("mailer.SendGridSender.Send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mailer.SendGridSender.Send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
