package mailer

import (
	"context"
	"io"
	"log"

	"github.com/resend/resend-go/v2"
)

// Resend sends mail through the Resend API.
type Resend struct {
	client *resend.Client
	from   string
	logger *log.Logger
}

// NewResend builds a Mailer. The from address must be a verified sender.
func NewResend(apiKey, from string, logger *log.Logger) *Resend {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Resend{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

func (m *Resend) SendOrderReceived(ctx context.Context, to string, data OrderReceived) error {
	html, err := RenderOrderReceived(data)
	if err != nil {
		return err
	}
	_, err = m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Thanks for your order!",
		Html:    html,
	})
	if err != nil {
		m.logger.Printf("mailer: send order %s to %s failed: %v", data.OrderID, to, err)
	}
	return err
}
