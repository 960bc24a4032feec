package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// ProviderError is a rejection reported by the email provider.
type ProviderError struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return "email provider: " + e.Message
	}
	return fmt.Sprintf("email provider: %s (%d %s)", e.Message, e.StatusCode, e.Name)
}

// resend reports API rejections as plain errors carrying this prefix;
// transport failures come back unprefixed.
const resendErrorPrefix = "[ERROR]: "

// EmailClient submits messages through the Resend API.
type EmailClient struct {
	sdk *resend.Client
}

func NewEmailClient(apiKey string) *EmailClient {
	return &EmailClient{
		sdk: resend.NewCustomClient(&http.Client{Timeout: 15 * time.Second}, apiKey),
	}
}

// Send returns the provider's message id.
func (c *EmailClient) Send(ctx context.Context, e Email) (string, error) {
	sent, err := c.sdk.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    e.From,
		To:      e.To,
		Subject: e.Subject,
		Html:    e.HTML,
		ReplyTo: e.ReplyTo,
	})
	if err != nil {
		if msg, ok := strings.CutPrefix(err.Error(), resendErrorPrefix); ok {
			return "", &ProviderError{Message: msg}
		}
		return "", fmt.Errorf("failed to reach email provider: %w", err)
	}
	return sent.Id, nil
}
