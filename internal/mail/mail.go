// Package mail delivers transactional email through a configurable
// provider. The Sender interface hides the transport; SMTP and SendGrid
// implementations are selected by configuration at startup and injected
// into whoever needs to send.
package mail

import (
	"context"
	"fmt"

	"github.com/mhakbari/orderstack/internal/config"
)

// Message is one outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
}

// Sender delivers messages through a single provider.
type Sender interface {
	// Send delivers the message, blocking until the provider accepts it.
	Send(ctx context.Context, msg Message) error
	// Ping verifies the provider is reachable with the configured
	// credentials. Used by the mail admin endpoints.
	Ping(ctx context.Context) error
	// Name identifies the provider for logs and responses.
	Name() string
}

// Providers lists the supported provider identifiers.
func Providers() []string { return []string{"smtp", "sendgrid"} }

// NewSender builds the Sender selected by cfg.Provider.
func NewSender(cfg config.MailConfig) (Sender, error) {
	switch cfg.Provider {
	case "smtp", "":
		return newSMTPSender(cfg)
	case "sendgrid":
		return newSendGridSender(cfg)
	}
	return nil, fmt.Errorf("unsupported mail provider %q", cfg.Provider)
}
