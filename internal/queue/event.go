// Package queue moves outbound email through RabbitMQ. Non-critical
// mail (welcome emails) is published here instead of being sent inline,
// so a slow or broken mail provider can never fail registration.
package queue

import "github.com/mhakbari/orderstack/internal/mail"

const emailQueueName = "email.outbound"

// EmailEvent is published for every queued email. The body is fully
// rendered at publish time so the consumer needs no template or user
// lookup to deliver it.
type EmailEvent struct {
	Message  mail.Message `json:"message"`
	Kind     string       `json:"kind"` // e.g. "welcome"
	QueuedAt string       `json:"queued_at"`
}
