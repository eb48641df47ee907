package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/mhakbari/orderstack/internal/logger"
	"github.com/mhakbari/orderstack/internal/mail"
)

// StartEmailConsumer connects to RabbitMQ, declares the durable
// email.outbound queue and delivers queued messages through sender.
// It runs a reconnect loop with exponential backoff and keeps running
// through broker restarts; delivery failures are logged and the message
// is rejected without requeue to avoid tight poison loops.
func StartEmailConsumer(sender mail.Sender) {
	url := brokerURL()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Log.Warn("email-consumer: dial failed",
				zap.Error(err), zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, sender); err != nil {
			logger.Log.Warn("email-consumer: consume loop ended", zap.Error(err))
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, sender mail.Sender) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		logger.Log.Warn("email-consumer: set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(emailQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(emailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleDelivery(d.Body, sender); err != nil {
			logger.Log.Error("email-consumer: delivery failed", zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleDelivery(body []byte, sender mail.Sender) error {
	var ev EmailEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sender.Send(ctx, ev.Message); err != nil {
		return fmt.Errorf("send %s email to %s: %w", ev.Kind, ev.Message.To, err)
	}
	logger.Log.Info("email delivered",
		zap.String("kind", ev.Kind), zap.String("to", ev.Message.To))
	return nil
}
