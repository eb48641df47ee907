package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhakbari/orderstack/internal/mail"
)

type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}
func (f *fakeSender) Ping(context.Context) error { return nil }
func (f *fakeSender) Name() string               { return "fake" }

func TestHandleDeliverySendsMail(t *testing.T) {
	ev := EmailEvent{
		Kind:    "welcome",
		Message: mail.Message{To: "a@b.com", Subject: "Welcome!", HTML: "<p>hi</p>"},
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	s := &fakeSender{}
	require.NoError(t, handleDelivery(body, s))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "a@b.com", s.sent[0].To)
	assert.Equal(t, "Welcome!", s.sent[0].Subject)
}

func TestHandleDeliveryRejectsMalformedPayload(t *testing.T) {
	s := &fakeSender{}
	assert.Error(t, handleDelivery([]byte("{not json"), s))
	assert.Empty(t, s.sent)
}

func TestHandleDeliveryPropagatesSendFailure(t *testing.T) {
	ev := EmailEvent{Message: mail.Message{To: "a@b.com"}}
	body, _ := json.Marshal(ev)

	s := &fakeSender{err: errors.New("smtp down")}
	assert.Error(t, handleDelivery(body, s))
}
