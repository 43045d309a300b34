package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}

	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})

	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "invoicely"}

	id := uuid.New()
	ts := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), Event{
		Table:     "invoices",
		Action:    ActionUpdated,
		ID:        id,
		Record:    map[string]string{"status": "paid"},
		Timestamp: ts,
	})
	require.NoError(t, err)
	require.Len(t, ch.sent, 1)

	got := ch.sent[0]
	assert.Equal(t, "invoicely", got.exchange)
	assert.Equal(t, "invoices.updated", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, id.String(), got.msg.MessageId)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, "invoices", body["table"])
	assert.Equal(t, "updated", body["action"])
	assert.Equal(t, map[string]any{"status": "paid"}, body["record"])
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	p := &AMQPPublisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}

	err := p.Publish(context.Background(), Event{Table: "clients", Action: ActionDeleted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clients.deleted")
}

type recorder struct {
	events []Event
	err    error
}

func (r *recorder) Publish(_ context.Context, ev Event) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestNotify(t *testing.T) {
	t.Run("StampsTimestamp", func(t *testing.T) {
		r := &recorder{}
		Notify(context.Background(), r, Event{Table: "clients", Action: ActionCreated})

		require.Len(t, r.events, 1)
		assert.False(t, r.events[0].Timestamp.IsZero())
	})

	t.Run("SwallowsPublishError", func(t *testing.T) {
		r := &recorder{err: errors.New("broker down")}

		assert.NotPanics(t, func() {
			Notify(context.Background(), r, Event{Table: "clients", Action: ActionCreated})
		})
		assert.Len(t, r.events, 1)
	})

	t.Run("Nop", func(t *testing.T) {
		assert.NoError(t, Nop{}.Publish(context.Background(), Event{}))
	})
}
