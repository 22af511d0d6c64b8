package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
)

type fakeChannel struct {
	declared   []string
	durable    bool
	published  []amqp.Publishing
	keys       []string
	declareErr error
	publishErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	if f.declareErr != nil {
		return amqp.Queue{}, f.declareErr
	}
	f.declared = append(f.declared, name)
	f.durable = durable
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSubmission() models.Submission {
	return models.Submission{
		ID:       "sub-1",
		Age:      30,
		Weight:   70,
		Height:   175,
		Activity: "sedentary",
		Meals:    []models.MealEntry{{Food: "Apple", Portion: 2}},
		Nutrients: models.NutrientTotals{
			Calories: 104,
			VitaminC: 9.2,
		},
		Date: time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC),
	}
}

func TestNewPublisher_DeclaresDurableQueue(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "", testLogger())

	require.NoError(t, err)
	assert.Equal(t, DefaultQueue, p.queue)
	assert.Equal(t, []string{DefaultQueue}, ch.declared)
	assert.True(t, ch.durable)
}

func TestNewPublisher_DeclareError(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newPublisher(ch, "custom", testLogger())

	assert.ErrorContains(t, err, "failed to declare queue custom")
	assert.True(t, ch.closed)
}

func TestPublishSubmission(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "custom", testLogger())
	require.NoError(t, err)

	sub := testSubmission()
	require.NoError(t, p.PublishSubmission(context.Background(), sub))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "custom", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "sub-1", msg.MessageId)
	assert.Equal(t, sub.Date, msg.Timestamp)

	var decoded models.Submission
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, sub, decoded)
}

func TestPublishSubmission_Errors(t *testing.T) {
	t.Run("broker error", func(t *testing.T) {
		ch := &fakeChannel{publishErr: errors.New("channel closed")}
		p, err := newPublisher(ch, "q", testLogger())
		require.NoError(t, err)

		err = p.PublishSubmission(context.Background(), testSubmission())
		assert.ErrorContains(t, err, "failed to publish submission sub-1")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ch := &fakeChannel{}
		p, err := newPublisher(ch, "q", testLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = p.PublishSubmission(ctx, testSubmission())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, ch.published)
	})
}
