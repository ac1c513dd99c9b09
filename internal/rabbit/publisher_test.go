package rabbit

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeChannel struct {
	declared   []string
	kind       string
	durable    bool
	declareErr error
	publishErr error
	exchange   string
	key        string
	published  []amqp091.Publishing
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	f.declared = append(f.declared, name)
	f.kind = kind
	f.durable = durable
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.published = append(f.published, msg)
	return f.publishErr
}

func TestSetupPublisherDeclaresFanout(t *testing.T) {
	ch := &fakeChannel{}
	_, err := SetupPublisher(ch, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{ResultsExchange}, ch.declared)
	assert.Equal(t, amqp091.ExchangeFanout, ch.kind)
	assert.True(t, ch.durable)
}

func TestSetupPublisherDeclareError(t *testing.T) {
	_, err := SetupPublisher(&fakeChannel{declareErr: errors.New("channel closed")}, zap.NewNop())
	require.Error(t, err)
}

func TestPublishResult(t *testing.T) {
	ch := &fakeChannel{}
	p, err := SetupPublisher(ch, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, p.PublishResult(context.Background(), "call-1", `{"Items":[]}`))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, ResultsExchange, ch.exchange)
	assert.Equal(t, "", ch.key)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "call-1", msg.MessageId)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, `{"Items":[]}`, string(msg.Body))

	ch.publishErr = errors.New("boom")
	require.Error(t, p.PublishResult(context.Background(), "call-2", "{}"))
}

func TestPublishResultLogsPublishedCall(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ch := &fakeChannel{}
	p, err := SetupPublisher(ch, zap.New(core))
	require.NoError(t, err)

	require.NoError(t, p.PublishResult(context.Background(), "call-7", `{"Items":[]}`))

	published := logs.FilterMessage("result published").All()
	require.Len(t, published, 1)
	fields := published[0].ContextMap()
	assert.Equal(t, ResultsExchange, fields["exchange"])
	assert.Equal(t, "call-7", fields["call.id"])
	assert.EqualValues(t, len(`{"Items":[]}`), fields["bytes"])

	ch.publishErr = errors.New("boom")
	require.Error(t, p.PublishResult(context.Background(), "call-8", "{}"))
	assert.Equal(t, 1, logs.FilterMessage("result published").Len())
}
