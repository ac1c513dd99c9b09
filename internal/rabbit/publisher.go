package rabbit

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const ResultsExchange = "arrival_location_results"

// channel is the part of *amqp091.Channel the publisher needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// ResultPublisher fans published load results out to every queue bound to
// the results exchange.
type ResultPublisher struct {
	ch       channel
	exchange string
	logger   *zap.Logger
}

// SetupPublisher declares the fanout exchange and returns a publisher on it.
func SetupPublisher(ch channel, logger *zap.Logger) (*ResultPublisher, error) {
	err := ch.ExchangeDeclare(
		ResultsExchange,
		amqp091.ExchangeFanout,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", ResultsExchange, err)
	}

	logger.Info("result exchange declared", zap.String("exchange", ResultsExchange))

	return &ResultPublisher{ch: ch, exchange: ResultsExchange, logger: logger}, nil
}

func (p *ResultPublisher) PublishResult(ctx context.Context, callID, payload string) error {
	err := p.ch.PublishWithContext(ctx,
		p.exchange,
		"", // fanout ignores the routing key
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    callID,
			Timestamp:    time.Now().UTC(),
			Body:         []byte(payload),
		},
	)
	if err != nil {
		return fmt.Errorf("publish result %s: %w", callID, err)
	}

	p.logger.Debug("result published",
		zap.String("exchange", p.exchange),
		zap.String("call.id", callID),
		zap.Int("bytes", len(payload)))
	return nil
}
