package events

import (
	"context"
	"fmt"

	"github.com/iwtcode/lineDispatch/internal/config"
	"github.com/iwtcode/lineDispatch/internal/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher публикует события в topic-exchange RabbitMQ.
// Ключ сообщения используется как routing key.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(cfg config.EventsConfig) (interfaces.EventPublisher, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("не удалось открыть канал RabbitMQ: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.AMQPExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("не удалось объявить exchange '%s': %w", cfg.AMQPExchange, err)
	}

	return &AMQPPublisher{conn: conn, channel: ch, exchange: cfg.AMQPExchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, key, value []byte) error {
	return p.channel.PublishWithContext(
		ctx,
		p.exchange,
		string(key),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         value,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	return p.conn.Close()
}
