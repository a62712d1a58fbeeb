package events

import (
	"context"

	"github.com/iwtcode/lineDispatch/internal/config"
	"github.com/iwtcode/lineDispatch/internal/interfaces"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer создает новый экземпляр продюсера Kafka
func NewKafkaProducer(cfg config.EventsConfig) (interfaces.EventPublisher, error) {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{writer: writer}, nil
}

// Publish отправляет сообщение в Kafka; ключ (ilot) задает партицию
func (p *KafkaProducer) Publish(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   key,
			Value: value,
		},
	)
}

// Close закрывает соединение с Kafka
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
