package events

import (
	"fmt"

	"github.com/iwtcode/lineDispatch/internal/config"
	"github.com/iwtcode/lineDispatch/internal/interfaces"
)

// NewPublisher выбирает реализацию по EVENTS_BROKER
func NewPublisher(cfg *config.AppConfig) (interfaces.EventPublisher, error) {
	switch cfg.Events.Broker {
	case config.BrokerKafka:
		return NewKafkaProducer(cfg.Events)
	case config.BrokerAMQP:
		return NewAMQPPublisher(cfg.Events)
	case config.BrokerNone, "":
		return NewNoopPublisher(), nil
	default:
		return nil, fmt.Errorf("неизвестный брокер событий: %q", cfg.Events.Broker)
	}
}
