package events

import (
	"context"

	"github.com/iwtcode/lineDispatch/internal/interfaces"
)

// NoopPublisher используется, когда брокер не настроен
type NoopPublisher struct{}

func NewNoopPublisher() interfaces.EventPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(context.Context, []byte, []byte) error { return nil }

func (NoopPublisher) Close() error { return nil }
