package interfaces

import (
	"context"
)

// EventPublisher определяет контракт для отправки событий запуска во внешние системы
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
	Close() error
}
