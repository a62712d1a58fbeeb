package interfaces

import (
	"context"
	"time"

	"github.com/iwtcode/lineDispatch/internal/domain/models"
	"github.com/shopspring/decimal"
)

// OrderBackend определяет контракт бэкенда производственных заказов.
type OrderBackend interface {
	ListOrders(ctx context.Context) ([]models.ManufacturingOrder, error)
	ListComponents(ctx context.Context, orderNumber string) ([]models.ComponentLine, error)
}

// LineController определяет контракт для работы с тегами контроллеров линий.
type LineController interface {
	ProbeReachable(ctx context.Context, line string) error
	WriteOrderStart(ctx context.Context, line, orderNumber string) error
	WriteOrderDetails(ctx context.Context, line, orderNumber, productCode string, quantity decimal.Decimal) (models.DerivedOrderValues, error)
	PushUserRole(ctx context.Context, line string, role models.UserRole) error
	PulseBit(ctx context.Context, line, tag string, duration time.Duration) error
	ConfirmOrder(ctx context.Context, line string) error
	GetStates(ctx context.Context) []models.LineState
	ReadRunState(ctx context.Context, line string) (models.LineRunState, error)
}
