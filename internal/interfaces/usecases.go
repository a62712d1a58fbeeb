package interfaces

import (
	"context"

	"github.com/iwtcode/lineDispatch/internal/domain/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	ListOrders(ctx context.Context) ([]models.ManufacturingOrder, error)
	ListComponents(ctx context.Context, orderNumber string) ([]string, error)
	StartOrder(ctx context.Context, orderNumber string, req models.StartOrderRequest) (*models.StartOrderResponse, error)
	GetStates(ctx context.Context) []models.LineState
	GetRunState(ctx context.Context, line string) (models.LineRunState, error)
	SetUserRole(ctx context.Context, line string, req models.RoleRequest) error
	SetOrderReference(ctx context.Context, line string, req models.ReferenceRequest) error
	ListDispatches(ctx context.Context, limit int) ([]models.DispatchRecordView, error)
	Shutdown(ctx context.Context) error
}
