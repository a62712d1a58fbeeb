package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/iwtcode/lineDispatch/internal/domain/models"
	appErrors "github.com/iwtcode/lineDispatch/pkg/errors"
)

func (u *Usecase) ListOrders(ctx context.Context) ([]models.ManufacturingOrder, error) {
	orders, err := u.backend.ListOrders(ctx)
	if err != nil {
		return nil, appErrors.Internal(fmt.Sprintf("Failed to list orders: %v", err), err)
	}
	return orders, nil
}

// ListComponents возвращает строки компонентов в формате "<продукт> x<количество>"
func (u *Usecase) ListComponents(ctx context.Context, orderNumber string) ([]string, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, appErrors.Validation("missing required parameter: of_name", nil)
	}

	lines, err := u.backend.ListComponents(ctx, orderNumber)
	if err != nil {
		return nil, appErrors.Internal(fmt.Sprintf("Failed to list components of %s: %v", orderNumber, err), err)
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.String())
	}
	return out, nil
}
