package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwtcode/lineDispatch/internal/domain/models"
	"github.com/iwtcode/lineDispatch/internal/services/plc"
	appErrors "github.com/iwtcode/lineDispatch/pkg/errors"
)

func (u *Usecase) GetStates(ctx context.Context) []models.LineState {
	return u.controller.GetStates(ctx)
}

func (u *Usecase) GetRunState(ctx context.Context, line string) (models.LineRunState, error) {
	state, err := u.controller.ReadRunState(ctx, line)
	if err != nil {
		return state, lineError(err, line, fmt.Sprintf("Failed to read state of line %s", line))
	}
	return state, nil
}

// lineError переводит ошибку операции над линией из пути запроса в AppError:
// неизвестная линия 404, ошибка разбора 400, сетевая ошибка 500.
func lineError(err error, line, failure string) error {
	switch {
	case errors.Is(err, plc.ErrUnknownLine):
		return appErrors.Missing(fmt.Sprintf("Unknown line %s", line), err)
	case plc.IsInputError(err):
		return appErrors.Validation(err.Error(), err)
	default:
		return appErrors.Internal(failure, err)
	}
}
