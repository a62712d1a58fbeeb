package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/iwtcode/lineDispatch/internal/domain/entities"
	"github.com/iwtcode/lineDispatch/internal/domain/models"
	"github.com/iwtcode/lineDispatch/internal/services/plc"
	appErrors "github.com/iwtcode/lineDispatch/pkg/errors"
)

const (
	DefaultDispatchesLimit = 50
	MaxDispatchesLimit     = 500
)

// StartOrder проверяет запрос, записывает заказ в теги линии и при успехе
// запускает фоновый импульс подтверждения. Каждая попытка попадает в журнал.
func (u *Usecase) StartOrder(ctx context.Context, orderNumber string, req models.StartOrderRequest) (*models.StartOrderResponse, error) {
	dispatch, missing := u.buildDispatch(orderNumber, req)
	if len(missing) > 0 {
		err := appErrors.Validation("missing required fields: "+strings.Join(missing, ", "), nil)
		u.record(ctx, dispatch, nil, entities.OutcomeRejected, err)
		return nil, err
	}

	derived, err := u.controller.WriteOrderDetails(ctx, dispatch.Line, dispatch.OrderNumber, dispatch.ProductCode, dispatch.Quantity)
	if err != nil {
		if plc.IsInputError(err) {
			appErr := appErrors.Validation(fmt.Sprintf("Cannot start order %s on line %s: %v", dispatch.OrderNumber, dispatch.Line, err), err)
			u.record(ctx, dispatch, nil, entities.OutcomeRejected, err)
			return nil, appErr
		}
		u.record(ctx, dispatch, nil, entities.OutcomeFailed, err)
		return nil, appErrors.Internal(fmt.Sprintf("Failed to start order %s on line %s", dispatch.OrderNumber, dispatch.Line), err)
	}

	u.record(ctx, dispatch, &derived, entities.OutcomeStarted, nil)
	u.logger.Info("Order started", "ilot", dispatch.Line, "order", dispatch.OrderNumber, "date", dispatch.Date)

	line := dispatch.Line
	u.goBackground(func(ctx context.Context) {
		if err := u.controller.ConfirmOrder(ctx, line); err != nil {
			u.logger.Warn("Confirmation pulse failed", "ilot", line, "order", dispatch.OrderNumber, "error", err)
			return
		}
		u.logger.Debug("Confirmation pulse sent", "ilot", line, "order", dispatch.OrderNumber)
	})

	return &models.StartOrderResponse{Status: entities.OutcomeStarted, Ilot: dispatch.Line, Order: dispatch.OrderNumber}, nil
}

// buildDispatch возвращает запрос отправки и список отсутствующих полей
func (u *Usecase) buildDispatch(orderNumber string, req models.StartOrderRequest) (models.DispatchRequest, []string) {
	dispatch := models.DispatchRequest{OrderNumber: strings.TrimSpace(orderNumber)}

	var missing []string
	if req.Ilot == nil || strings.TrimSpace(*req.Ilot) == "" {
		missing = append(missing, "ilot")
	} else {
		dispatch.Line = strings.ToUpper(strings.TrimSpace(*req.Ilot))
	}
	if req.Code == nil || strings.TrimSpace(*req.Code) == "" {
		missing = append(missing, "code")
	} else {
		dispatch.ProductCode = strings.TrimSpace(*req.Code)
	}
	if req.Quantity == nil {
		missing = append(missing, "quantity")
	} else {
		dispatch.Quantity = *req.Quantity
	}

	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		dispatch.Date = strings.TrimSpace(*req.Date)
	} else {
		dispatch.Date = u.now().Format(models.OrderDateLayout)
	}
	return dispatch, missing
}

// record сохраняет попытку в журнал и публикует событие.
// Ошибки журнала и брокера только логируются.
func (u *Usecase) record(ctx context.Context, dispatch models.DispatchRequest, derived *models.DerivedOrderValues, outcome string, cause error) {
	rec := &entities.DispatchRecord{
		ID:          uuid.NewString(),
		Line:        dispatch.Line,
		OrderNumber: dispatch.OrderNumber,
		ProductCode: dispatch.ProductCode,
		Quantity:    dispatch.Quantity.String(),
		Outcome:     outcome,
		RequestedAt: dispatch.Date,
		CreatedAt:   u.now(),
	}
	if derived != nil {
		rec.OrderID = derived.OrderID
		rec.ProductCodeID = derived.ProductCodeID
	}
	if cause != nil {
		rec.Error = cause.Error()
	}

	if err := u.records.Create(rec); err != nil {
		u.logger.Error("Failed to save dispatch record", "ilot", rec.Line, "order", rec.OrderNumber, "error", err)
	}

	event := models.DispatchEvent{
		ID:          rec.ID,
		Ilot:        rec.Line,
		Order:       rec.OrderNumber,
		Code:        rec.ProductCode,
		Quantity:    rec.Quantity,
		Outcome:     outcome,
		Error:       rec.Error,
		Derived:     derived,
		RequestedAt: rec.RequestedAt,
		Timestamp:   rec.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		u.logger.Error("Failed to encode dispatch event", "id", rec.ID, "error", err)
		return
	}

	parent := context.WithoutCancel(ctx)
	u.goBackground(func(context.Context) {
		pubCtx, cancel := context.WithTimeout(parent, publishTimeout)
		defer cancel()
		if err := u.publisher.Publish(pubCtx, []byte(event.Ilot), payload); err != nil {
			u.logger.Warn("Failed to publish dispatch event", "id", event.ID, "ilot", event.Ilot, "error", err)
		}
	})
}

// SetUserRole записывает роль оператора в контроллер линии
func (u *Usecase) SetUserRole(ctx context.Context, line string, req models.RoleRequest) error {
	if req.Role == nil {
		return appErrors.Validation("missing required fields: role", nil)
	}
	role := *req.Role
	if role < 0 || role > int(models.RoleMaintenance) {
		return appErrors.Validation(fmt.Sprintf("%v: %d (expected 0, 1 or 2)", plc.ErrInvalidRole, role), plc.ErrInvalidRole)
	}

	line = strings.ToUpper(strings.TrimSpace(line))
	if err := u.controller.PushUserRole(ctx, line, models.UserRole(role)); err != nil {
		return lineError(err, line, fmt.Sprintf("Failed to push role to line %s", line))
	}
	u.logger.Info("User role pushed", "ilot", line, "role", role)
	return nil
}

// SetOrderReference записывает номер заказа строкой в тег order_ref
func (u *Usecase) SetOrderReference(ctx context.Context, line string, req models.ReferenceRequest) error {
	order := strings.TrimSpace(req.Order)
	if order == "" {
		return appErrors.Validation("missing required fields: order", nil)
	}

	line = strings.ToUpper(strings.TrimSpace(line))
	if err := u.controller.WriteOrderStart(ctx, line, order); err != nil {
		return lineError(err, line, fmt.Sprintf("Failed to write order %s on line %s", order, line))
	}
	u.logger.Info("Order reference written", "ilot", line, "order", order)
	return nil
}

// ListDispatches возвращает журнал отправок, новые первыми
func (u *Usecase) ListDispatches(_ context.Context, limit int) ([]models.DispatchRecordView, error) {
	if limit <= 0 {
		limit = DefaultDispatchesLimit
	}
	if limit > MaxDispatchesLimit {
		limit = MaxDispatchesLimit
	}

	records, err := u.records.ListRecent(limit)
	if err != nil {
		return nil, appErrors.Internal("Failed to read dispatch journal", err)
	}

	views := make([]models.DispatchRecordView, 0, len(records))
	for _, r := range records {
		views = append(views, models.DispatchRecordView{
			ID:            r.ID,
			Ilot:          r.Line,
			Order:         r.OrderNumber,
			Code:          r.ProductCode,
			Quantity:      r.Quantity,
			OrderID:       r.OrderID,
			ProductCodeID: r.ProductCodeID,
			Outcome:       r.Outcome,
			Error:         r.Error,
			RequestedAt:   r.RequestedAt,
			CreatedAt:     r.CreatedAt,
		})
	}
	return views, nil
}
