package odoo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iwtcode/lineDispatch/internal/config"
	"github.com/iwtcode/lineDispatch/internal/domain/models"
	"github.com/iwtcode/lineDispatch/internal/middleware/logging"
)

// ErrBackendUnavailable - ошибка аутентификации или сети при работе с Odoo
var ErrBackendUnavailable = errors.New("order backend unavailable")

// OrdersPageSize - сколько последних заказов возвращает ListOrders
const OrdersPageSize = 100

var orderFields = []string{"name", "product_id", "product_qty", "state", "bom_id"}

// Service - адаптер к бэкенду производственных заказов Odoo.
// uid кешируется на время жизни процесса и сбрасывается после любой ошибки вызова.
type Service struct {
	cfg    config.OdooConfig
	rpc    Caller
	logger *logging.Logger

	mu  sync.Mutex
	uid int64
}

func NewService(cfg config.OdooConfig, rpc Caller, logger *logging.Logger) *Service {
	return &Service{
		cfg:    cfg,
		rpc:    rpc,
		logger: logger.WithPrefix("ODOO"),
	}
}

func (s *Service) authenticate(ctx context.Context) (int64, error) {
	s.mu.Lock()
	uid := s.uid
	s.mu.Unlock()
	if uid != 0 {
		return uid, nil
	}

	var reply interface{}
	args := []interface{}{s.cfg.DB, s.cfg.User, s.cfg.Password, map[string]interface{}{}}
	if err := s.rpc.Call(ctx, serviceCommon, "authenticate", args, &reply); err != nil {
		s.logger.Error("Authentication call failed", "db", s.cfg.DB, "user", s.cfg.User, "error", err)
		return 0, fmt.Errorf("%w: authenticate: %v", ErrBackendUnavailable, err)
	}

	uid, ok := reply.(int64)
	if !ok || uid == 0 {
		s.logger.Error("Authentication rejected", "db", s.cfg.DB, "user", s.cfg.User)
		return 0, fmt.Errorf("%w: authentication rejected for user %q", ErrBackendUnavailable, s.cfg.User)
	}

	s.mu.Lock()
	s.uid = uid
	s.mu.Unlock()
	s.logger.Debug("Authenticated", "uid", uid)
	return uid, nil
}

func (s *Service) invalidate(uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uid == uid {
		s.uid = 0
	}
}

func (s *Service) executeKw(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, reply interface{}) error {
	params := []interface{}{s.cfg.DB, uid, s.cfg.Password, model, method, args}
	if kwargs != nil {
		params = append(params, kwargs)
	}
	if err := s.rpc.Call(ctx, serviceObject, "execute_kw", params, reply); err != nil {
		s.invalidate(uid)
		s.logger.Error("execute_kw failed", "model", model, "method", method, "error", err)
		return fmt.Errorf("%w: %s.%s: %v", ErrBackendUnavailable, model, method, err)
	}
	return nil
}

// ListOrders возвращает до 100 последних заказов (новые первыми) с кодом спецификации.
// При любой ошибке возвращается ErrBackendUnavailable без частичного результата.
func (s *Service) ListOrders(ctx context.Context) ([]models.ManufacturingOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	uid, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	var raws []interface{}
	kwargs := map[string]interface{}{"fields": orderFields, "limit": OrdersPageSize, "order": "id desc"}
	if err := s.executeKw(ctx, uid, "mrp.production", "search_read", []interface{}{[]interface{}{}}, kwargs, &raws); err != nil {
		return nil, err
	}

	bomCodes := make(map[int64]string)
	orders := make([]models.ManufacturingOrder, 0, len(raws))
	for _, raw := range raws {
		rec, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: unexpected mrp.production record %T", ErrBackendUnavailable, raw)
		}

		bomCode := models.UnknownBOMCode
		if bomID, ok := many2oneID(rec["bom_id"]); ok {
			code, cached := bomCodes[bomID]
			if !cached {
				if code, err = s.bomCode(ctx, uid, bomID); err != nil {
					return nil, err
				}
				bomCodes[bomID] = code
			}
			bomCode = code
		}

		orders = append(orders, models.NewManufacturingOrder(
			asString(rec["name"]),
			many2oneName(rec["product_id"]),
			bomCode,
			asDecimal(rec["product_qty"]),
			asString(rec["state"]),
		))
	}

	s.logger.Debug("Orders listed", "count", len(orders))
	return orders, nil
}

func (s *Service) bomCode(ctx context.Context, uid, bomID int64) (string, error) {
	var recs []interface{}
	kwargs := map[string]interface{}{"fields": []string{"code"}}
	if err := s.executeKw(ctx, uid, "mrp.bom", "read", []interface{}{[]interface{}{bomID}}, kwargs, &recs); err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return models.UnknownBOMCode, nil
	}
	rec, _ := recs[0].(map[string]interface{})
	if code := asString(rec["code"]); code != "" {
		return code, nil
	}
	return models.UnknownBOMCode, nil
}

// ListComponents возвращает компоненты заказа по его номеру.
// Отсутствующий заказ и заказ без компонентов дают одну служебную строку.
func (s *Service) ListComponents(ctx context.Context, orderNumber string) ([]models.ComponentLine, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	uid, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	var recs []interface{}
	domain := []interface{}{[]interface{}{"name", "=", orderNumber}}
	kwargs := map[string]interface{}{"fields": []string{"move_raw_ids"}, "limit": 1}
	if err := s.executeKw(ctx, uid, "mrp.production", "search_read", []interface{}{domain}, kwargs, &recs); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return []models.ComponentLine{models.OrderNotFoundLine(orderNumber)}, nil
	}

	rec, _ := recs[0].(map[string]interface{})
	moveIDs, _ := rec["move_raw_ids"].([]interface{})
	if len(moveIDs) == 0 {
		return []models.ComponentLine{models.NoComponentsLine()}, nil
	}

	var moves []interface{}
	kwargs = map[string]interface{}{"fields": []string{"product_id", "product_uom_qty"}}
	if err := s.executeKw(ctx, uid, "stock.move", "read", []interface{}{moveIDs}, kwargs, &moves); err != nil {
		return nil, err
	}

	lines := make([]models.ComponentLine, 0, len(moves))
	for _, raw := range moves {
		move, _ := raw.(map[string]interface{})
		product := many2oneName(move["product_id"])
		if product == "" {
			product = models.UnknownProduct
		}
		lines = append(lines, models.ComponentLine{
			Description: product,
			Quantity:    asDecimal(move["product_uom_qty"]),
		})
	}
	return lines, nil
}
