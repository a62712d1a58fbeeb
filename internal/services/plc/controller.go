package plc

import (
	"context"
	"fmt"
	"time"

	"github.com/iwtcode/lineDispatch/internal/config"
	"github.com/iwtcode/lineDispatch/internal/domain/models"
	"github.com/iwtcode/lineDispatch/internal/middleware/logging"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// cleanupTimeout ограничивает закрытие сессии и откат, даже если контекст операции истек
const cleanupTimeout = 2 * time.Second

// Controller выполняет короткие операции с тегами контроллеров линий.
// Каждая операция: подключение, действие, отключение. Сессии не переиспользуются.
type Controller struct {
	cfg    config.OPCUAConfig
	dialer Dialer
	logger *logging.Logger
}

func NewController(cfg config.OPCUAConfig, dialer Dialer, logger *logging.Logger) *Controller {
	return &Controller{
		cfg:    cfg,
		dialer: dialer,
		logger: logger.WithPrefix("PLC"),
	}
}

type tagWrite struct {
	node  string
	value interface{}
}

// withSession открывает сессию к линии, выполняет fn и всегда закрывает сессию.
// extra добавляется к таймауту операции (для импульса).
func (c *Controller) withSession(ctx context.Context, line, op string, extra time.Duration, fn func(ctx context.Context, s Session) error) (err error) {
	endpoint, ok := c.cfg.Endpoint(line)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLine, line)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout+extra)
	defer cancel()

	session, err := c.dialer.Dial(ctx, endpoint)
	if err != nil {
		c.logger.Error("Failed to connect to controller", "op", op, "ilot", line, "endpoint", endpoint, "error", err)
		return fmt.Errorf("%w: %s (%s): %v", ErrControllerUnavailable, line, endpoint, err)
	}
	c.logger.Debug("Controller session opened", "op", op, "ilot", line)

	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
		defer closeCancel()
		if cerr := session.Close(closeCtx); cerr != nil {
			c.logger.Warn("Failed to close controller session", "op", op, "ilot", line, "error", cerr)
			if err == nil {
				err = fmt.Errorf("%w: %s: закрытие сессии: %v", ErrControllerUnavailable, line, cerr)
			}
		}
	}()

	if fn == nil {
		return nil
	}
	if err = fn(ctx, session); err != nil {
		c.logger.Error("Controller operation failed", "op", op, "ilot", line, "error", err)
	}
	return err
}

// ProbeReachable открывает и сразу закрывает сессию; nil, если оба шага успешны
func (c *Controller) ProbeReachable(ctx context.Context, line string) error {
	return c.withSession(ctx, line, "probe", 0, nil)
}

// WriteOrderStart записывает номер заказа строкой в тег order_ref
func (c *Controller) WriteOrderStart(ctx context.Context, line, orderNumber string) error {
	if orderNumber == "" {
		return fmt.Errorf("%w: пустой номер заказа", ErrInvalidOrderNumber)
	}
	return c.withSession(ctx, line, "write_order_start", 0, func(ctx context.Context, s Session) error {
		return c.writeSequence(ctx, s, line, []tagWrite{{node: c.cfg.Tags.OrderRef, value: orderNumber}})
	})
}

// WriteOrderDetails вычисляет id заказа, код продукта и количество и записывает их в три тега.
// Дата заказа не записывается. Ошибки разбора возвращаются до открытия сессии.
func (c *Controller) WriteOrderDetails(ctx context.Context, line, orderNumber, productCode string, quantity decimal.Decimal) (models.DerivedOrderValues, error) {
	if _, ok := c.cfg.Endpoint(line); !ok {
		return models.DerivedOrderValues{}, fmt.Errorf("%w: %s", ErrUnknownLine, line)
	}

	derived, err := DeriveOrderValues(orderNumber, productCode, quantity)
	if err != nil {
		c.logger.Error("Order values rejected", "ilot", line, "order", orderNumber, "code", productCode, "error", err)
		return derived, err
	}

	err = c.withSession(ctx, line, "write_order_details", 0, func(ctx context.Context, s Session) error {
		tagType, err := s.DataType(ctx, c.cfg.Tags.OrderRef)
		if err != nil {
			return fmt.Errorf("%w: %s: тип тега %s: %v", ErrControllerRead, line, c.cfg.Tags.OrderRef, err)
		}
		orderValue, err := integerFor(tagType, derived.OrderID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOrderNumber, err)
		}

		return c.writeSequence(ctx, s, line, []tagWrite{
			{node: c.cfg.Tags.OrderRef, value: orderValue},
			{node: c.cfg.Tags.ProductCode, value: derived.ProductCodeID},
			{node: c.cfg.Tags.Quantity, value: derived.Quantity},
		})
	})
	if err != nil {
		return derived, err
	}

	c.logger.Info("Order details written", "ilot", line, "order", orderNumber,
		"order_id", derived.OrderID, "product_code_id", derived.ProductCodeID, "quantity", derived.Quantity)
	return derived, nil
}

// writeSequence записывает теги по порядку. При сбое посередине уже записанные
// в этой сессии теги обнуляются (best-effort), возвращается исходная ошибка.
func (c *Controller) writeSequence(ctx context.Context, s Session, line string, writes []tagWrite) error {
	for i, w := range writes {
		if err := s.Write(ctx, w.node, w.value); err != nil {
			if i > 0 {
				c.compensate(ctx, s, line, writes[:i])
			}
			return fmt.Errorf("%w: %s: тег %s: %v", ErrControllerWrite, line, w.node, err)
		}
	}
	return nil
}

func (c *Controller) compensate(ctx context.Context, s Session, line string, written []tagWrite) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	for i := len(written) - 1; i >= 0; i-- {
		w := written[i]
		if err := s.Write(ctx, w.node, zeroOf(w.value)); err != nil {
			c.logger.Warn("Compensating clear failed", "ilot", line, "tag", w.node, "error", err)
			continue
		}
		c.logger.Warn("Partially written tag cleared", "ilot", line, "tag", w.node)
	}
}

// PushUserRole записывает роль оператора (0/1/2) как UInt16
func (c *Controller) PushUserRole(ctx context.Context, line string, role models.UserRole) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRole, role)
	}
	return c.withSession(ctx, line, "push_user_role", 0, func(ctx context.Context, s Session) error {
		return c.writeSequence(ctx, s, line, []tagWrite{{node: c.cfg.Tags.UserRole, value: uint16(role)}})
	})
}

// PulseBit записывает true, ждет duration и записывает false.
// Сброс в false выполняется и при отмене ожидания.
func (c *Controller) PulseBit(ctx context.Context, line, tag string, duration time.Duration) error {
	return c.withSession(ctx, line, "pulse_bit", duration, func(ctx context.Context, s Session) error {
		if err := s.Write(ctx, tag, true); err != nil {
			return fmt.Errorf("%w: %s: тег %s: %v", ErrControllerWrite, line, tag, err)
		}

		timer := time.NewTimer(duration)
		defer timer.Stop()

		var waitErr error
		resetCtx := ctx
		select {
		case <-timer.C:
		case <-ctx.Done():
			waitErr = ctx.Err()
			var cancel context.CancelFunc
			resetCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
			defer cancel()
		}

		if err := s.Write(resetCtx, tag, false); err != nil {
			return fmt.Errorf("%w: %s: сброс тега %s: %v", ErrControllerWrite, line, tag, err)
		}
		if waitErr != nil {
			return fmt.Errorf("%w: %s: импульс прерван: %v", ErrControllerUnavailable, line, waitErr)
		}
		return nil
	})
}

// ConfirmOrder подает импульс подтверждения на тег validate
func (c *Controller) ConfirmOrder(ctx context.Context, line string) error {
	return c.PulseBit(ctx, line, c.cfg.Tags.Validate, c.cfg.PulseDuration)
}

// GetStates опрашивает доступность всех линий параллельно: ON при успехе, OFF при любой ошибке
func (c *Controller) GetStates(ctx context.Context) []models.LineState {
	states := make([]models.LineState, len(c.cfg.Lines))

	var g errgroup.Group
	for i, line := range c.cfg.Lines {
		g.Go(func() error {
			state := models.LineOn
			if err := c.ProbeReachable(ctx, line.ID); err != nil {
				state = models.LineOff
			}
			states[i] = models.LineState{Ilot: line.ID, Etat: state}
			return nil
		})
	}
	_ = g.Wait()

	return states
}

// ReadRunState читает тег автомата состояний линии (0=STOP, 1=RUN, 2=ALARM)
func (c *Controller) ReadRunState(ctx context.Context, line string) (models.LineRunState, error) {
	state := models.LineRunState{Ilot: line}
	err := c.withSession(ctx, line, "read_run_state", 0, func(ctx context.Context, s Session) error {
		raw, err := s.Read(ctx, c.cfg.Tags.StateMachine)
		if err != nil {
			return fmt.Errorf("%w: %s: тег %s: %v", ErrControllerRead, line, c.cfg.Tags.StateMachine, err)
		}
		code, err := toInt(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrControllerRead, line, err)
		}
		state.Code = code
		state.Label = models.RunStateLabel(code)
		return nil
	})
	return state, err
}
