package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/iwtcode/lineDispatch/internal/interfaces"
	"github.com/iwtcode/lineDispatch/internal/middleware/logging"
)

// publishTimeout ограничивает отправку одного события в брокер
const publishTimeout = 5 * time.Second

type Usecase struct {
	backend    interfaces.OrderBackend
	controller interfaces.LineController
	records    interfaces.DispatchRecordRepository
	publisher  interfaces.EventPublisher
	logger     *logging.Logger

	now func() time.Time

	// фоновые задачи (импульс подтверждения, публикация) живут дольше запроса
	bg       sync.WaitGroup
	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// NewUsecases - конструктор для Usecases
func NewUsecases(
	backend interfaces.OrderBackend,
	controller interfaces.LineController,
	records interfaces.DispatchRecordRepository,
	publisher interfaces.EventPublisher,
	logger *logging.Logger,
) interfaces.Usecases {
	return newUsecase(backend, controller, records, publisher, logger)
}

func newUsecase(
	backend interfaces.OrderBackend,
	controller interfaces.LineController,
	records interfaces.DispatchRecordRepository,
	publisher interfaces.EventPublisher,
	logger *logging.Logger,
) *Usecase {
	ctx, cancel := context.WithCancel(context.Background())
	return &Usecase{
		backend:    backend,
		controller: controller,
		records:    records,
		publisher:  publisher,
		logger:     logger.WithPrefix("DISPATCH"),
		now:        time.Now,
		bgCtx:      ctx,
		bgCancel:   cancel,
	}
}

func (u *Usecase) goBackground(fn func(ctx context.Context)) {
	u.bg.Add(1)
	go func() {
		defer u.bg.Done()
		fn(u.bgCtx)
	}()
}

// Shutdown отменяет фоновые задачи и ждет их завершения (не дольше ctx).
// Прерванный импульс все равно сбрасывает бит в false.
func (u *Usecase) Shutdown(ctx context.Context) error {
	u.bgCancel()

	done := make(chan struct{})
	go func() {
		u.bg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
