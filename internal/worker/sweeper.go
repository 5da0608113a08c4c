package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nurbekov/mealbox/internal/domain/model"
)

// SweepFacade exposes the subset of application functionality required by the sweeper.
type SweepFacade interface {
	ActiveOrders(ctx context.Context, limit int) ([]model.Order, error)
	RefreshOrder(ctx context.Context, order *model.Order) (bool, error)
}

// Sweeper periodically fetches non-terminal orders and advances their
// lifecycle statuses concurrently. A failed order is logged and skipped; the
// sweep itself never aborts.
type Sweeper struct {
	facade        SweepFacade
	sweepInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs the lifecycle sweeper worker pool.
func NewSweeper(facade SweepFacade, sweepInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Sweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Sweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.Order, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *Sweeper) fetchAndDispatch(ctx context.Context) {
	orders, err := s.facade.ActiveOrders(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch active orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- order:
		}
	}
}

func (s *Sweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-s.jobs:
			if !ok {
				return
			}
			s.sweepOrder(ctx, order)
		}
	}
}

func (s *Sweeper) sweepOrder(ctx context.Context, order model.Order) {
	changed, err := s.facade.RefreshOrder(ctx, &order)
	if err != nil {
		s.logger.Error("order sweep failed",
			slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
		return
	}
	if changed {
		s.logger.Info("order advanced",
			slog.Int64("order_id", order.ID), slog.String("status", string(order.Status)))
	}
}
