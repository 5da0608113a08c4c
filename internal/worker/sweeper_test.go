package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nurbekov/mealbox/internal/domain/model"
	testhelpers "github.com/nurbekov/mealbox/internal/test"
)

func TestNewSweeperDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sweeper := NewSweeper(&testhelpers.SweepFacadeStub{}, time.Second, 0, 0, logger)
	if sweeper.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", sweeper.batchSize)
	}
	if sweeper.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", sweeper.workers)
	}
}

func TestSweeperRefreshesOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.SweepFacadeStub{
		Batches: [][]model.Order{{{ID: 1, Kind: model.OrderKindQuick, Status: model.OrderStatusPending}}},
	}
	sweeper := NewSweeper(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		refreshed := len(facade.Refreshed) > 0
		facade.Unlock()
		if refreshed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweep")
		case <-time.After(10 * time.Millisecond):
		}
	}

	sweeper.Stop()
	facade.Lock()
	defer facade.Unlock()
	if facade.Refreshed[0].OrderID != 1 {
		t.Fatalf("expected order 1 refreshed, got %+v", facade.Refreshed[0])
	}
}

func TestSweeperSkipsFailedOrder(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	var refreshed int32
	facade := &testhelpers.SweepFacadeStub{
		Batches: [][]model.Order{{
			{ID: 1, Kind: model.OrderKindQuick, Status: model.OrderStatusPending},
			{ID: 2, Kind: model.OrderKindQuick, Status: model.OrderStatusPending},
		}},
		RefreshFn: func(ctx context.Context, order *model.Order) (bool, error) {
			atomic.AddInt32(&refreshed, 1)
			if order.ID == 1 {
				return false, errors.New("storage hiccup")
			}
			return true, nil
		},
	}

	sweeper := NewSweeper(facade, 5*time.Millisecond, 2, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&refreshed) < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for both orders")
		case <-time.After(10 * time.Millisecond):
		}
	}
	sweeper.Stop()

	// one order failing must not prevent the other from being processed
	if atomic.LoadInt32(&refreshed) != 2 {
		t.Fatalf("refreshed = %d, want 2", atomic.LoadInt32(&refreshed))
	}
}

func TestSweeperStopTerminates(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sweeper := NewSweeper(&testhelpers.SweepFacadeStub{}, 5*time.Millisecond, 1, 2, logger)

	sweeper.Start(context.Background())
	time.Sleep(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not terminate")
	}
}
