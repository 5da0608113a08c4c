package postgres

import (
	"context"
	"testing"

	testhelpers "github.com/nurbekov/mealbox/internal/test"
)

func TestRegisterLifecyclePingsAndCloses(t *testing.T) {
	storage, mock := newMockStorage(t)
	recorder := &testhelpers.LifecycleRecorder{}

	registerLifecycle(recorder, storage)
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}
	hook := recorder.Hooks[0]

	mock.ExpectPing()
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	mock.ExpectClose()
	if err := hook.OnStop(context.Background()); err != nil {
		t.Fatalf("on stop failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
