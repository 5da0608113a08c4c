package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/test"
	"github.com/nurbekov/mealbox/internal/usecase"
)

func TestNotifyPersistsThenBroadcasts(t *testing.T) {
	notes := &test.NotificationRepositoryStub{}
	broadcast := &test.BroadcasterStub{}
	uc := usecase.NewNotificationUseCase(notes, broadcast)

	if err := uc.Notify(context.Background(), 7, "Your order #1 has been placed"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if notes.Count() != 1 {
		t.Fatalf("stored = %d, want 1", notes.Count())
	}
	if broadcast.GlobalCount() != 1 || broadcast.ToUserCount() != 1 {
		t.Fatalf("broadcasts = %d global / %d user, want 1/1",
			broadcast.GlobalCount(), broadcast.ToUserCount())
	}
	if broadcast.Global[0].Event != usecase.EventNotification {
		t.Errorf("event = %q, want %q", broadcast.Global[0].Event, usecase.EventNotification)
	}
	if broadcast.ToUser[0].UserID != 7 {
		t.Errorf("user channel = %d, want 7", broadcast.ToUser[0].UserID)
	}
}

func TestNotifySurfacesPersistenceError(t *testing.T) {
	storeErr := errors.New("insert failed")
	notes := &test.NotificationRepositoryStub{Err: storeErr}
	broadcast := &test.BroadcasterStub{}
	uc := usecase.NewNotificationUseCase(notes, broadcast)

	if err := uc.Notify(context.Background(), 7, "msg"); !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want %v", err, storeErr)
	}
	// nothing persisted means nothing broadcast
	if broadcast.GlobalCount() != 0 || broadcast.ToUserCount() != 0 {
		t.Errorf("broadcasts after failed persist = %d/%d, want 0/0",
			broadcast.GlobalCount(), broadcast.ToUserCount())
	}
}

func TestBroadcastOrderTargetsBothChannels(t *testing.T) {
	broadcast := &test.BroadcasterStub{}
	uc := usecase.NewNotificationUseCase(&test.NotificationRepositoryStub{}, broadcast)

	order := &model.Order{ID: 3, UserID: 11, Status: model.OrderStatusCooking}
	uc.BroadcastOrder(order)

	if broadcast.GlobalCount() != 1 || broadcast.ToUserCount() != 1 {
		t.Fatalf("broadcasts = %d/%d, want 1/1", broadcast.GlobalCount(), broadcast.ToUserCount())
	}
	if broadcast.ToUser[0].UserID != 11 || broadcast.ToUser[0].Event != usecase.EventOrderUpdate {
		t.Errorf("user broadcast = %+v", broadcast.ToUser[0])
	}
}

func TestMarkReadDelegates(t *testing.T) {
	notes := &test.NotificationRepositoryStub{}
	uc := usecase.NewNotificationUseCase(notes, &test.BroadcasterStub{})

	if err := uc.Notify(context.Background(), 5, "first"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := uc.Notify(context.Background(), 5, "second"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if err := uc.MarkRead(context.Background(), 5, notes.Items[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !notes.Items[0].Read || notes.Items[1].Read {
		t.Errorf("read flags = %v/%v, want true/false", notes.Items[0].Read, notes.Items[1].Read)
	}

	if err := uc.MarkAllRead(context.Background(), 5); err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if !notes.Items[1].Read {
		t.Error("second notification still unread after MarkAllRead")
	}
}
