package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/nurbekov/mealbox/internal/domain/errors"
	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/test"
	"github.com/nurbekov/mealbox/internal/usecase"
)

func newQuotaFixture(t *testing.T) (*usecase.QuotaUseCase, *test.UserRepositoryStub, *test.ClockStub) {
	t.Helper()
	users := test.NewUserRepositoryStub()
	clock := test.NewClockStub(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	return usecase.NewQuotaUseCase(users, clock), users, clock
}

func TestBoxesForPlan(t *testing.T) {
	tests := []struct {
		planType string
		want     int
	}{
		{"weekly", 7},
		{"biweekly", 14},
		{"monthly", 30},
		{"", 30},
		{"gold", 30},
	}
	for _, tt := range tests {
		if got := usecase.BoxesForPlan(tt.planType); got != tt.want {
			t.Errorf("BoxesForPlan(%q) = %d, want %d", tt.planType, got, tt.want)
		}
	}
}

func TestAllocateResetsLedger(t *testing.T) {
	uc, users, _ := newQuotaFixture(t)
	users.Add(&model.User{Email: "a@b.c", TotalBoxes: 7, DeliveredBoxes: 5})

	if err := uc.Allocate(context.Background(), 1, 30); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	quota, err := uc.Query(context.Background(), 1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if quota.TotalBoxes != 30 || quota.DeliveredBoxes != 0 {
		t.Errorf("quota = %+v, want total 30 delivered 0", quota)
	}
}

func TestAllocateRejectsNonPositive(t *testing.T) {
	uc, users, _ := newQuotaFixture(t)
	users.Add(&model.User{Email: "a@b.c"})

	for _, total := range []int{0, -3} {
		if err := uc.Allocate(context.Background(), 1, total); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Errorf("Allocate(%d): error = %v, want ErrInvalidAmount", total, err)
		}
	}
}

func TestConsumeClampsAtTotal(t *testing.T) {
	uc, users, _ := newQuotaFixture(t)
	users.Add(&model.User{Email: "a@b.c", TotalBoxes: 2})

	for i := 0; i < 5; i++ {
		if _, err := uc.Consume(context.Background(), 1); err != nil {
			t.Fatalf("consume %d: %v", i, err)
		}
	}

	quota, err := uc.Query(context.Background(), 1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if quota.DeliveredBoxes != 2 {
		t.Errorf("delivered = %d, want clamp at 2", quota.DeliveredBoxes)
	}
	if quota.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", quota.Remaining())
	}
}

func TestQueryLazyRepair(t *testing.T) {
	uc, users, _ := newQuotaFixture(t)
	users.Add(&model.User{Email: "a@b.c", PlanType: "weekly", TotalBoxes: 0})

	quota, err := uc.Query(context.Background(), 1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if quota.TotalBoxes != 7 {
		t.Errorf("repaired total = %d, want 7 for weekly plan", quota.TotalBoxes)
	}

	// repair is persisted, not recomputed per call
	stored, err := users.GetBoxQuota(context.Background(), 1)
	if err != nil {
		t.Fatalf("stored quota: %v", err)
	}
	if stored.TotalBoxes != 7 {
		t.Errorf("stored total = %d, want 7", stored.TotalBoxes)
	}
}

func TestQueryHealthyQuotaUntouched(t *testing.T) {
	uc, users, _ := newQuotaFixture(t)
	users.Add(&model.User{Email: "a@b.c", PlanType: "weekly", TotalBoxes: 14, DeliveredBoxes: 3})

	quota, err := uc.Query(context.Background(), 1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if quota.TotalBoxes != 14 || quota.DeliveredBoxes != 3 {
		t.Errorf("quota = %+v, want stored values untouched", quota)
	}
}

func TestActivateSetsPremiumAndQuota(t *testing.T) {
	uc, users, clock := newQuotaFixture(t)
	users.Add(&model.User{Email: "a@b.c"})

	quota, err := uc.Activate(context.Background(), 1, "biweekly")
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if quota.TotalBoxes != 14 {
		t.Errorf("total = %d, want 14", quota.TotalBoxes)
	}

	usr, err := users.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if !usr.IsPremium || usr.PlanType != "biweekly" {
		t.Errorf("user = %+v, want premium biweekly", usr)
	}
	wantExpiry := clock.Now().Add(14 * 24 * time.Hour)
	if usr.PremiumExpiry == nil || !usr.PremiumExpiry.Equal(wantExpiry) {
		t.Errorf("expiry = %v, want %v", usr.PremiumExpiry, wantExpiry)
	}
}

func TestActivateUnknownPlan(t *testing.T) {
	uc, users, _ := newQuotaFixture(t)
	users.Add(&model.User{Email: "a@b.c"})

	if _, err := uc.Activate(context.Background(), 1, "lifetime"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Errorf("error = %v, want ErrInvalidAmount", err)
	}
}
