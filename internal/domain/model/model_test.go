package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "pending"},
		{"confirmed", OrderStatusConfirmed, "confirmed"},
		{"cooking", OrderStatusCooking, "cooking"},
		{"out for delivery", OrderStatusOutForDelivery, "out_for_delivery"},
		{"scheduled", OrderStatusScheduled, "scheduled"},
		{"in progress", OrderStatusInProgress, "in_progress"},
		{"delivered", OrderStatusDelivered, "delivered"},
		{"cancelled", OrderStatusCancelled, "cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled must be terminal")
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusCooking, OrderStatusOutForDelivery, OrderStatusScheduled, OrderStatusInProgress} {
		if s.IsTerminal() {
			t.Fatalf("%s must not be terminal", s)
		}
	}
}

func TestBoxQuotaRemaining(t *testing.T) {
	cases := []struct {
		name  string
		quota BoxQuota
		want  int
	}{
		{"unused", BoxQuota{TotalBoxes: 30}, 30},
		{"partial", BoxQuota{TotalBoxes: 30, DeliveredBoxes: 29}, 1},
		{"exhausted", BoxQuota{TotalBoxes: 30, DeliveredBoxes: 30}, 0},
		{"over-delivered clamps", BoxQuota{TotalBoxes: 7, DeliveredBoxes: 9}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.quota.Remaining(); got != tc.want {
				t.Fatalf("expected %d remaining, got %d", tc.want, got)
			}
		})
	}
}
