package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/server/http/handlers"
	testhelpers "github.com/nurbekov/mealbox/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.MealboxFacadeStub{
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			OrdersFn: func(context.Context, int64) ([]model.Order, error) {
				return []model.Order{{ID: 1, Kind: model.OrderKindQuick, Status: model.OrderStatusDelivered, CreatedAt: time.Unix(0, 0)}}, nil
			},
		},
	}
	realtime := &testhelpers.RealtimeServerStub{}
	engine := Setup(facade, realtime, "admin-secret", logger)

	body, _ := json.Marshal(map[string]string{"email": "user@example.com", "password": "pass", "name": "User"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}

	// unauthenticated request never reaches the handler
	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}

	// admin purge is gated on the shared token
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/orders/1", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 without admin token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/orders/1", nil)
	req.Header.Set("X-Admin-Token", "admin-secret")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for admin purge, got %d", resp.Code)
	}

	// websocket endpoint takes the token from the query string
	req = httptest.NewRequest(http.MethodGet, "/ws?token=token", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for ws connect, got %d", resp.Code)
	}
	if len(realtime.Served) != 1 || realtime.Served[0] != 1 {
		t.Fatalf("expected ws serve for user 1, got %+v", realtime.Served)
	}
}

var _ handlers.MealboxFacade = (*testhelpers.MealboxFacadeStub)(nil)
var _ handlers.RealtimeServer = (*testhelpers.RealtimeServerStub)(nil)
