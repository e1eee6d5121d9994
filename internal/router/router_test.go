package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/mock/gomock"

	"github.com/iliyamo/restaurant-dashboard/internal/handler"
	"github.com/iliyamo/restaurant-dashboard/internal/handler/mocks"
	"github.com/iliyamo/restaurant-dashboard/internal/middleware"
	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/payment"
	"github.com/iliyamo/restaurant-dashboard/internal/service"
	"github.com/iliyamo/restaurant-dashboard/internal/utils"
)

const secret = "router-secret"

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func token(t *testing.T, tenant, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, tenant, role, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok.Token
}

func do(e *echo.Echo, method, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader("{}"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterRoutes_Probes(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, pinger{err: errors.New("down")})

	if rec := do(e, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz: expected 503, got %d", rec.Code)
	}
}

func TestRegisterDashboard_AuthAndRoles(t *testing.T) {
	ctrl := gomock.NewController(t)
	status := mocks.NewMockStatusCommands(ctrl)
	status.EXPECT().ListOrders(gomock.Any(), "tenant-1", gomock.Any()).Return([]model.Order{}, nil).Times(1)

	var cached int
	cache := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cached++
			return next(c)
		}
	}
	menu := mocks.NewMockMenuEditor(ctrl)
	menu.EXPECT().List(gomock.Any(), "tenant-1").Return([]model.MenuPrice{}, nil).Times(1)

	e := echo.New()
	RegisterDashboard(e, Dashboard{
		Status:        handler.NewStatusHandler(status),
		Menu:          handler.NewMenuHandler(menu, nil),
		Minutes:       handler.NewMinutesHandler(mocks.NewMockMinutesAccount(ctrl)),
		Notifications: handler.NewNotificationHandler(mocks.NewMockNotificationInbox(ctrl)),
		Forward:       handler.NewForwardHandler(mocks.NewMockEventRelay(ctrl), nil),
		Stream:        handler.NewStreamHandler(mocks.NewMockChangeStream(ctrl), time.Second),
	}, secret, cache)

	if rec := do(e, http.MethodGet, "/v1/orders", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/v1/orders", token(t, "tenant-1", "anon")); rec.Code != http.StatusForbidden {
		t.Fatalf("anon role: expected 403, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/v1/orders", token(t, "tenant-1", middleware.RoleAuthenticated)); rec.Code != http.StatusOK {
		t.Fatalf("authenticated: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(e, http.MethodGet, "/v1/menu", token(t, "tenant-1", middleware.RoleService)); rec.Code != http.StatusOK {
		t.Fatalf("menu: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if cached != 1 {
		t.Fatalf("cache should wrap the menu listing only, ran %d times", cached)
	}
}

func TestRegisterWebhooks_BothStripePathsAreLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	payments := mocks.NewMockPaymentEvents(ctrl)
	payments.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(payment.Event{}, service.ErrAuthentication).Times(2)
	audit := mocks.NewMockWebhookAuditor(ctrl)
	audit.EXPECT().Record(gomock.Any(), gomock.Any()).AnyTimes()

	var limited int
	limit := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limited++
			return next(c)
		}
	}

	e := echo.New()
	RegisterWebhooks(e,
		handler.NewAutomationWebhookHandler(mocks.NewMockAutomationIntake(ctrl), audit),
		handler.NewStripeWebhookHandler(payments, audit),
		limit,
	)

	for _, path := range []string{"/webhooks/stripe", "/webhooks/stripe/minutes"} {
		if rec := do(e, http.MethodPost, path, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
	}
	if limited != 2 {
		t.Fatalf("expected limiter on every webhook request, ran %d times", limited)
	}
}

func TestRegisterWebhooks_NoDashboardRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	e := echo.New()
	RegisterWebhooks(e,
		handler.NewAutomationWebhookHandler(mocks.NewMockAutomationIntake(ctrl), nil),
		handler.NewStripeWebhookHandler(mocks.NewMockPaymentEvents(ctrl), nil),
		passThrough,
	)
	if rec := do(e, http.MethodGet, "/v1/orders", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
