package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/mock/gomock"

	"github.com/iliyamo/restaurant-dashboard/internal/handler/mocks"
	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/service"
)

func forwardServer(relay EventRelay, audit WebhookAuditor) *echo.Echo {
	e := echo.New()
	authed(e, http.MethodPost, "/v1/automation/events", NewForwardHandler(relay, audit).Send)
	return e
}

func TestForwardHandler(t *testing.T) {
	t.Run("tenant comes from the token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		relay := mocks.NewMockEventRelay(ctrl)
		audit := mocks.NewMockWebhookAuditor(ctrl)
		relay.EXPECT().Forward(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, ev service.ForwardEvent) (int, error) {
				if ev.UserID != "tenant-a" || ev.Type != "reservation" || string(ev.Data) != `{"id":"r1"}` {
					t.Errorf("unexpected event %+v", ev)
				}
				return http.StatusOK, nil
			})
		audit.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ any, l model.WebhookLog) {
			if l.WebhookType != "make" || l.DataType != "reservation" || l.Status != model.WebhookSuccess {
				t.Errorf("unexpected log %+v", l)
			}
			if l.ResponseStatus == nil || *l.ResponseStatus != http.StatusOK {
				t.Errorf("platform status not logged: %+v", l)
			}
		})

		rec := call(forwardServer(relay, audit), http.MethodPost, "/v1/automation/events", bearer(t, "tenant-a"),
			`{"type":"reservation","data":{"id":"r1"},"user_id":"tenant-b"}`)
		expectStatus(t, rec, http.StatusOK)
		if decode(t, rec)["success"] != true {
			t.Fatalf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("platform failure is 500 and logged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		relay := mocks.NewMockEventRelay(ctrl)
		audit := mocks.NewMockWebhookAuditor(ctrl)
		relay.EXPECT().Forward(gomock.Any(), gomock.Any()).
			Return(http.StatusBadGateway, fmt.Errorf("%w: status 502: down", service.ErrRelay))
		audit.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ any, l model.WebhookLog) {
			if l.Status != model.WebhookError || l.ErrorMessage == nil || *l.ResponseStatus != http.StatusBadGateway {
				t.Errorf("unexpected log %+v", l)
			}
		})

		rec := call(forwardServer(relay, audit), http.MethodPost, "/v1/automation/events", bearer(t, "tenant-a"),
			`{"type":"subscription"}`)
		expectStatus(t, rec, http.StatusInternalServerError)
		if decode(t, rec)["success"] != false {
			t.Fatalf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("unknown type is 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		relay := mocks.NewMockEventRelay(ctrl)
		audit := mocks.NewMockWebhookAuditor(ctrl)
		relay.EXPECT().Forward(gomock.Any(), gomock.Any()).
			Return(0, fmt.Errorf("%w: unknown event type", service.ErrInvalidPayload))
		audit.EXPECT().Record(gomock.Any(), gomock.Any())

		rec := call(forwardServer(relay, audit), http.MethodPost, "/v1/automation/events", bearer(t, "tenant-a"), `{"type":"dance"}`)
		expectStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("missing type never reaches the platform", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rec := call(forwardServer(mocks.NewMockEventRelay(ctrl), nil), http.MethodPost, "/v1/automation/events", bearer(t, "tenant-a"), `{}`)
		expectStatus(t, rec, http.StatusBadRequest)
	})
}
