package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iliyamo/restaurant-dashboard/internal/handler/mocks"
	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/payment"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
	"github.com/iliyamo/restaurant-dashboard/internal/service"
	"github.com/iliyamo/restaurant-dashboard/internal/workflow"
)

func automationServer(intake AutomationIntake, audit WebhookAuditor) *echo.Echo {
	e := echo.New()
	e.POST("/webhooks/automation", NewAutomationWebhookHandler(intake, audit).Receive)
	return e
}

func TestAutomationWebhook(t *testing.T) {
	t.Run("order created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		intake := mocks.NewMockAutomationIntake(ctrl)
		audit := mocks.NewMockWebhookAuditor(ctrl)

		intake.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req service.AutomationRequest) (service.IntakeResult, error) {
				if req.TenantID != "tenant-a" || req.Kind != workflow.EntityOrder || len(req.Items) != 2 {
					t.Errorf("unexpected request %+v", req)
				}
				return service.IntakeResult{
					Kind: workflow.EntityOrder, ID: "ord-1", ClientName: "Paul",
					Total: decimal.RequireFromString("12"), Unpriced: []string{"Coke"},
				}, nil
			})
		audit.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ any, l model.WebhookLog) {
			if l.WebhookType != "automation" || l.DataType != "order" || l.Status != model.WebhookSuccess {
				t.Errorf("unexpected log %+v", l)
			}
			if l.ErrorMessage == nil || !strings.Contains(*l.ErrorMessage, "1 unpriced items") {
				t.Errorf("unpriced items must be noted in the log, got %v", l.ErrorMessage)
			}
		})

		rec := call(automationServer(intake, audit), http.MethodPost, "/webhooks/automation", "",
			`{"type_demande2":"commande","user_id":"tenant-a","Nom":"Paul","Choix_menu":"Pizza, Coke"}`)
		expectStatus(t, rec, http.StatusOK)
		body := decode(t, rec)
		if body["success"] != true || body["type"] != "order" || body["client_name"] != "Paul" || body["total_amount"] != "12.00" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("missing tenant is 400 without intake", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		intake := mocks.NewMockAutomationIntake(ctrl)
		audit := mocks.NewMockWebhookAuditor(ctrl)
		audit.EXPECT().Record(gomock.Any(), gomock.Any())

		rec := call(automationServer(intake, audit), http.MethodPost, "/webhooks/automation", "",
			`{"type":"reservation","client_name":"Anne"}`)
		expectStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("unknown tenant is 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		intake := mocks.NewMockAutomationIntake(ctrl)
		audit := mocks.NewMockWebhookAuditor(ctrl)
		intake.EXPECT().Create(gomock.Any(), gomock.Any()).Return(service.IntakeResult{}, service.ErrTenantNotFound)
		audit.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ any, l model.WebhookLog) {
			if l.Status != model.WebhookError || l.ResponseStatus == nil || *l.ResponseStatus != http.StatusNotFound {
				t.Errorf("unexpected log %+v", l)
			}
		})

		rec := call(automationServer(intake, audit), http.MethodPost, "/webhooks/automation", "",
			`{"type":"reservation","restaurant_id":"ghost","client_name":"Anne"}`)
		expectStatus(t, rec, http.StatusNotFound)
	})

	t.Run("unknown tenant without a name is 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		intake := mocks.NewMockAutomationIntake(ctrl)
		audit := mocks.NewMockWebhookAuditor(ctrl)
		intake.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req service.AutomationRequest) (service.IntakeResult, error) {
				if req.TenantID != "ghost" {
					t.Errorf("unexpected tenant %q", req.TenantID)
				}
				return service.IntakeResult{}, service.ErrTenantNotFound
			})
		audit.EXPECT().Record(gomock.Any(), gomock.Any())

		rec := call(automationServer(intake, audit), http.MethodPost, "/webhooks/automation", "",
			`{"type":"reservation","restaurant_id":"ghost"}`)
		expectStatus(t, rec, http.StatusNotFound)
	})

	t.Run("store failure is 500 with detail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		intake := mocks.NewMockAutomationIntake(ctrl)
		audit := mocks.NewMockWebhookAuditor(ctrl)
		intake.EXPECT().Create(gomock.Any(), gomock.Any()).Return(service.IntakeResult{}, errors.New("insert reservation: connection reset"))
		audit.EXPECT().Record(gomock.Any(), gomock.Any())

		rec := call(automationServer(intake, audit), http.MethodPost, "/webhooks/automation", "",
			`{"type":"reservation","restaurant_id":"tenant-a","client_name":"Anne"}`)
		expectStatus(t, rec, http.StatusInternalServerError)
		if !strings.Contains(decode(t, rec)["error"].(string), "connection reset") {
			t.Fatalf("expected error detail, got %s", rec.Body.String())
		}
	})
}

func stripeServer(payments PaymentEvents, audit WebhookAuditor) *echo.Echo {
	e := echo.New()
	h := NewStripeWebhookHandler(payments, audit)
	e.POST("/webhooks/stripe", h.Receive)
	e.POST("/webhooks/stripe/minutes", h.Receive)
	return e
}

func postSigned(e *echo.Echo, target, payload, signature string) int {
	req := newRequest(http.MethodPost, target, payload)
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := serve(e, req)
	return rec.Code
}

func stripeSign(payload, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

const completedEvent = `{"id":"evt_1","object":"event","type":"checkout.session.completed","created":1700000000,` +
	`"data":{"object":{"id":"cs_1","object":"checkout.session","metadata":` +
	`{"recharge_id":"rc-1","user_id":"tenant-a","pack_type":"S","minutes":"100"}}}}`

// The signature gate runs the real Stripe verifier in front of a payment
// service without stores: reaching reconciliation would panic.
func TestStripeWebhook_SignatureGateStopsBeforeReconciliation(t *testing.T) {
	ctrl := gomock.NewController(t)
	audit := mocks.NewMockWebhookAuditor(ctrl)
	audit.EXPECT().Record(gomock.Any(), gomock.Any()).Times(3).Do(func(_ any, l model.WebhookLog) {
		if l.Status != model.WebhookError || l.DataType != "unverified" {
			t.Errorf("unexpected log %+v", l)
		}
	})
	gateway := payment.NewStripeGateway("", "whsec_test", "eur", "")
	svc := service.NewPaymentService(gateway, nil, nil, nil, nil, nil, nil, nil)
	e := stripeServer(svc, audit)

	for name, sig := range map[string]string{
		"missing":      "",
		"wrong secret": stripeSign(completedEvent, "whsec_other"),
		"garbage":      "t=1,v1=deadbeef",
	} {
		if code := postSigned(e, "/webhooks/stripe/minutes", completedEvent, sig); code != http.StatusBadRequest {
			t.Fatalf("%s signature: expected 400, got %d", name, code)
		}
	}
}

func TestStripeWebhook_MissingSecretIs500(t *testing.T) {
	ctrl := gomock.NewController(t)
	audit := mocks.NewMockWebhookAuditor(ctrl)
	audit.EXPECT().Record(gomock.Any(), gomock.Any())
	svc := service.NewPaymentService(payment.NewStripeGateway("", "", "eur", ""), nil, nil, nil, nil, nil, nil, nil)

	rec := serve(stripeServer(svc, audit), newRequest(http.MethodPost, "/webhooks/stripe", completedEvent))
	expectStatus(t, rec, http.StatusInternalServerError)
	if decode(t, rec)["error"] != "missing configuration" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestStripeWebhook_Outcomes(t *testing.T) {
	ev := payment.Event{ID: "evt_1", Type: service.EventCheckoutCompleted}
	cases := []struct {
		name      string
		outcome   service.PaymentOutcome
		err       error
		status    int
		logStatus string
	}{
		{"credited", service.PaymentOutcome{TenantID: "tenant-a", Status: model.WebhookSuccess}, nil, http.StatusOK, model.WebhookSuccess},
		{"duplicate", service.PaymentOutcome{TenantID: "tenant-a", Status: model.WebhookIgnored, Detail: "duplicate"}, nil, http.StatusOK, model.WebhookIgnored},
		{"missing metadata", service.PaymentOutcome{Status: model.WebhookError}, service.ErrMissingMetadata, http.StatusBadRequest, model.WebhookError},
		{"upstream", service.PaymentOutcome{Status: model.WebhookError}, service.ErrUpstream, http.StatusInternalServerError, model.WebhookError},
		{"unknown recharge", service.PaymentOutcome{TenantID: "tenant-a", Status: model.WebhookError},
			fmt.Errorf("complete recharge r1: %w", repository.ErrNotFound), http.StatusOK, model.WebhookError},
		{"unknown tenant", service.PaymentOutcome{Status: model.WebhookError}, service.ErrTenantNotFound, http.StatusOK, model.WebhookError},
		{"recharge moved on", service.PaymentOutcome{Status: model.WebhookError}, repository.ErrConflict, http.StatusOK, model.WebhookError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			payments := mocks.NewMockPaymentEvents(ctrl)
			audit := mocks.NewMockWebhookAuditor(ctrl)
			payments.EXPECT().Verify(gomock.Any(), "sig").Return(ev, nil)
			payments.EXPECT().Handle(gomock.Any(), ev).Return(tc.outcome, tc.err)
			audit.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ any, l model.WebhookLog) {
				if l.Status != tc.logStatus || l.DataType != ev.Type || *l.ResponseStatus != tc.status {
					t.Errorf("unexpected log %+v", l)
				}
			})

			if code := postSigned(stripeServer(payments, audit), "/webhooks/stripe", `{}`, "sig"); code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, code)
			}
		})
	}
}
