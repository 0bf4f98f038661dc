package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	paymentsvc "casecraft/internal/service/payment"
)

type stubPayments struct {
	res *paymentsvc.Result
	err error

	lastPayload []byte
	lastSig     string
}

func (s *stubPayments) Process(_ context.Context, payload []byte, sigHeader string) (*paymentsvc.Result, error) {
	s.lastPayload = payload
	s.lastSig = sigHeader
	return s.res, s.err
}

func postWebhook(router http.Handler, body, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(body))
	if sig != "" {
		req.Header.Set("Stripe-Signature", sig)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWebhookSuccess(t *testing.T) {
	svc := &stubPayments{res: &paymentsvc.Result{EventID: "evt_1", OrderID: "ord-1"}}
	router := testRouter(Deps{Payments: svc})

	rec := postWebhook(router, `{"id":"evt_1"}`, "t=1,v1=abc")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.OK {
		t.Fatalf("expected ok acknowledgment: %s", rec.Body.String())
	}
	if string(svc.lastPayload) != `{"id":"evt_1"}` || svc.lastSig != "t=1,v1=abc" {
		t.Fatalf("raw payload or signature header not forwarded")
	}
}

func TestWebhookDuplicateAcknowledged(t *testing.T) {
	svc := &stubPayments{res: &paymentsvc.Result{EventID: "evt_1", Duplicate: true}}
	router := testRouter(Deps{Payments: svc})

	rec := postWebhook(router, `{"id":"evt_1"}`, "t=1,v1=abc")

	if rec.Code != http.StatusOK {
		t.Fatalf("duplicate delivery must still be acknowledged, got %d", rec.Code)
	}
}

func TestWebhookBadSignature(t *testing.T) {
	svc := &stubPayments{err: &paymentsvc.Error{Kind: paymentsvc.KindSignature, Err: errors.New("no match")}}
	router := testRouter(Deps{Payments: svc})

	rec := postWebhook(router, `{}`, "t=1,v1=bogus")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("signature failure must not acknowledge: %s", rec.Body.String())
	}
}

func TestWebhookProcessingFailure(t *testing.T) {
	svc := &stubPayments{err: &paymentsvc.Error{Kind: paymentsvc.KindInternal, Err: errors.New("db down")}}
	router := testRouter(Deps{Payments: svc})

	rec := postWebhook(router, `{}`, "t=1,v1=abc")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 so the provider retries, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Something went wrong.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
