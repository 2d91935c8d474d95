package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bravok9/k9booking/internal/payments"
	"github.com/bravok9/k9booking/internal/ratelimit"
)

func stripeStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/pay/cs_test_1"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func configuredClient(t *testing.T) *payments.CheckoutClient {
	return payments.NewCheckoutClient("sk_test_abc", "https://example.com/ok", "https://example.com/cancel", "").
		WithBaseURL(stripeStub(t).URL)
}

func postCheckout(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/create-checkout-session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:50000"
	w := httptest.NewRecorder()
	HandleCreateCheckoutSession(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp["error"]
}

func TestCreateCheckoutSession(t *testing.T) {
	InitHandlers(configuredClient(t), nil)
	t.Cleanup(func() { InitHandlers(nil, nil) })

	w := postCheckout(`{"amount": 7000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["url"] != "https://checkout.stripe.com/pay/cs_test_1" {
		t.Fatalf("url = %q", resp["url"])
	}
}

func TestCreateCheckoutSessionUnconfigured(t *testing.T) {
	InitHandlers(payments.NewCheckoutClient("", "", "", ""), nil)
	t.Cleanup(func() { InitHandlers(nil, nil) })

	w := postCheckout(`{"amount": 7000}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
	if got := errorBody(t, w); got != "Payments are not configured on the server." {
		t.Fatalf("error = %q", got)
	}
}

func TestCreateCheckoutSessionInvalidAmount(t *testing.T) {
	InitHandlers(configuredClient(t), nil)
	t.Cleanup(func() { InitHandlers(nil, nil) })

	for _, body := range []string{`{}`, `{"amount": 0}`, `{"amount": -5}`, `{"amount": "abc"}`, `not json`} {
		w := postCheckout(body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d", body, w.Code)
		}
		if got := errorBody(t, w); got != "Missing or invalid amount." {
			t.Fatalf("body %q: error = %q", body, got)
		}
	}
}

func TestCreateCheckoutSessionMissingRedirectURLs(t *testing.T) {
	client := payments.NewCheckoutClient("sk_test_abc", "", "", "").
		WithBaseURL(stripeStub(t).URL)
	InitHandlers(client, nil)
	t.Cleanup(func() { InitHandlers(nil, nil) })

	w := postCheckout(`{"amount": 7000}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if got := errorBody(t, w); got != "Server misconfiguration: missing success or cancel URL." {
		t.Fatalf("error = %q", got)
	}
}

func TestCreateCheckoutSessionStripeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"nope"}}`, http.StatusPaymentRequired)
	}))
	t.Cleanup(server.Close)
	client := payments.NewCheckoutClient("sk_test_abc", "https://example.com/ok", "https://example.com/cancel", "").
		WithBaseURL(server.URL)
	InitHandlers(client, nil)
	t.Cleanup(func() { InitHandlers(nil, nil) })

	w := postCheckout(`{"amount": 7000}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if got := errorBody(t, w); got != "Failed to create checkout session." {
		t.Fatalf("error = %q", got)
	}
}

func TestCreateCheckoutSessionThrottled(t *testing.T) {
	limiter := ratelimit.New(&ratelimit.Config{Cooldown: time.Minute, MaxPerHour: 30})
	defer limiter.Close()
	InitHandlers(configuredClient(t), limiter)
	t.Cleanup(func() { InitHandlers(nil, nil) })

	if w := postCheckout(`{"amount": 7000}`); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}
	w := postCheckout(`{"amount": 7000}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d", w.Code)
	}
	if got := errorBody(t, w); got != "Too many requests. Please try again later." {
		t.Fatalf("error = %q", got)
	}
}

func TestCreateCheckoutSessionMethodNotAllowed(t *testing.T) {
	InitHandlers(configuredClient(t), nil)
	t.Cleanup(func() { InitHandlers(nil, nil) })

	req := httptest.NewRequest(http.MethodGet, "/api/create-checkout-session", nil)
	w := httptest.NewRecorder()
	HandleCreateCheckoutSession(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
}
