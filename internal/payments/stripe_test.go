package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateSession(t *testing.T) {
	var gotAuth string
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_123","url":"https://checkout.stripe.com/pay/cs_test_123"}`))
	}))
	defer server.Close()

	client := NewCheckoutClient("sk_test_abc", "https://example.com/ok", "https://example.com/cancel", "").
		WithBaseURL(server.URL)

	session, err := client.CreateSession(context.Background(), 7000)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if session.ID != "cs_test_123" {
		t.Fatalf("session.ID = %q", session.ID)
	}
	if session.URL != "https://checkout.stripe.com/pay/cs_test_123" {
		t.Fatalf("session.URL = %q", session.URL)
	}

	if gotAuth != "Bearer sk_test_abc" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	expect := map[string]string{
		"mode":                    "payment",
		"payment_method_types[0]": "card",
		"line_items[0][price_data][currency]":           "usd",
		"line_items[0][price_data][unit_amount]":        "7000",
		"line_items[0][price_data][product_data][name]": "Bravo K9 Training Session",
		"line_items[0][quantity]":                       "1",
		"success_url":                                   "https://example.com/ok",
		"cancel_url":                                    "https://example.com/cancel",
	}
	for k, want := range expect {
		if gotForm[k] != want {
			t.Fatalf("form[%q] = %q, want %q", k, gotForm[k], want)
		}
	}
}

func TestCreateSessionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid API Key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewCheckoutClient("sk_test_bad", "https://example.com/ok", "https://example.com/cancel", "").
		WithBaseURL(server.URL)
	if _, err := client.CreateSession(context.Background(), 7000); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestCreateSessionUnconfigured(t *testing.T) {
	client := NewCheckoutClient("", "https://example.com/ok", "https://example.com/cancel", "")
	if client.Configured() {
		t.Fatal("client with empty key reported configured")
	}
	if _, err := client.CreateSession(context.Background(), 7000); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}

func TestCreateSessionRejectsNonPositiveAmount(t *testing.T) {
	client := NewCheckoutClient("sk_test_abc", "https://example.com/ok", "https://example.com/cancel", "")
	if _, err := client.CreateSession(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestRedirectURLsConfigured(t *testing.T) {
	if NewCheckoutClient("sk", "https://example.com/ok", "", "").RedirectURLsConfigured() {
		t.Fatal("missing cancel URL reported configured")
	}
	if !NewCheckoutClient("sk", "https://example.com/ok", "https://example.com/cancel", "").RedirectURLsConfigured() {
		t.Fatal("both URLs set reported unconfigured")
	}
}
