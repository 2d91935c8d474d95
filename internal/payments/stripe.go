// internal/payments/stripe.go

// Package payments creates hosted Stripe Checkout Sessions for booking
// payments.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultProductName = "Bravo K9 Training Session"

// CheckoutClient talks to the Stripe Checkout Sessions API with the raw HTTP
// form encoding Stripe expects.
type CheckoutClient struct {
	secretKey   string
	successURL  string
	cancelURL   string
	productName string
	baseURL     string
	httpClient  *http.Client
}

// NewCheckoutClient creates a checkout client. An empty secret key produces
// an unconfigured client; Configured reports that state so callers can answer
// service-unavailable instead of calling out.
func NewCheckoutClient(secretKey, successURL, cancelURL, productName string) *CheckoutClient {
	if strings.TrimSpace(productName) == "" {
		productName = defaultProductName
	}
	return &CheckoutClient{
		secretKey:   secretKey,
		successURL:  successURL,
		cancelURL:   cancelURL,
		productName: productName,
		baseURL:     "https://api.stripe.com",
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the Stripe API base URL (for testing).
func (c *CheckoutClient) WithBaseURL(baseURL string) *CheckoutClient {
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// Configured reports whether a secret key is present.
func (c *CheckoutClient) Configured() bool {
	return c.secretKey != ""
}

// RedirectURLsConfigured reports whether both post-payment redirect targets
// are set.
func (c *CheckoutClient) RedirectURLsConfigured() bool {
	return c.successURL != "" && c.cancelURL != ""
}

// Session is the subset of Stripe's Checkout Session response we need.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession creates a payment-mode checkout session for the given amount
// in cents and returns the hosted payment page URL.
func (c *CheckoutClient) CreateSession(ctx context.Context, amountCents int64) (*Session, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("payments: stripe secret key not configured")
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("payments: amount must be greater than 0")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", fmt.Sprintf("%d", amountCents))
	form.Set("line_items[0][price_data][product_data][name]", c.productName)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)

	apiURL := c.baseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("payments: stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments: stripe http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", strings.TrimSpace(string(body))).
			Msg("Stripe checkout session creation failed")
		return nil, fmt.Errorf("payments: stripe api status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("payments: stripe decode: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("payments: stripe response missing checkout url")
	}
	return &session, nil
}
