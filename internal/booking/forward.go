// internal/booking/forward.go
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIForwarder posts completed bookings to the backend bookings API.
type APIForwarder struct {
	baseURL string
	client  *http.Client
}

// NewAPIForwarder creates a forwarder for the API at baseURL.
func NewAPIForwarder(baseURL string) *APIForwarder {
	return &APIForwarder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: forwardTimeout},
	}
}

// Forward delivers the payload to POST /api/bookings. Any non-2xx status is
// an error; the caller decides whether to surface or swallow it.
func (f *APIForwarder) Forward(ctx context.Context, payload ForwardPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode booking payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		f.baseURL+"/api/bookings", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("post booking: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("booking api status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
