// internal/api/checkout/handlers.go
package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bravok9/k9booking/internal/payments"
	"github.com/bravok9/k9booking/internal/ratelimit"
)

var (
	client  *payments.CheckoutClient
	limiter *ratelimit.Limiter
)

// InitHandlers must be called during server startup before handling requests.
// The limiter may be nil to disable throttling. Later calls replace the
// wiring, which tests rely on.
func InitHandlers(checkoutClient *payments.CheckoutClient, rateLimiter *ratelimit.Limiter) {
	client = checkoutClient
	limiter = rateLimiter
}

type createSessionRequest struct {
	Amount json.Number `json:"amount"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// POST /api/create-checkout-session
func HandleCreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if client == nil || !client.Configured() {
		writeError(w, http.StatusServiceUnavailable, "Payments are not configured on the server.")
		return
	}

	if limiter != nil {
		if result := limiter.Check(r); !result.Allowed {
			logger.Warn().Str("reason", result.Reason).Msg("Checkout session request throttled")
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid amount.")
		return
	}
	amount, err := req.Amount.Int64()
	if err != nil || amount <= 0 {
		writeError(w, http.StatusBadRequest, "Missing or invalid amount.")
		return
	}

	if !client.RedirectURLsConfigured() {
		writeError(w, http.StatusInternalServerError, "Server misconfiguration: missing success or cancel URL.")
		return
	}

	session, err := client.CreateSession(r.Context(), amount)
	if err != nil {
		logger.Error().Err(err).Int64("amount_cents", amount).Msg("Failed to create checkout session")
		writeError(w, http.StatusInternalServerError, "Failed to create checkout session.")
		return
	}

	logger.Info().Int64("amount_cents", amount).Msg("Checkout session created")
	writeJSON(w, http.StatusOK, map[string]string{"url": session.URL})
}
