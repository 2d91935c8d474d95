// internal/api/pricing/handlers.go
package pricing

import (
	"encoding/json"
	"net/http"

	"github.com/bravok9/k9booking/internal/booking"
)

var ratePerHour float64 = booking.DefaultRatePerHour

// InitHandlers must be called during server startup before handling requests.
// Later calls replace the wiring, which tests rely on.
func InitHandlers(hourlyRate float64) {
	if hourlyRate > 0 {
		ratePerHour = hourlyRate
	} else {
		ratePerHour = booking.DefaultRatePerHour
	}
}

type slotResponse struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"durationMinutes"`
	Selectable      bool   `json:"selectable"`
}

type configResponse struct {
	RatePerHour      float64        `json:"ratePerHour"`
	Currency         string         `json:"currency"`
	MaxSelectedSlots int            `json:"maxSelectedSlots"`
	Slots            []slotResponse `json:"slots"`
}

// GET /api/config
//
// Public pricing and catalog data for the booking client: the hourly rate,
// the selection cap, and the slot table in ascending start order.
func HandleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	catalog := booking.Slots()
	slots := make([]slotResponse, 0, len(catalog))
	for _, slot := range catalog {
		slots = append(slots, slotResponse{
			ID:              slot.ID,
			Label:           slot.Label,
			Start:           slot.Start,
			DurationMinutes: slot.DurationMinutes,
			Selectable:      slot.Selectable,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(configResponse{
		RatePerHour:      ratePerHour,
		Currency:         "usd",
		MaxSelectedSlots: booking.MaxSelectedSlots,
		Slots:            slots,
	})
}
