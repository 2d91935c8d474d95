package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	appdb "github.com/bravok9/k9booking/internal/db"
)

const confirmationEmailTimeout = 5 * time.Second

// SendBookingConfirmation sends a confirmation email for a stored booking
// asynchronously. Delivery is best-effort; failures are logged only.
func SendBookingConfirmation(sender EmailSender, booking appdb.Booking, logger *zerolog.Logger) {
	if sender == nil {
		return
	}
	recipient := strings.TrimSpace(booking.Email)
	if recipient == "" {
		return
	}

	subject := "Your Bravo K9 booking request"
	body := confirmationBody(booking)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), confirmationEmailTimeout)
		defer cancel()
		if err := sender.Send(sendCtx, recipient, subject, body); err != nil && logger != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send confirmation email")
		}
	}()
}

func confirmationBody(booking appdb.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", booking.Name)
	b.WriteString("We received your training request and will be in touch to confirm.\n\n")
	if len(booking.Dates) > 0 {
		fmt.Fprintf(&b, "Dates: %s\n", strings.Join(booking.Dates, ", "))
	}
	if booking.Slot != "" {
		fmt.Fprintf(&b, "Time slots: %s\n", booking.Slot)
	}
	if booking.Message != "" {
		fmt.Fprintf(&b, "Notes: %s\n", booking.Message)
	}
	b.WriteString("\nBravo K9 Solutions\n")
	return b.String()
}
