package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bravok9/k9booking/internal/config"
	"github.com/bravok9/k9booking/internal/db"
	"github.com/bravok9/k9booking/internal/email"
)

const digestJobTimeout = 2 * time.Minute

// RegisterDigestJob registers the daily job that emails the site owner a
// summary of the last day's booking requests.
func RegisterDigestJob(database *db.DB, sender email.EmailSender, cfg config.DigestConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if database == nil {
		return fmt.Errorf("digest job requires database")
	}
	if sender == nil {
		return fmt.Errorf("digest job requires an email sender")
	}

	jobName := "bookings_digest"
	jobLogger := log.With().
		Str("component", "bookings_digest_job").
		Str("job_name", jobName).
		Str("cron", cfg.Schedule).
		Logger()

	_, err := AddJob(jobName, cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestJobTimeout)
		defer cancel()

		cutoff := time.Now().UTC().Add(-24 * time.Hour)
		bookings, err := database.Queries.ListBookingsSince(ctx, cutoff)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Failed to load bookings for digest")
			return
		}
		if len(bookings) == 0 {
			jobLogger.Debug().Msg("Digest skipped: no new bookings")
			return
		}

		subject := fmt.Sprintf("Bravo K9 bookings digest: %d new request(s)", len(bookings))
		if err := sender.Send(ctx, cfg.Recipient, subject, digestBody(bookings)); err != nil {
			jobLogger.Error().Err(err).Str("recipient", cfg.Recipient).Msg("Failed to send digest")
			return
		}
		jobLogger.Info().Int("bookings", len(bookings)).Msg("Digest sent")
	})
	return err
}

func digestBody(bookings []db.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking requests in the last 24 hours: %d\n\n", len(bookings))
	for _, booking := range bookings {
		fmt.Fprintf(&b, "- %s <%s>", booking.Name, booking.Email)
		if booking.Phone != "" {
			fmt.Fprintf(&b, " %s", booking.Phone)
		}
		fmt.Fprintf(&b, "\n  dates: %s\n  slots: %s\n",
			strings.Join(booking.Dates, ", "), booking.Slot)
	}
	return b.String()
}
