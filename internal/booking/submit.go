// internal/booking/submit.go
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bravok9/k9booking/internal/ics"
)

const (
	calendarProdID   = "-//Bravo K9 Solutions//EN"
	calendarFilename = "bravo-k9-consultation.ics"
	eventSummaryBase = "Dog Training Session"

	forwardTimeout = 5 * time.Second
)

// ForwardPayload is the booking payload sent to the bookings API after a
// completed submission.
type ForwardPayload struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Message string   `json:"message"`
	Slot    string   `json:"slot"`
	Dates   []string `json:"dates"`
}

// Forwarder delivers a completed booking to the backend. Delivery is
// best-effort; failures never revert a completed submission.
type Forwarder interface {
	Forward(ctx context.Context, payload ForwardPayload) error
}

// SubmitRequest carries the contact form fields.
type SubmitRequest struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// SubmitResult is returned on a completed submission.
type SubmitResult struct {
	// Calendar is the downloadable interchange document, one event per
	// booked (date, slot) pair.
	Calendar ics.Document
	Filename string
	Records  int
	Notice   Notice
}

// Submitter runs the validate, persist, notify sequence for one confirm
// action.
type Submitter struct {
	avail     *AvailabilityStore
	forwarder Forwarder
	clock     Clock
}

// NewSubmitter wires a submitter. The forwarder may be nil; a nil clock uses
// real time.
func NewSubmitter(avail *AvailabilityStore, forwarder Forwarder, clock Clock) *Submitter {
	if clock == nil {
		clock = realClock{}
	}
	return &Submitter{avail: avail, forwarder: forwarder, clock: clock}
}

// Submit validates the selection and contact fields, records every
// (date, slot) pair in the availability store, and assembles the calendar
// document. Validation happens fully before any write: a rejected submission
// performs zero writes. On success the selection is cleared and the payload
// is forwarded to the bookings API in a detached best-effort task.
func (s *Submitter) Submit(sel *Selection, req SubmitRequest) (*SubmitResult, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	notes := strings.TrimSpace(req.Notes)

	if sel.DateCount() == 0 {
		return nil, &ValidationError{
			Field:   "date",
			Title:   "Select a date",
			Message: "Please choose a date on the calendar.",
		}
	}
	if sel.SlotCount() == 0 {
		return nil, &ValidationError{
			Field:   "slot",
			Title:   "Select a time",
			Message: "Pick at least one time slot.",
		}
	}
	if name == "" || email == "" || phone == "" {
		return nil, &ValidationError{
			Field:   "contact",
			Title:   "Missing info",
			Message: "Name, email, and phone are required.",
		}
	}
	slots := sel.BookableSlots()
	if len(slots) == 0 {
		return nil, &ValidationError{
			Field:   "slot",
			Title:   "Select a time",
			Message: "Pick at least one available slot.",
		}
	}

	dateKeys := sel.DateKeys()
	contact := Contact{Name: name, Email: email, Phone: phone, Notes: notes}
	now := s.clock.Now()

	doc := ics.Document{ProdID: calendarProdID}
	records := 0
	for _, dateKey := range dateKeys {
		day, err := ParseDateKey(dateKey)
		if err != nil {
			return nil, fmt.Errorf("parse selected date %q: %w", dateKey, err)
		}
		for _, slot := range slots {
			if err := s.avail.RecordBooking(dateKey, slot, contact); err != nil {
				return nil, err
			}
			records++

			start, err := slotStart(day, slot)
			if err != nil {
				return nil, err
			}
			end := start.Add(time.Duration(slot.DurationMinutes) * time.Minute)
			description := strings.Join([]string{
				name, email, phone, strings.ReplaceAll(notes, "\n", " "),
			}, "\n")
			doc.Events = append(doc.Events, ics.NewEvent(
				now, start, end,
				fmt.Sprintf("%s — %s", eventSummaryBase, slot.Label),
				description,
			))
		}
	}

	sel.ClearDates()

	payload := ForwardPayload{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: notes,
		Slot:    joinSlotIDs(slots),
		Dates:   dateKeys,
	}
	s.forward(payload)

	return &SubmitResult{
		Calendar: doc,
		Filename: calendarFilename,
		Records:  records,
		Notice: Notice{
			Title:   "Request sent ✅",
			Message: "We’ll be in touch to confirm. A calendar file has been downloaded.",
		},
	}, nil
}

// forward sends the payload to the bookings API without awaiting the result.
// Failures are logged only; local persistence and the downloaded calendar
// file remain the source of truth for a completed request.
func (s *Submitter) forward(payload ForwardPayload) {
	if s.forwarder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
		defer cancel()
		if err := s.forwarder.Forward(ctx, payload); err != nil {
			log.Warn().Err(err).Msg("Unable to submit booking to server")
		}
	}()
}

func slotStart(day time.Time, slot TimeSlot) (time.Time, error) {
	parsed, err := time.Parse("15:04", slot.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot start %q: %w", slot.Start, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

func joinSlotIDs(slots []TimeSlot) string {
	ids := make([]string, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ID
	}
	return strings.Join(ids, ",")
}
