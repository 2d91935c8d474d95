// internal/ics/ics.go

// Package ics assembles iCalendar documents for booked training sessions.
package ics

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentType is the MIME type of a rendered document.
const ContentType = "text/calendar"

const timestampLayout = "20060102T150405Z"

// Event is one VEVENT block. Times are normalized to UTC when rendered.
type Event struct {
	UID         string
	Stamp       time.Time
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
}

// NewEvent creates an event with a fresh unique identifier.
func NewEvent(stamp, start, end time.Time, summary, description string) Event {
	return Event{
		UID:         uuid.NewString(),
		Stamp:       stamp,
		Start:       start,
		End:         end,
		Summary:     summary,
		Description: description,
	}
}

// Document is a single VCALENDAR holding any number of events.
type Document struct {
	ProdID string
	Events []Event
}

// FormatTimestamp renders a UTC timestamp in basic iCalendar form with the
// seconds zeroed.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Minute).Format(timestampLayout)
}

// escapeText escapes TEXT property values per RFC 5545.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}

// Render produces the document text with CRLF line endings.
func (d Document) Render() string {
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:" + d.ProdID)
	for _, ev := range d.Events {
		writeLine("BEGIN:VEVENT")
		writeLine("UID:" + ev.UID)
		writeLine("DTSTAMP:" + FormatTimestamp(ev.Stamp))
		writeLine("DTSTART:" + FormatTimestamp(ev.Start))
		writeLine("DTEND:" + FormatTimestamp(ev.End))
		writeLine("SUMMARY:" + escapeText(ev.Summary))
		writeLine("DESCRIPTION:" + escapeText(ev.Description))
		writeLine("END:VEVENT")
	}
	writeLine("END:VCALENDAR")
	return b.String()
}
