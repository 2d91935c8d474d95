package scheduler

import (
	"strings"
	"testing"

	"github.com/bravok9/k9booking/internal/db"
)

func TestValidateCronExpr(t *testing.T) {
	valid := []string{"0 7 * * *", "*/15 * * * *", "30 18 * * 1-5"}
	for _, expr := range valid {
		if err := ValidateCronExpr(expr); err != nil {
			t.Errorf("ValidateCronExpr(%q) = %v", expr, err)
		}
	}

	invalid := []string{"", "   ", "not a cron", "0 7 * *", "61 * * * *"}
	for _, expr := range invalid {
		if err := ValidateCronExpr(expr); err == nil {
			t.Errorf("ValidateCronExpr(%q) accepted", expr)
		}
	}
}

func TestDigestBody(t *testing.T) {
	body := digestBody([]db.Booking{
		{
			Name:  "Dana Alvarez",
			Email: "dana@example.com",
			Phone: "555-0100",
			Slot:  "slot-2,slot-10",
			Dates: []string{"2026-03-12", "2026-03-13"},
		},
		{
			Name:  "Sam Ortiz",
			Email: "sam@example.com",
			Slot:  "slot-4",
			Dates: []string{"2026-03-14"},
		},
	})

	for _, want := range []string{
		"Booking requests in the last 24 hours: 2",
		"Dana Alvarez <dana@example.com> 555-0100",
		"dates: 2026-03-12, 2026-03-13",
		"slots: slot-2,slot-10",
		"Sam Ortiz <sam@example.com>\n",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("digest body missing %q:\n%s", want, body)
		}
	}
}
