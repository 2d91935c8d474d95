// internal/booking/totals.go
package booking

import (
	"fmt"
	"math"
	"strings"
)

// DefaultRatePerHour is the fixed hourly training rate in dollars.
const DefaultRatePerHour = 35

// Totals is derived from the current selection; it is recomputed on every
// change and never persisted.
type Totals struct {
	Slots         []TimeSlot
	Days          int
	MinutesPerDay int
	TotalMinutes  int
	Hours         float64
	// Amount is the dollar total, rounded half-up to 2 decimal places.
	Amount float64
}

// CalculateTotals computes the booking totals for the selection at the given
// hourly rate.
func CalculateTotals(sel *Selection, ratePerHour float64) Totals {
	slots := sel.BookableSlots()
	days := sel.DateCount()
	minutesPerDay := 0
	for _, slot := range slots {
		minutesPerDay += slot.DurationMinutes
	}
	totalMinutes := minutesPerDay * days
	return Totals{
		Slots:         slots,
		Days:          days,
		MinutesPerDay: minutesPerDay,
		TotalMinutes:  totalMinutes,
		Hours:         float64(totalMinutes) / 60,
		Amount:        math.Round(float64(totalMinutes)*ratePerHour/60*100) / 100,
	}
}

// Ready reports whether the selection prices to a payable amount.
func (t Totals) Ready() bool {
	return t.Amount > 0 && t.Days > 0 && len(t.Slots) > 0
}

// AmountCents returns the total in integer cents for the payment boundary.
func (t Totals) AmountCents() int64 {
	return int64(math.Round(t.Amount * 100))
}

// FormatCurrency renders a dollar amount for display.
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}
	return fmt.Sprintf("$%.2f", amount)
}

func formatQuantity(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func pluralize(value int, singular string) string {
	if value == 1 {
		return singular
	}
	return singular + "s"
}

// SummaryMessage renders the quick-pay total line. A selection missing dates
// or slots gets an explanatory message instead of a bare zero amount.
func (t Totals) SummaryMessage() string {
	hasDates := t.Days > 0
	hasSlots := len(t.Slots) > 0
	switch {
	case t.Ready():
		hourLabel := "hours"
		if math.Abs(t.Hours-1) < 1e-9 {
			hourLabel = "hour"
		}
		parts := []string{
			FormatCurrency(t.Amount),
			fmt.Sprintf("%s %s", formatQuantity(float64(t.Days)), pluralize(t.Days, "day")),
			fmt.Sprintf("%s %s", formatQuantity(t.Hours), hourLabel),
		}
		return strings.Join(parts, " • ")
	case !hasDates && !hasSlots:
		return "Select dates and time slots to calculate your total."
	case !hasDates:
		return "Add at least one date to calculate your total."
	default:
		return "Add at least one time slot to calculate your total."
	}
}
