// internal/booking/calendar.go
package booking

import (
	"fmt"
	"time"
)

// Slot grid disabled reasons, shown as the cell's tooltip.
const (
	ReasonLunchBreak    = "Lunch break"
	ReasonAlreadyBooked = "Already booked"
)

// DayCell is one day button of the month grid.
type DayCell struct {
	Day      int
	Key      string
	Disabled bool
	Selected bool
}

// MonthGrid is the render model for one displayed month.
type MonthGrid struct {
	Title string
	// LeadingBlanks is the number of empty cells before the 1st of the
	// month, equal to its weekday index (Sunday-start).
	LeadingBlanks int
	Days          []DayCell
}

// BuildMonthGrid produces the month grid for the displayed year and month.
// Days strictly before today render disabled; selected state mirrors the
// selection's date membership.
func BuildMonthGrid(year int, month time.Month, today time.Time, sel *Selection) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lastDay := first.AddDate(0, 1, -1).Day()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	grid := MonthGrid{
		Title:         fmt.Sprintf("%s %d", month.String(), year),
		LeadingBlanks: int(first.Weekday()),
	}
	for d := 1; d <= lastDay; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		key := DateKey(date)
		grid.Days = append(grid.Days, DayCell{
			Day:      d,
			Key:      key,
			Disabled: date.Before(today),
			Selected: sel != nil && sel.HasDate(key),
		})
	}
	return grid
}

// SlotCell is one entry of the slot grid.
type SlotCell struct {
	Slot     TimeSlot
	Disabled bool
	// Reason is set when the cell is disabled: lunch break or already
	// booked for one of the selected dates.
	Reason   string
	Selected bool
}

// BuildSlotGrid produces one cell per catalog slot for the current selection.
// A slot already booked for any selected date renders disabled; the grid is
// rebuilt after every selection mutation and month navigation.
func BuildSlotGrid(sel *Selection, avail *AvailabilityStore) []SlotCell {
	cells := make([]SlotCell, 0, len(catalog))
	for _, slot := range catalog {
		cell := SlotCell{Slot: slot}
		switch {
		case !slot.Bookable():
			cell.Disabled = true
			cell.Reason = ReasonLunchBreak
		case slotBookedForSelection(sel, avail, slot):
			cell.Disabled = true
			cell.Reason = ReasonAlreadyBooked
		default:
			cell.Selected = sel != nil && sel.HasSlot(slot.ID)
		}
		cells = append(cells, cell)
	}
	return cells
}

func slotBookedForSelection(sel *Selection, avail *AvailabilityStore, slot TimeSlot) bool {
	if sel == nil || avail == nil {
		return false
	}
	for _, key := range sel.DateKeys() {
		if avail.IsBooked(key, slot) {
			return true
		}
	}
	return false
}
