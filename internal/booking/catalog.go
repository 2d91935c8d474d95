// internal/booking/catalog.go
package booking

// TimeSlot is one fixed time-of-day interval offered for booking. The catalog
// is defined at startup and never mutated.
type TimeSlot struct {
	ID              string
	Label           string
	Start           string // "HH:MM", 24-hour
	DurationMinutes int
	// LegacyKey is the display-string key older records were stored under.
	// Empty means no legacy alias exists.
	LegacyKey string
	// Selectable is false for placeholder slots (lunch) that can never be
	// booked or charged.
	Selectable bool
}

// Bookable reports whether the slot may be selected and charged.
func (s TimeSlot) Bookable() bool {
	return s.Selectable
}

var catalog = []TimeSlot{
	{ID: "slot-1", Label: "4:00 AM", Start: "04:00", DurationMinutes: 60, LegacyKey: "4:00 AM", Selectable: true},
	{ID: "slot-2", Label: "5:00 AM", Start: "05:00", DurationMinutes: 60, LegacyKey: "5:00 AM", Selectable: true},
	{ID: "slot-3", Label: "6:00 AM", Start: "06:00", DurationMinutes: 60, LegacyKey: "6:00 AM", Selectable: true},
	{ID: "slot-4", Label: "7:00 AM", Start: "07:00", DurationMinutes: 60, LegacyKey: "7:00 AM", Selectable: true},
	{ID: "slot-5", Label: "8:00 AM", Start: "08:00", DurationMinutes: 60, LegacyKey: "8:00 AM", Selectable: true},
	{ID: "slot-6", Label: "9:00 AM", Start: "09:00", DurationMinutes: 60, LegacyKey: "9:00 AM", Selectable: true},
	{ID: "slot-7", Label: "10:00 AM", Start: "10:00", DurationMinutes: 60, LegacyKey: "10:00 AM", Selectable: true},
	{ID: "slot-8", Label: "11:00 AM", Start: "11:00", DurationMinutes: 60, LegacyKey: "11:00 AM", Selectable: true},
	{ID: "slot-9", Label: "12:00 PM - 12:30 PM (Lunch)", Start: "12:00", DurationMinutes: 30, LegacyKey: "12:00 PM"},
	{ID: "slot-10", Label: "1:00 PM", Start: "13:00", DurationMinutes: 60, LegacyKey: "1:00 PM", Selectable: true},
	{ID: "slot-11", Label: "2:00 PM", Start: "14:00", DurationMinutes: 60, LegacyKey: "2:00 PM", Selectable: true},
	{ID: "slot-12", Label: "3:00 PM", Start: "15:00", DurationMinutes: 60, LegacyKey: "3:00 PM", Selectable: true},
	{ID: "slot-13", Label: "4:00 PM", Start: "16:00", DurationMinutes: 60, LegacyKey: "4:00 PM", Selectable: true},
	{ID: "slot-14", Label: "5:00 PM", Start: "17:00", DurationMinutes: 60, LegacyKey: "5:00 PM", Selectable: true},
	{ID: "slot-15", Label: "6:00 PM", Start: "18:00", DurationMinutes: 60, LegacyKey: "6:00 PM", Selectable: true},
	{ID: "slot-16", Label: "7:00 PM", Start: "19:00", DurationMinutes: 60, LegacyKey: "7:00 PM", Selectable: true},
}

// Slots returns the catalog in ascending start-time order. Callers must not
// modify the returned slice.
func Slots() []TimeSlot {
	return catalog
}

// SlotByID looks up a catalog slot by its id.
func SlotByID(id string) (TimeSlot, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}
