// internal/booking/selection.go
package booking

import (
	"sort"
	"time"
)

// MaxSelectedSlots caps how many slots one session may select at once.
const MaxSelectedSlots = 16

// DateKeyLayout is the normalized calendar-date key format.
const DateKeyLayout = "2006-01-02"

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// DateKey normalizes a time to its calendar-date key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a "YYYY-MM-DD" key into a local midnight time.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, time.Local)
}

// Selection holds one session's chosen dates and slots. It is created at
// session start, mutated only through its methods, and discarded at session
// end. It is not safe for concurrent use; a session serializes its own
// mutations.
type Selection struct {
	dates        map[string]struct{}
	slots        map[string]struct{}
	lastSelected string
	clock        Clock
}

// NewSelection creates an empty selection. A nil clock uses real time.
func NewSelection(clock Clock) *Selection {
	if clock == nil {
		clock = realClock{}
	}
	return &Selection{
		dates: make(map[string]struct{}),
		slots: make(map[string]struct{}),
		clock: clock,
	}
}

// DateKeys returns the selected date keys in ascending order.
func (s *Selection) DateKeys() []string {
	keys := make([]string, 0, len(s.dates))
	for k := range s.dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasDate reports membership of a date key.
func (s *Selection) HasDate(key string) bool {
	_, ok := s.dates[key]
	return ok
}

// HasSlot reports membership of a slot id.
func (s *Selection) HasSlot(id string) bool {
	_, ok := s.slots[id]
	return ok
}

// SlotCount returns how many slot ids are selected, bookable or not.
func (s *Selection) SlotCount() int {
	return len(s.slots)
}

// LastSelected returns the tracked most-recently-toggled date key, or "" when
// no date is selected.
func (s *Selection) LastSelected() string {
	return s.lastSelected
}

// DateCount returns how many dates are selected.
func (s *Selection) DateCount() int {
	return len(s.dates)
}

// BookableSlots resolves the selected slot ids to bookable catalog slots,
// sorted by start time. Non-selectable ids are dropped.
func (s *Selection) BookableSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, len(s.slots))
	for id := range s.slots {
		slot, ok := SlotByID(id)
		if !ok || !slot.Bookable() {
			continue
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
	return slots
}

// today returns the current date with the time of day zeroed, local time.
func (s *Selection) today() time.Time {
	now := s.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func beforeDay(t, day time.Time) bool {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, day.Location()).Before(day)
}

// ToggleDate flips membership of a calendar date. Dates strictly before today
// are ignored and the selection is left untouched. Any accepted toggle clears
// the slot selection, which must be re-validated against availability for the
// new date set. Returns whether the selection changed.
func (s *Selection) ToggleDate(date time.Time) bool {
	if beforeDay(date, s.today()) {
		return false
	}
	key := DateKey(date)
	if _, ok := s.dates[key]; ok {
		delete(s.dates, key)
		if len(s.dates) == 0 {
			s.lastSelected = ""
		} else if s.lastSelected == key {
			s.lastSelected = s.DateKeys()[0]
		}
	} else {
		s.dates[key] = struct{}{}
		s.lastSelected = key
	}
	s.clearSlots()
	return true
}

// ToggleSlot flips membership of a slot id. Non-selectable slots, unknown ids,
// and slots already booked for any currently selected date are ignored.
// Adding past the cap leaves the selection unchanged and returns a
// CapacityError.
func (s *Selection) ToggleSlot(id string, avail *AvailabilityStore) error {
	slot, ok := SlotByID(id)
	if !ok || !slot.Bookable() {
		return nil
	}
	if avail != nil {
		for key := range s.dates {
			if avail.IsBooked(key, slot) {
				return nil
			}
		}
	}
	if _, ok := s.slots[id]; ok {
		delete(s.slots, id)
		return nil
	}
	if len(s.slots) >= MaxSelectedSlots {
		return &CapacityError{Limit: MaxSelectedSlots}
	}
	s.slots[id] = struct{}{}
	return nil
}

// SelectWeek adds every future-or-today date in the Sunday-start week around
// the last selected date. With no selection to anchor on, or with the whole
// week in the past, nothing is mutated and a NoticeError is returned.
func (s *Selection) SelectWeek() error {
	base := s.lastSelected
	if base == "" {
		if keys := s.DateKeys(); len(keys) > 0 {
			base = keys[0]
		}
	}
	if base == "" {
		return &NoticeError{Notice: Notice{
			Title:   "Pick a day",
			Message: "Select at least one day before choosing an entire week.",
		}}
	}
	baseDate, err := ParseDateKey(base)
	if err != nil {
		return err
	}
	weekStart := baseDate.AddDate(0, 0, -int(baseDate.Weekday()))
	var candidates []time.Time
	for i := 0; i < 7; i++ {
		candidates = append(candidates, weekStart.AddDate(0, 0, i))
	}
	if !s.addDates(candidates) {
		return &NoticeError{Notice: Notice{
			Title:   "No available days",
			Message: "That week is entirely in the past.",
		}}
	}
	return nil
}

// SelectMonth adds every future-or-today date of the given calendar month.
// A month entirely in the past mutates nothing and returns a NoticeError.
func (s *Selection) SelectMonth(year int, month time.Month) error {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lastDay := first.AddDate(0, 1, -1).Day()
	var candidates []time.Time
	for d := 1; d <= lastDay; d++ {
		candidates = append(candidates, time.Date(year, month, d, 0, 0, 0, 0, time.Local))
	}
	if !s.addDates(candidates) {
		return &NoticeError{Notice: Notice{
			Title:   "No available days",
			Message: "All days this month are in the past.",
		}}
	}
	return nil
}

// addDates bulk-adds the future-or-today candidates. When at least one date is
// added it clears the slot selection and points lastSelected at the earliest
// added date; otherwise the selection is untouched.
func (s *Selection) addDates(candidates []time.Time) bool {
	today := s.today()
	var added []string
	for _, date := range candidates {
		if beforeDay(date, today) {
			continue
		}
		added = append(added, DateKey(date))
	}
	if len(added) == 0 {
		return false
	}
	sort.Strings(added)
	for _, key := range added {
		s.dates[key] = struct{}{}
	}
	s.lastSelected = added[0]
	s.clearSlots()
	return true
}

// ClearDates empties the whole selection.
func (s *Selection) ClearDates() {
	s.dates = make(map[string]struct{})
	s.lastSelected = ""
	s.clearSlots()
}

func (s *Selection) clearSlots() {
	if len(s.slots) > 0 {
		s.slots = make(map[string]struct{})
	}
}
