package booking

import (
	"time"
)

// fixedClock pins "now" so past-date filtering is deterministic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// mapKV is an in-memory backend for availability store tests.
type mapKV struct {
	values map[string]string
}

func newMapKV() *mapKV {
	return &mapKV{values: make(map[string]string)}
}

func (m *mapKV) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mapKV) Set(key, value string) error {
	m.values[key] = value
	return nil
}

// testNow is a Wednesday mid-month, so the surrounding week and month both
// have past and future days.
var testNow = time.Date(2026, time.March, 11, 15, 30, 0, 0, time.Local)

func testSelection() *Selection {
	return NewSelection(fixedClock{now: testNow})
}

func day(yearDay int) time.Time {
	return time.Date(2026, time.March, yearDay, 0, 0, 0, 0, time.Local)
}
