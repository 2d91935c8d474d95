// internal/booking/availability.go
package booking

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

const bookedKeyPrefix = "booked:"

// KV is the injected durable key-value backend for the availability store.
// Implementations must survive process restart; see internal/db for the
// SQLite-backed one.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Contact holds the submitter fields persisted with every booked slot.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// AvailabilityStore records which (date, slot) pairs are already booked.
// It is shared across sessions and append-only: records are never removed.
// Two concurrent writers race with silent last-write-wins; the store does not
// detect conflicts beyond "already booked renders the slot disabled".
type AvailabilityStore struct {
	kv KV
}

// NewAvailabilityStore wraps the given key-value backend.
func NewAvailabilityStore(kv KV) *AvailabilityStore {
	return &AvailabilityStore{kv: kv}
}

func bookedKey(dateKey, slotKey string) string {
	return bookedKeyPrefix + dateKey + "@" + slotKey
}

// IsBooked reports whether a record exists under the canonical key or, when
// the slot has a legacy alias, under the legacy key. Backend read failures
// are logged and treated as not booked.
func (a *AvailabilityStore) IsBooked(dateKey string, slot TimeSlot) bool {
	keys := []string{bookedKey(dateKey, slot.ID)}
	if slot.LegacyKey != "" {
		keys = append(keys, bookedKey(dateKey, slot.LegacyKey))
	}
	for _, key := range keys {
		_, ok, err := a.kv.Get(key)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("Availability read failed")
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// RecordBooking writes the booked record under the canonical key and, when a
// legacy alias exists, under the legacy key as well, both carrying the same
// serialized contact payload. A later write to the same key overwrites
// silently.
func (a *AvailabilityStore) RecordBooking(dateKey string, slot TimeSlot, contact Contact) error {
	payload, err := json.Marshal(contact)
	if err != nil {
		return fmt.Errorf("encode booking contact: %w", err)
	}
	if err := a.kv.Set(bookedKey(dateKey, slot.ID), string(payload)); err != nil {
		return fmt.Errorf("record booking %s@%s: %w", dateKey, slot.ID, err)
	}
	if slot.LegacyKey != "" {
		if err := a.kv.Set(bookedKey(dateKey, slot.LegacyKey), string(payload)); err != nil {
			return fmt.Errorf("record legacy booking %s@%s: %w", dateKey, slot.LegacyKey, err)
		}
	}
	return nil
}
