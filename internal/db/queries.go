// internal/db/queries.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx so queries run inside or outside
// a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries bundles the hand-written SQL for the booking site.
type Queries struct {
	db DBTX
}

// NewQueries binds queries to a database or transaction.
func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// Booking is one stored booking submission.
type Booking struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Slot      string    `json:"slot"`
	Dates     []string  `json:"dates"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateBookingParams carries the fields of a new booking row.
type CreateBookingParams struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Slot    string
	Dates   []string
}

// CreateBooking inserts a booking submission and returns the stored row.
func (q *Queries) CreateBooking(ctx context.Context, params CreateBookingParams) (Booking, error) {
	dates, err := json.Marshal(params.Dates)
	if err != nil {
		return Booking{}, fmt.Errorf("encode booking dates: %w", err)
	}

	now := time.Now().UTC()
	result, err := q.db.ExecContext(ctx,
		`INSERT INTO bookings (name, email, phone, message, slot, dates, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		params.Name, params.Email, params.Phone, params.Message, params.Slot, string(dates), now,
	)
	if err != nil {
		return Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Booking{}, fmt.Errorf("booking id: %w", err)
	}

	return Booking{
		ID:        id,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Message:   params.Message,
		Slot:      params.Slot,
		Dates:     params.Dates,
		CreatedAt: now,
	}, nil
}

// ListRecentBookings returns up to limit bookings, newest first.
func (q *Queries) ListRecentBookings(ctx context.Context, limit int64) ([]Booking, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, email, phone, message, slot, dates, created_at
		 FROM bookings
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		var dates string
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Message, &b.Slot, &dates, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		if dates != "" {
			if err := json.Unmarshal([]byte(dates), &b.Dates); err != nil {
				return nil, fmt.Errorf("decode booking dates: %w", err)
			}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

// ListBookingsSince returns bookings created at or after the cutoff, newest
// first. Used by the daily digest job.
func (q *Queries) ListBookingsSince(ctx context.Context, cutoff time.Time) ([]Booking, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, email, phone, message, slot, dates, created_at
		 FROM bookings
		 WHERE created_at >= ?
		 ORDER BY created_at DESC, id DESC`,
		cutoff.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings since: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		var dates string
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Message, &b.Slot, &dates, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		if dates != "" {
			if err := json.Unmarshal([]byte(dates), &b.Dates); err != nil {
				return nil, fmt.Errorf("decode booking dates: %w", err)
			}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

// GetValue reads one key from the kv table.
func (q *Queries) GetValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := q.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get kv %q: %w", key, err)
	}
	return value, true, nil
}

// SetValue upserts one key in the kv table. A later write to the same key
// overwrites silently.
func (q *Queries) SetValue(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set kv %q: %w", key, err)
	}
	return nil
}
