package bookings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	appdb "github.com/bravok9/k9booking/internal/db"
	"github.com/bravok9/k9booking/internal/testutil"
)

func setupHandlers(t *testing.T) *appdb.DB {
	t.Helper()
	database := testutil.NewTestDB(t)
	InitHandlers(database, nil, "")
	t.Cleanup(func() { InitHandlers(nil, nil, "") })
	return database
}

func postBooking(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	HandleBookings(w, req)
	return w
}

func TestHandleBookingCreate(t *testing.T) {
	setupHandlers(t)

	w := postBooking(t, `{
		"name": "Dana Alvarez",
		"email": "dana@example.com",
		"phone": "+1 212 555 0100",
		"message": "Two energetic labs",
		"slot": "slot-2,slot-10",
		"dates": ["2026-03-12", "2026-03-13"]
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var saved appdb.Booking
	if err := json.NewDecoder(w.Body).Decode(&saved); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("response missing booking id")
	}
	if saved.Name != "Dana Alvarez" || len(saved.Dates) != 2 {
		t.Fatalf("saved = %+v", saved)
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("response missing createdAt")
	}
}

func TestHandleBookingCreateValidation(t *testing.T) {
	setupHandlers(t)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{`, "Invalid JSON body."},
		{"missing name", `{"email":"a@b.com"}`, "name is required"},
		{"missing email", `{"name":"Dana"}`, "a valid email is required"},
		{"bad email", `{"name":"Dana","email":"nope"}`, "a valid email is required"},
		{"bad phone", `{"name":"Dana","email":"a@b.com","phone":"12"}`, "phone must be a valid phone number"},
		{"bad date", `{"name":"Dana","email":"a@b.com","dates":["March 12"]}`, "dates must be YYYY-MM-DD keys"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postBooking(t, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			var resp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp["error"] != tc.want {
				t.Fatalf("error = %q, want %q", resp["error"], tc.want)
			}
		})
	}
}

func TestHandleBookingCreateWithoutDatabase(t *testing.T) {
	InitHandlers(nil, nil, "")

	w := postBooking(t, `{"name":"Dana","email":"a@b.com"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Database not configured.") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestHandleBookingListNewestFirst(t *testing.T) {
	setupHandlers(t)

	for _, name := range []string{"First", "Second"} {
		w := postBooking(t, `{"name":"`+name+`","email":"a@b.com","dates":["2026-03-12"]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("create status = %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	w := httptest.NewRecorder()
	HandleBookings(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var bookings []appdb.Booking
	if err := json.NewDecoder(w.Body).Decode(&bookings); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("bookings = %d, want 2", len(bookings))
	}
	if bookings[0].Name != "Second" {
		t.Fatalf("order broken: first entry %q", bookings[0].Name)
	}
}

func TestHandleBookingListEmptyIsArray(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	w := httptest.NewRecorder()
	HandleBookings(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want empty array", got)
	}
}

func TestHandleBookingListAdminToken(t *testing.T) {
	database := testutil.NewTestDB(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	InitHandlers(database, nil, string(hash))
	t.Cleanup(func() { InitHandlers(nil, nil, "") })

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	w := httptest.NewRecorder()
	HandleBookings(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	HandleBookings(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status with wrong token = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer letmein")
	w = httptest.NewRecorder()
	HandleBookings(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status with valid token = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestHandleBookingsMethodNotAllowed(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings", nil)
	w := httptest.NewRecorder()
	HandleBookings(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
}
