// internal/booking/errors.go
package booking

import "fmt"

// Notice is a transient user-facing message. Client-visible failures are
// reported as notices, never surfaced as raw errors.
type Notice struct {
	Title   string
	Message string
}

// NoticeError is an operation failure that carries the notice to show the
// user. The operation it came from performed no state mutation.
type NoticeError struct {
	Notice Notice
}

func (e *NoticeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Notice.Title, e.Notice.Message)
}

// CapacityError reports that adding a slot would exceed the selection cap.
// The selection is left unchanged.
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("slot selection limit of %d reached", e.Limit)
}

// UserNotice returns the notice shown when the cap is hit.
func (e *CapacityError) UserNotice() Notice {
	return Notice{
		Title:   "Limit reached",
		Message: fmt.Sprintf("You can choose up to %d time slots per day.", e.Limit),
	}
}

// ValidationError rejects a submission before any store write happens.
type ValidationError struct {
	Field   string
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UserNotice returns the notice naming the missing item.
func (e *ValidationError) UserNotice() Notice {
	return Notice{Title: e.Title, Message: e.Message}
}
