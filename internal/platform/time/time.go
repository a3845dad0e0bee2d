// Package time holds small helpers for optional timestamps
package time

import "time"

// Ptr returns a pointer to t, or nil for the zero time
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

