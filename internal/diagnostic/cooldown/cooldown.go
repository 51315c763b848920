// Package cooldown enforces the minimum interval between two accepted
// submissions from the same normalized email.
package cooldown

import (
	"context"
	"time"
)

// DefaultWindow is the reference 7-day cooldown.
const DefaultWindow = 7 * 24 * time.Hour

// Result is the outcome of a check-and-record attempt.
type Result struct {
	Allowed       bool
	DaysRemaining int
}

// Store is the injected throttle backend. CheckAndRecord must be atomic
// with respect to concurrent calls for the same email: either the
// attempt is allowed and the timestamp recorded in one step, or it is
// denied and nothing is written.
type Store interface {
	CheckAndRecord(ctx context.Context, email string, now time.Time) (Result, error)
}

// daysRemaining converts the time left in the window to the whole-day
// countdown surfaced to the lead.
func daysRemaining(remaining time.Duration) int {
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}
