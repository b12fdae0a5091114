package service

import "time"

// Clock provides the current time. Allows for testable time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }
