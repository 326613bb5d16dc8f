package domain

import "time"

// Clock supplies the current instant. Services take a Clock so tests can pin time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock, reporting UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
