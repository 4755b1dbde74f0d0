package types

import "time"

// Clock is the time source used for every freshness decision.
// Tests swap in a manual clock so TTL boundaries can be hit exactly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
