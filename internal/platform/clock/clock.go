package clock

import "time"

// Clock abstracts wall time so countdown ticks and retention math stay
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
