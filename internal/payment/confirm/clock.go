package confirm

import "time"

// Clock abstracts timer creation so tests can drive the poll loop without
// real delays.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
