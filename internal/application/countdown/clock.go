package countdown

import "time"

// Clock supplies "now". Handlers take it as a dependency so tests can pin time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
