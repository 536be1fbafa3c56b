package reset

import (
	"fmt"
	"time"
)

// Countdown is a non-negative span split into display units.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Remaining splits target-now into days, hours, minutes and seconds. Fractions
// of a second are dropped. A target at or before now yields the zero
// Countdown; callers should compute a fresh NextOccurrence in that case.
func Remaining(target, now time.Time) Countdown {
	diff := target.Sub(now)
	if diff <= 0 {
		return Countdown{}
	}
	secs := int64(diff / time.Second)
	return Countdown{
		Days:    int(secs / 86400),
		Hours:   int(secs % 86400 / 3600),
		Minutes: int(secs % 3600 / 60),
		Seconds: int(secs % 60),
	}
}

func (c Countdown) IsZero() bool {
	return c == Countdown{}
}

func (c Countdown) Total() time.Duration {
	return time.Duration(c.Days)*24*time.Hour +
		time.Duration(c.Hours)*time.Hour +
		time.Duration(c.Minutes)*time.Minute +
		time.Duration(c.Seconds)*time.Second
}

// Text is the short form used in link previews. It drops the smallest unit
// once days are shown and omits leading zero units.
func (c Countdown) Text() string {
	switch {
	case c.Days > 0:
		return fmt.Sprintf("%dd %dh %dm", c.Days, c.Hours, c.Minutes)
	case c.Hours > 0:
		return fmt.Sprintf("%dh %dm %ds", c.Hours, c.Minutes, c.Seconds)
	case c.Minutes > 0:
		return fmt.Sprintf("%dm %ds", c.Minutes, c.Seconds)
	default:
		return fmt.Sprintf("%ds", c.Seconds)
	}
}
