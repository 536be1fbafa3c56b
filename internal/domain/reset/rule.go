package reset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/reset-timer/internal/internaltypes"
)

// RecurrenceRule is a weekly event at a fixed weekday and time of day, in UTC.
type RecurrenceRule struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

func (r RecurrenceRule) Validate() error {
	if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range 0..6", internaltypes.ErrInvalidRule, int(r.Weekday))
	}
	if r.Hour < 0 || r.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range 0..23", internaltypes.ErrInvalidRule, r.Hour)
	}
	if r.Minute < 0 || r.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range 0..59", internaltypes.ErrInvalidRule, r.Minute)
	}
	return nil
}

// String renders the rule the way the page shows it, e.g. "Wednesday 01:00 UTC".
func (r RecurrenceRule) String() string {
	r = r.normalized()
	return fmt.Sprintf("%s %s UTC", r.Weekday, FormatClock(r.Hour, r.Minute))
}

// normalized folds out-of-range fields back into range so NextOccurrence is
// total. Configuration loading rejects such rules before they get here.
func (r RecurrenceRule) normalized() RecurrenceRule {
	return RecurrenceRule{
		Weekday: time.Weekday(mod(int(r.Weekday), 7)),
		Hour:    mod(r.Hour, 24),
		Minute:  mod(r.Minute, 60),
	}
}

func mod(x, n int) int {
	return ((x % n) + n) % n
}

// NextOccurrence returns the first instant strictly after now that matches rule.
// The result is never more than 7 days after now.
func NextOccurrence(rule RecurrenceRule, now time.Time) time.Time {
	rule = rule.normalized()
	now = now.UTC()

	next := time.Date(now.Year(), now.Month(), now.Day(), rule.Hour, rule.Minute, 0, 0, time.UTC)
	delta := int(rule.Weekday) - int(next.Weekday())
	if delta < 0 || (delta == 0 && !now.Before(next)) {
		delta += 7
	}
	return next.AddDate(0, 0, delta)
}

// Next makes RecurrenceRule usable wherever a cron.Schedule is expected.
func (r RecurrenceRule) Next(now time.Time) time.Time {
	return NextOccurrence(r, now)
}

// FormatClock returns HH:MM.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseWeekday accepts a number (0 = Sunday) or an English day name, full or
// abbreviated to three letters.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty weekday", internaltypes.ErrInvalidRule)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("%w: weekday %d out of range 0..6", internaltypes.ErrInvalidRule, n)
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", internaltypes.ErrInvalidRule, s)
}
