package reset

import (
	"fmt"
	"math/bits"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/reset-timer/internal/internaltypes"
)

var _ cron.Schedule = RecurrenceRule{}

// robfig/cron marks fields written as "*" or "?" with the top bit.
const cronStarBit = 1 << 63

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Cron renders the rule as a standard 5-field expression, e.g. "0 1 * * 3".
func (r RecurrenceRule) Cron() string {
	r = r.normalized()
	return fmt.Sprintf("%d %d * * %d", r.Minute, r.Hour, int(r.Weekday))
}

// ParseCron converts a 5-field cron expression into a RecurrenceRule. The
// expression must pin exactly one minute, one hour and one weekday, leave
// day-of-month and month as "*", and use UTC if it names a time zone.
func ParseCron(expr string) (RecurrenceRule, error) {
	expr = strings.TrimSpace(expr)
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return RecurrenceRule{}, fmt.Errorf("%w: cron %q: %v", internaltypes.ErrInvalidRule, expr, err)
	}
	spec, ok := sched.(*cron.SpecSchedule)
	if !ok {
		return RecurrenceRule{}, fmt.Errorf("%w: cron %q is not a calendar schedule", internaltypes.ErrInvalidRule, expr)
	}
	if spec.Location != time.Local && spec.Location.String() != "UTC" {
		return RecurrenceRule{}, fmt.Errorf("%w: cron %q must be in UTC", internaltypes.ErrInvalidRule, expr)
	}
	if spec.Dom&cronStarBit == 0 || spec.Month&cronStarBit == 0 {
		return RecurrenceRule{}, fmt.Errorf("%w: cron %q must not restrict day of month or month", internaltypes.ErrInvalidRule, expr)
	}
	if bits.OnesCount64(spec.Minute) != 1 || bits.OnesCount64(spec.Hour) != 1 ||
		spec.Dow&cronStarBit != 0 || bits.OnesCount64(spec.Dow) != 1 {
		return RecurrenceRule{}, fmt.Errorf("%w: cron %q must name a single weekly time", internaltypes.ErrInvalidRule, expr)
	}

	return RecurrenceRule{
		Weekday: time.Weekday(bits.TrailingZeros64(spec.Dow)),
		Hour:    bits.TrailingZeros64(spec.Hour),
		Minute:  bits.TrailingZeros64(spec.Minute),
	}, nil
}
