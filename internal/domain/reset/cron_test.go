package reset

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/reset-timer/internal/internaltypes"
)

func TestParseCron(t *testing.T) {
	tests := []struct {
		expr string
		want RecurrenceRule
	}{
		{"0 1 * * 3", wednesdayOneAM},
		{"30 12 * * TUE", RecurrenceRule{Weekday: time.Tuesday, Hour: 12, Minute: 30}},
		{"TZ=UTC 0 0 ? * 0", RecurrenceRule{Weekday: time.Sunday}},
	}
	for _, tt := range tests {
		got, err := ParseCron(tt.expr)
		if err != nil {
			t.Fatalf("%q: %v", tt.expr, err)
		}
		if got != tt.want {
			t.Fatalf("%q: want %+v, got %+v", tt.expr, tt.want, got)
		}
	}
}

func TestParseCron_Rejects(t *testing.T) {
	for _, expr := range []string{
		"",
		"not a cron",
		"0 1 * * *",
		"0 1 * * 1,3",
		"*/5 1 * * 3",
		"0 1 15 * 3",
		"0 1 * 6 3",
		"TZ=Europe/Berlin 0 1 * * 3",
	} {
		if _, err := ParseCron(expr); !errors.Is(err, internaltypes.ErrInvalidRule) {
			t.Fatalf("%q: want ErrInvalidRule, got %v", expr, err)
		}
	}
}

func TestCron_RoundTrip(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		rule := RecurrenceRule{Weekday: d, Hour: int(d) * 3, Minute: int(d) * 7}
		got, err := ParseCron(rule.Cron())
		if err != nil {
			t.Fatalf("%s: %v", rule.Cron(), err)
		}
		if got != rule {
			t.Fatalf("%s: want %+v, got %+v", rule.Cron(), rule, got)
		}
	}
}

func TestNextOccurrence_AgreesWithCronSchedule(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := utc(2023, time.January, 1, 0, 0, 0)
	for i := 0; i < 2000; i++ {
		rule := RecurrenceRule{
			Weekday: time.Weekday(rng.Intn(7)),
			Hour:    rng.Intn(24),
			Minute:  rng.Intn(60),
		}
		sched, err := cron.ParseStandard("TZ=UTC " + rule.Cron())
		if err != nil {
			t.Fatalf("%s: %v", rule.Cron(), err)
		}
		now := start.Add(time.Duration(rng.Int63n(int64(3 * 365 * 24 * time.Hour))))
		if i%10 == 0 {
			// land exactly on an occurrence
			now = NextOccurrence(rule, now)
		}
		want := sched.Next(now)
		if got := rule.Next(now); !got.Equal(want) {
			t.Fatalf("%s at %s: want %s, got %s", rule.Cron(), now, want, got)
		}
	}
}
