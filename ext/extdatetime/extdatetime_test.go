package extdatetime

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ardnew/exprx/log"
)

// fixed is Saturday 2024-03-09 23:30:15 UTC: Sunday 08:30 in Tokyo and
// Saturday 18:30 in New York.
var fixed = time.Date(2024, time.March, 9, 23, 30, 15, 0, time.UTC)

func freeze(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	prevClock, prevLog := Clock, log.Default()
	Clock = func() time.Time { return fixed }
	log.SetDefault(log.Make(&buf, log.WithTimeLayout("none")))

	t.Cleanup(func() {
		Clock = prevClock
		log.SetDefault(prevLog)
	})

	return &buf
}

func call(t *testing.T, name string, args ...any) any {
	t.Helper()

	for _, fn := range All() {
		if fn.Name == name {
			got, err := fn.Fn(args...)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}

			return got
		}
	}

	t.Fatalf("no function %q", name)

	return nil
}

func TestCalendar(t *testing.T) {
	freeze(t)

	tests := []struct {
		name string
		args []any
		want any
	}{
		{"day", []any{"UTC"}, 9},
		{"day", []any{"Asia/Tokyo"}, 10},
		{"month", []any{"UTC"}, 3},
		{"year", []any{"America/New_York"}, 2024},
		{"weekday", []any{"UTC"}, 6},
		{"weekday", []any{"Asia/Tokyo"}, 7},
		{"is_weekday", []any{"UTC"}, false},
		{"is_weekend", []any{"UTC"}, true},
		{"is_weekend", []any{"Asia/Tokyo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := call(t, tt.name, tt.args...); got != tt.want {
				t.Errorf("%s(%v) = %v, want %v", tt.name, tt.args, got, tt.want)
			}
		})
	}
}

func TestIsoWeekday(t *testing.T) {
	monday := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)

	for i := range 7 {
		day := monday.AddDate(0, 0, i)
		if got := isoWeekday(day); got != i+1 {
			t.Errorf("isoWeekday(%s) = %d, want %d", day.Weekday(), got, i+1)
		}
	}
}

func TestTime_Units(t *testing.T) {
	freeze(t)

	tests := []struct {
		args []any
		want int
	}{
		{[]any{"UTC", "h"}, 23},
		{[]any{"UTC", "hour"}, 23},
		{[]any{"UTC", "hours"}, 23},
		{[]any{"UTC", "m"}, 30},
		{[]any{"UTC", "minute"}, 30},
		{[]any{"UTC", "minutes"}, 30},
		{[]any{"UTC", "s"}, 15},
		{[]any{"UTC", "second"}, 15},
		{[]any{"UTC", "seconds"}, 15},
		{[]any{"UTC", "fortnight"}, 23},
		{[]any{"UTC", 42}, 23},
		{[]any{"America/New_York", "h"}, 18},
		{[]any{"Asia/Kolkata", "m"}, 0},
		{[]any{"Asia/Tokyo"}, 8},
		{nil, 23},
	}

	for _, tt := range tests {
		if got := call(t, "time", tt.args...); got != tt.want {
			t.Errorf("time(%v) = %v, want %d", tt.args, got, tt.want)
		}
	}
}

func TestZone_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		args []any
		warn string
	}{
		{"missing", nil, "timezone missing"},
		{"not text", []any{42}, "timezone is not text"},
		{"placeholder", []any{"_"}, "unknown timezone"},
		{"empty", []any{""}, "unknown timezone"},
		{"local", []any{"Local"}, "unknown timezone"},
		{"bogus", []any{"Mars/Olympus_Mons"}, "unknown timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := freeze(t)

			if got := call(t, "weekday", tt.args...); got != 6 {
				t.Errorf("weekday(%v) = %v, want UTC weekday 6", tt.args, got)
			}

			if out := buf.String(); !strings.Contains(out, "level=WARN") ||
				!strings.Contains(out, tt.warn) {
				t.Errorf("log %q missing warning %q", out, tt.warn)
			}
		})
	}
}

func TestZone_KnownDoesNotWarn(t *testing.T) {
	buf := freeze(t)

	call(t, "day", "Europe/Berlin")
	call(t, "day", "Europe/Berlin")

	if buf.Len() != 0 {
		t.Errorf("unexpected log output %q", buf.String())
	}
}

func TestClock_ReadPerCall(t *testing.T) {
	freeze(t)

	calls := 0
	Clock = func() time.Time {
		calls++

		return fixed
	}

	call(t, "year", "UTC")
	call(t, "year", "UTC")

	if calls != 2 {
		t.Errorf("Clock read %d times, want 2", calls)
	}
}
