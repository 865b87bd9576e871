// Package extdatetime provides calendar and clock queries against the
// current instant.
//
// The first argument of every function names an IANA timezone. A missing,
// non-text, placeholder ("_") or unknown timezone falls back to UTC and logs
// a warning; it never fails the call.
package extdatetime

import (
	"log/slog"
	"sync"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/log"
	"github.com/ardnew/exprx/value"
)

// Clock returns the current instant. It is read once per function call.
var Clock = time.Now

// All returns every datetime function.
func All() []lang.Function {
	return []lang.Function{
		Day(), Month(), Year(), Weekday(), IsWeekday(), IsWeekend(), Time(),
	}
}

func calendar(name, help string, field func(time.Time) any) lang.Function {
	return lang.Function{
		Name:      name,
		Signature: "(tz)",
		Help:      help,
		Fn: func(args ...any) (any, error) {
			return field(now(args)), nil
		},
	}
}

// Day returns the definition for day(tz): the day of the month, 1-31.
func Day() lang.Function {
	return calendar("day", "day of the month (1-31)",
		func(t time.Time) any { return t.Day() })
}

// Month returns the definition for month(tz): the month of the year, 1-12.
func Month() lang.Function {
	return calendar("month", "month of the year (1-12)",
		func(t time.Time) any { return int(t.Month()) })
}

// Year returns the definition for year(tz).
func Year() lang.Function {
	return calendar("year", "calendar year",
		func(t time.Time) any { return t.Year() })
}

// Weekday returns the definition for weekday(tz): 1 is Monday, 7 is Sunday.
func Weekday() lang.Function {
	return calendar("weekday", "day of the week (1=Monday to 7=Sunday)",
		func(t time.Time) any { return isoWeekday(t) })
}

// IsWeekday returns the definition for is_weekday(tz).
func IsWeekday() lang.Function {
	return calendar("is_weekday", "report whether today is Monday through Friday",
		func(t time.Time) any { return isoWeekday(t) < 6 })
}

// IsWeekend returns the definition for is_weekend(tz).
func IsWeekend() lang.Function {
	return calendar("is_weekend", "report whether today is Saturday or Sunday",
		func(t time.Time) any { return isoWeekday(t) >= 6 })
}

// Time returns the definition for time(tz, unit).
//
// unit is one of h, hour, hours (default), m, minute, minutes, s, second or
// seconds. Any other unit selects the hour.
func Time() lang.Function {
	return lang.Function{
		Name:      "time",
		Signature: "(tz, unit)",
		Help:      "hour, minute or second of the current time",
		Fn: func(args ...any) (any, error) {
			t := now(args)

			var unit string
			if len(args) > 1 {
				unit = value.Stringify(args[1])
			}

			switch unit {
			case "m", "minute", "minutes":
				return t.Minute(), nil
			case "s", "second", "seconds":
				return t.Second(), nil
			default:
				return t.Hour(), nil
			}
		},
	}
}

func isoWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

func now(args []any) time.Time {
	return Clock().In(zone(args))
}

// zone resolves the timezone named by the first argument.
func zone(args []any) *time.Location {
	if len(args) == 0 {
		log.Warn("timezone missing, using UTC")

		return time.UTC
	}

	name, ok := args[0].(string)
	if !ok {
		log.Warn("timezone is not text, using UTC",
			slog.String("kind", value.Of(args[0]).String()))

		return time.UTC
	}

	loc, err := location(name)
	if err != nil {
		log.Warn("unknown timezone, using UTC",
			slog.String("tz", name))

		return time.UTC
	}

	return loc
}

var locations sync.Map // string → *time.Location

func location(name string) (*time.Location, error) {
	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location), nil
	}

	// LoadLocation maps "" to UTC and "Local" to the host zone; neither is
	// an IANA name.
	if name == "" || name == "Local" {
		return nil, errUnknownZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}

	locations.Store(name, loc)

	return loc, nil
}

var errUnknownZone = lang.NewError("unknown timezone")
