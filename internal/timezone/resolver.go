// Package timezone converts a tenant's local calendar day into exact UTC
// boundary instants for inclusive date-range filters.
//
// Clinics run in their own IANA timezone, so "records created on
// 2026-01-30" means the tenant's wall-clock day, not the UTC day. Fixed
// offset arithmetic is wrong near DST transitions and for zones the
// caller does not know in advance; the resolver instead searches for the
// UTC instant whose formatted local reading matches the requested
// wall-clock boundary.
package timezone

import (
	"strconv"
	"strings"
	"time"

	dErrors "daybound/pkg/domain-errors"
)

// TimestampLayout is the canonical output format: ISO-8601 UTC with
// millisecond precision, e.g. "2026-01-29T14:00:00.000Z".
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// searchWindow bounds the binary search around the rough estimate. Real
// UTC offsets span -12:00 to +14:00, so ±15 hours always brackets the
// answer, including half- and quarter-hour zones.
const searchWindow = 15 * time.Hour

// searchPrecision terminates the search. Timezone transitions land on
// whole minutes, so resolving the window below one minute pins the
// boundary instant exactly; seconds and milliseconds are authored
// afterwards, not searched for.
const searchPrecision = time.Minute

// Boundary selects which edge of the local calendar day to resolve.
type Boundary int

const (
	// BoundaryStart is 00:00:00.000 local wall-clock time.
	BoundaryStart Boundary = iota
	// BoundaryEnd is 23:59:59.999 local wall-clock time.
	BoundaryEnd
)

// LocalDate is an unambiguous wall-clock calendar date with no attached
// time of day. It is the only date representation the resolver accepts;
// callers holding a time.Time must decide which calendar day it means
// before crossing this boundary.
type LocalDate struct {
	Year  int
	Month int
	Day   int
}

// Before reports whether d falls on an earlier calendar day than other.
func (d LocalDate) Before(other LocalDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// ParseLocalDate parses a "YYYY-MM-DD" string. The shape and numeric
// ranges are checked (month 1-12, day 1-31); day-in-month is not
// re-validated, matching the platform's calendar normalization.
func ParseLocalDate(s string) (LocalDate, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return LocalDate{}, dErrors.Newf(dErrors.CodeInvalidInput, "date must be YYYY-MM-DD, got %q", s)
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return LocalDate{}, dErrors.Newf(dErrors.CodeInvalidInput, "date must be YYYY-MM-DD, got %q", s)
	}
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return LocalDate{}, dErrors.Newf(dErrors.CodeInvalidInput, "date out of range: %q", s)
	}
	return LocalDate{Year: year, Month: month, Day: day}, nil
}

// LocalDateToUTCTimestamp resolves the start or end boundary of a local
// calendar day in the named IANA timezone to the equivalent UTC instant.
//
// A malformed date or empty timezone yields an invalid-input domain
// error. An identifier unknown to the platform's timezone database
// surfaces the time.LoadLocation error untranslated so callers see the
// original diagnostic. For any recognized zone the resolution itself is
// total: a bounded deterministic search that also converges on DST days
// where the requested wall-clock time is skipped or repeated.
func LocalDateToUTCTimestamp(date, tz string, boundary Boundary) (string, error) {
	if strings.TrimSpace(tz) == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "timezone is required")
	}
	d, err := ParseLocalDate(date)
	if err != nil {
		return "", err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", err
	}
	return resolve(d, loc, boundary).Format(TimestampLayout), nil
}

// LocalDateToUTCRange resolves an inclusive [from, to] local date range to
// its UTC window: start boundary of from, end boundary of to. Callers
// feed the pair into created_from_utc / created_to_utc query parameters.
func LocalDateToUTCRange(from, to, tz string) (startUTC, endUTC string, err error) {
	startUTC, err = LocalDateToUTCTimestamp(from, tz, BoundaryStart)
	if err != nil {
		return "", "", err
	}
	endUTC, err = LocalDateToUTCTimestamp(to, tz, BoundaryEnd)
	if err != nil {
		return "", "", err
	}
	return startUTC, endUTC, nil
}

// resolve binary-searches for the UTC instant whose reading in loc equals
// the requested local boundary.
//
// The estimate interprets the local wall-clock values as if they were
// already UTC; the true instant differs from it by exactly the zone's
// offset, so it lies within the ±15h window. Each probe compares the
// probe's formatted local reading against the target using an encoded
// (y, m, d, h, min) value, which keeps comparisons correct across
// month and year crossings, not just time of day.
func resolve(d LocalDate, loc *time.Location, boundary Boundary) time.Time {
	hour, minute := 0, 0
	if boundary == BoundaryEnd {
		hour, minute = 23, 59
	}
	target := encodeLocal(d.Year, d.Month, d.Day, hour, minute)

	estimate := time.Date(d.Year, time.Month(d.Month), d.Day, hour, minute, 0, 0, time.UTC)
	lo := estimate.Add(-searchWindow)
	hi := estimate.Add(searchWindow)

	// Invariant: local(lo) reads before the target minute, local(hi) at or
	// after it. On days where the target wall-clock time is skipped by a
	// DST transition, both ends converge on the transition instant, the
	// nearest valid bracketing point.
	for hi.Sub(lo) >= searchPrecision {
		mid := lo.Add(hi.Sub(lo) / 2)
		if encodeInstant(mid, loc) < target {
			lo = mid
		} else {
			hi = mid
		}
	}

	// The midpoint of the final window is within 30s of the boundary
	// instant, and transitions land on whole minutes, so rounding (not
	// truncating, which could fall into the previous minute) recovers it.
	result := lo.Add(hi.Sub(lo) / 2).Round(time.Minute).UTC()
	if boundary == BoundaryEnd {
		result = result.Add(59*time.Second + 999*time.Millisecond)
	}
	return result
}

// encodeInstant formats t in loc and encodes the local reading.
func encodeInstant(t time.Time, loc *time.Location) int64 {
	lt := t.In(loc)
	return encodeLocal(lt.Year(), int(lt.Month()), lt.Day(), lt.Hour(), lt.Minute())
}

// encodeLocal collapses a local (y, m, d, h, min) reading into one
// ordered integer: year*1e8 + month*1e6 + day*1e4 + hour*100 + minute.
func encodeLocal(year, month, day, hour, minute int) int64 {
	return int64(year)*1e8 + int64(month)*1e6 + int64(day)*1e4 + int64(hour)*100 + int64(minute)
}
