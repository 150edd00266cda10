// Package businesstime converts consultation instants to and from the business
// timezone: a fixed UTC+3 offset with no daylight saving, closed on Friday and Saturday.
package businesstime

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"tuwaiq_relay/internal/domain/entities"
)

const (
	offsetSeconds = 3 * 60 * 60
	offsetLabel   = "+03:00"

	// ISOMillis is the canonical UTC rendering used for every stored instant.
	ISOMillis = "2006-01-02T15:04:05.000Z"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Zone is the business timezone.
var Zone = time.FixedZone("UTC+3", offsetSeconds)

// RestDays are the business-local weekdays on which consultations cannot be booked.
var RestDays = []time.Weekday{time.Friday, time.Saturday}

// IsRestDay reports whether t falls on a rest day in the business timezone.
func IsRestDay(t time.Time) bool {
	return lo.Contains(RestDays, t.In(Zone).Weekday())
}

// FormatUTC renders t as a UTC ISO-8601 string with milliseconds.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}

// Project returns t with its three business-timezone display projections.
func Project(t time.Time) entities.ConsultationTime {
	local := t.In(Zone)
	date := local.Format(dateLayout)
	clock := local.Format(timeLayout)
	return entities.ConsultationTime{
		UTC:      FormatUTC(t),
		Display:  date + " " + clock + " (" + offsetLabel + ")",
		Date:     date,
		Time:     clock,
		Resolved: true,
	}
}

var displayPattern = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2}) (\d{1,2}):(\d{2})(?::(\d{2}))?\s*(?:\(\s*(?:UTC|GMT)?\s*([+-])(\d{1,2}):?(\d{2})\s*\))?$`,
)

// isoZonedLayouts are ISO-8601 forms carrying a zone: Z or an offset with or without a colon,
// with or without seconds.
var isoZonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z0700",
}

var isoLocalLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	dateLayout,
}

// ParseInstant parses the timestamp forms seen in bill requests, ledger rows and callbacks:
// zoned ISO-8601 strings (RFC 3339, also without seconds or with a "+0300" offset), ISO local strings (read as UTC), and business display strings
// "YYYY-MM-DD HH:MM[:SS]" with an optional "(+HH:MM)" suffix defaulting to +03:00.
func ParseInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := ParseZoned(s); ok {
		return t, true
	}

	if t, ok := parseDisplay(s); ok {
		return t, true
	}

	for _, layout := range isoLocalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseZoned parses an ISO-8601 timestamp that names its zone and returns it in UTC.
func ParseZoned(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoZonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseDisplay(s string) (time.Time, bool) {
	m := displayPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	day, err := time.Parse(dateLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])
	second := 0
	if m[4] != "" {
		second, _ = strconv.Atoi(m[4])
	}
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}

	loc := Zone
	if m[5] != "" {
		oh, _ := strconv.Atoi(m[6])
		om, _ := strconv.Atoi(m[7])
		if oh > 14 || om > 59 {
			return time.Time{}, false
		}
		offset := oh*3600 + om*60
		if m[5] == "-" {
			offset = -offset
		}
		loc = time.FixedZone("", offset)
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, loc)
	return t.UTC(), true
}

// FromParts converts a provider date array [Y, M, D, h, m, s, nanos?] to a UTC instant.
// The month is 1-based. Fewer than six elements is not a timestamp.
func FromParts(parts []int) (time.Time, bool) {
	if len(parts) < 6 {
		return time.Time{}, false
	}
	if parts[1] < 1 || parts[1] > 12 || parts[2] < 1 || parts[2] > 31 {
		return time.Time{}, false
	}
	nanos := 0
	if len(parts) > 6 {
		nanos = parts[6]
	}
	t := time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], nanos, time.UTC)
	return t, true
}

// Resolve picks one canonical instant from the candidates in c, in priority order:
// the UTC field, the display field, then the date and time pair read in the business
// timezone. When nothing parses the raw strings are returned untouched and unresolved.
func Resolve(c entities.ConsultationTime) entities.ConsultationTime {
	if t, ok := ParseInstant(c.UTC); ok {
		return Project(t)
	}
	if t, ok := ParseInstant(c.Display); ok {
		return Project(t)
	}
	if c.Date != "" && c.Time != "" {
		if t, ok := parseDisplay(strings.TrimSpace(c.Date) + " " + strings.TrimSpace(c.Time)); ok {
			return Project(t)
		}
	}

	raw := c
	raw.Resolved = false
	return raw
}
