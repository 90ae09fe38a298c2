package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RangePreset names a commonly used report range.
type RangePreset string

const (
	RangeToday     RangePreset = "today"
	RangeYesterday RangePreset = "yesterday"
	RangeLast7Days RangePreset = "last7days"
	RangeThisMonth RangePreset = "thisMonth"
	RangeLastMonth RangePreset = "lastMonth"
)

const dayLayout = "2006-01-02"

// ErrInvalidDateRange is returned when a range cannot be parsed or resolved.
var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange is either a preset or an explicit inclusive [From, To] day span.
// It is comparable so it can be part of a cache key.
type DateRange struct {
	Preset RangePreset `json:"preset,omitempty"`
	From   string      `json:"from,omitempty"`
	To     string      `json:"to,omitempty"`
}

// Preset returns a DateRange for the given preset.
func Preset(p RangePreset) DateRange {
	return DateRange{Preset: p}
}

// ParseDateRange accepts a preset name or "YYYY-MM-DD..YYYY-MM-DD".
func ParseDateRange(s string) (DateRange, error) {
	switch p := RangePreset(s); p {
	case RangeToday, RangeYesterday, RangeLast7Days, RangeThisMonth, RangeLastMonth:
		return Preset(p), nil
	}

	from, to, ok := strings.Cut(s, "..")
	if !ok {
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidDateRange, s)
	}
	r := DateRange{From: from, To: to}
	if _, _, err := r.Resolve(time.Now()); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// String renders the range in the form accepted by [ParseDateRange].
func (r DateRange) String() string {
	if r.Preset != "" {
		return string(r.Preset)
	}
	return r.From + ".." + r.To
}

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool {
	return r == DateRange{}
}

// Resolve returns the half-open interval [from, to) covered by the range,
// evaluated in now's location.
func (r DateRange) Resolve(now time.Time) (time.Time, time.Time, error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	switch r.Preset {
	case RangeToday:
		return today, today.AddDate(0, 0, 1), nil
	case RangeYesterday:
		return today.AddDate(0, 0, -1), today, nil
	case RangeLast7Days:
		return today.AddDate(0, 0, -6), today.AddDate(0, 0, 1), nil
	case RangeThisMonth:
		return monthStart, monthStart.AddDate(0, 1, 0), nil
	case RangeLastMonth:
		return monthStart.AddDate(0, -1, 0), monthStart, nil
	case "":
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidDateRange, r.Preset)
	}

	from, err := time.ParseInLocation(dayLayout, r.From, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %w", ErrInvalidDateRange, err)
	}
	to, err := time.ParseInLocation(dayLayout, r.To, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %w", ErrInvalidDateRange, err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, r.To, r.From)
	}

	return from, to.AddDate(0, 0, 1), nil
}

// Contains reports whether t falls inside the range as resolved at now.
func (r DateRange) Contains(t, now time.Time) bool {
	from, to, err := r.Resolve(now)
	if err != nil {
		return false
	}
	t = t.In(now.Location())
	return !t.Before(from) && t.Before(to)
}

// Adjacent lists the ranges a user is likely to open next from r.
// Explicit spans yield the span of equal length right before them.
func (r DateRange) Adjacent() []DateRange {
	switch r.Preset {
	case RangeToday:
		return []DateRange{Preset(RangeYesterday), Preset(RangeLast7Days)}
	case RangeYesterday:
		return []DateRange{Preset(RangeToday), Preset(RangeLast7Days)}
	case RangeLast7Days:
		return []DateRange{Preset(RangeToday), Preset(RangeThisMonth)}
	case RangeThisMonth:
		return []DateRange{Preset(RangeLastMonth), Preset(RangeLast7Days)}
	case RangeLastMonth:
		return []DateRange{Preset(RangeThisMonth)}
	}

	from, err := time.Parse(dayLayout, r.From)
	if err != nil {
		return nil
	}
	to, err := time.Parse(dayLayout, r.To)
	if err != nil || to.Before(from) {
		return nil
	}
	days := int(to.Sub(from).Hours()/24) + 1
	prevTo := from.AddDate(0, 0, -1)
	prevFrom := prevTo.AddDate(0, 0, -(days - 1))

	return []DateRange{{From: prevFrom.Format(dayLayout), To: prevTo.Format(dayLayout)}}
}
