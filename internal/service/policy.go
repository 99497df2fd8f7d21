package service

import "time"

// BookingPolicy holds the date rules every admission must pass. It is
// loaded from config at startup and read-only afterwards.
type BookingPolicy struct {
	// MaxDaysInRow bounds the inclusive number of calendar days a single
	// reservation may span.
	MaxDaysInRow int
	// MaxDaysAdvance bounds how far in the future a reservation may start,
	// counted in days from the start of today. It is also the horizon of
	// the availability calendar.
	MaxDaysAdvance int
}

// policyCheck is one rule of the validation pipeline. Checks are pure:
// same inputs, same verdict.
type policyCheck func(p BookingPolicy, start, end, now time.Time) error

// policyPipeline runs in order and short-circuits on the first failure.
var policyPipeline = []policyCheck{
	checkRangeOrdered,
	checkStartNotTooSoon,
	checkDaysInRow,
	checkDaysInAdvance,
}

// ValidateDates applies the booking policy to the requested interval.
func ValidateDates(p BookingPolicy, start, end, now time.Time) error {
	for _, check := range policyPipeline {
		if err := check(p, start, end, now); err != nil {
			return err
		}
	}
	return nil
}

func checkRangeOrdered(_ BookingPolicy, start, end, _ time.Time) error {
	if start.After(end) {
		return &ValidationError{Kind: InvalidRange}
	}
	return nil
}

// Bookings must start strictly after today: the earliest valid instant is
// tomorrow at midnight.
func checkStartNotTooSoon(_ BookingPolicy, start, _, now time.Time) error {
	tomorrow := startOfDay(now).AddDate(0, 0, 1)
	if start.Before(tomorrow) {
		return &ValidationError{Kind: StartTooSoon}
	}
	return nil
}

// The day count is inclusive: a reservation from day 5 to day 7 spans
// three days, whatever the times of day.
func checkDaysInRow(p BookingPolicy, start, end, _ time.Time) error {
	days := daysBetween(start, end) + 1
	if days > p.MaxDaysInRow {
		return &ValidationError{Kind: TooManyConsecutiveDays, Limit: p.MaxDaysInRow}
	}
	return nil
}

func checkDaysInAdvance(p BookingPolicy, start, _, now time.Time) error {
	maxStart := startOfDay(now).AddDate(0, 0, p.MaxDaysAdvance)
	if startOfDay(start).After(maxStart) {
		return &ValidationError{Kind: TooFarInAdvance, Limit: p.MaxDaysAdvance}
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from the day of a to the day of b.
func daysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)) / (24 * time.Hour))
}
