// Package recurrence expands a maintenance cycle into due dates.
//
// All dates are calendar days at 00:00 UTC. Windows are half-open:
// [windowStart, windowEnd).
package recurrence

import (
	"iter"
	"slices"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
)

// Rule is the recurrence part of a cycle applied by a schedule.
type Rule struct {
	Frequency     entity.Frequency
	StartDate     time.Time
	SpecificDates []time.Time
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Resolve returns the due dates of rule inside [windowStart, windowEnd).
// The sequence is lazy, finite and can be ranged over any number of times.
func Resolve(rule Rule, windowStart, windowEnd time.Time) iter.Seq[time.Time] {
	anchor := Day(rule.StartDate)
	from := Day(windowStart)
	until := Day(windowEnd)

	return func(yield func(time.Time) bool) {
		if !anchor.Before(until) || !from.Before(until) {
			return
		}

		if rule.Frequency == entity.FrequencySpecific {
			for _, d := range specificDates(rule.SpecificDates) {
				if d.Before(anchor) || d.Before(from) || !d.Before(until) {
					continue
				}
				if !yield(d) {
					return
				}
			}
			return
		}

		step, ok := stepper(rule.Frequency)
		if !ok {
			return
		}

		for k := firstIndex(rule.Frequency, anchor, from); ; k++ {
			d := step(anchor, k)
			if !d.Before(until) {
				return
			}
			if d.Before(from) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Collect materialises a sequence.
func Collect(seq iter.Seq[time.Time]) []time.Time {
	return slices.Collect(seq)
}

type stepFunc func(anchor time.Time, k int) time.Time

func stepper(f entity.Frequency) (stepFunc, bool) {
	switch f {
	case entity.FrequencyDaily:
		return func(a time.Time, k int) time.Time { return a.AddDate(0, 0, k) }, true
	case entity.FrequencyWeekly:
		return func(a time.Time, k int) time.Time { return a.AddDate(0, 0, 7*k) }, true
	case entity.FrequencyMonthly:
		return func(a time.Time, k int) time.Time { return addMonths(a, k) }, true
	case entity.FrequencyYearly:
		return func(a time.Time, k int) time.Time { return addMonths(a, 12*k) }, true
	}
	return nil, false
}

// firstIndex skips the periods that end before the window starts.
// It may undershoot by one; Resolve filters the remainder.
func firstIndex(f entity.Frequency, anchor, from time.Time) int {
	if !anchor.Before(from) {
		return 0
	}
	days := int(from.Sub(anchor).Hours() / 24)
	var k int
	switch f {
	case entity.FrequencyDaily:
		k = days
	case entity.FrequencyWeekly:
		k = days / 7
	case entity.FrequencyMonthly:
		k = monthsBetween(anchor, from) - 1
	case entity.FrequencyYearly:
		k = monthsBetween(anchor, from)/12 - 1
	}
	if k < 0 {
		return 0
	}
	return k
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// addMonths steps from the anchor and clamps to the last day of a shorter month,
// so Jan 31 yields Feb 28 (or 29) and then Mar 31.
func addMonths(anchor time.Time, n int) time.Time {
	y, m, d := anchor.Date()
	total := int(m) - 1 + n
	year := y + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	last := daysIn(year, time.Month(month+1))
	if d > last {
		d = last
	}
	return time.Date(year, time.Month(month+1), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func specificDates(in []time.Time) []time.Time {
	out := make([]time.Time, 0, len(in))
	for _, d := range in {
		out = append(out, Day(d))
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return slices.CompactFunc(out, func(a, b time.Time) bool { return a.Equal(b) })
}
