package recurrence

import (
	"testing"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func dates(ss ...string) []time.Time {
	out := make([]time.Time, 0, len(ss))
	for _, s := range ss {
		out = append(out, date(s))
	}
	return out
}

func TestResolve_WeeklyScenario(t *testing.T) {
	rule := Rule{Frequency: entity.FrequencyWeekly, StartDate: date("2025-01-01")}

	got := Collect(Resolve(rule, date("2025-01-01"), date("2025-01-22")))

	assert.Equal(t, dates("2025-01-01", "2025-01-08", "2025-01-15"), got)
}

func TestResolve_MonthlyTwelveMonths(t *testing.T) {
	anchor := date("2025-01-10")
	rule := Rule{Frequency: entity.FrequencyMonthly, StartDate: anchor}

	got := Collect(Resolve(rule, anchor, anchor.AddDate(1, 0, 0)))

	require.Len(t, got, 12)
	for k, d := range got {
		assert.Equal(t, anchor.AddDate(0, k, 0), d, "index %d", k)
	}
}

func TestResolve_MonthlyClampsToMonthEnd(t *testing.T) {
	rule := Rule{Frequency: entity.FrequencyMonthly, StartDate: date("2024-01-31")}

	got := Collect(Resolve(rule, date("2024-01-01"), date("2024-05-01")))

	assert.Equal(t, dates("2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"), got)
}

func TestResolve_Daily(t *testing.T) {
	rule := Rule{Frequency: entity.FrequencyDaily, StartDate: date("2025-03-02")}

	got := Collect(Resolve(rule, date("2025-03-01"), date("2025-03-05")))

	assert.Equal(t, dates("2025-03-02", "2025-03-03", "2025-03-04"), got)
}

func TestResolve_YearlyFromOldAnchor(t *testing.T) {
	rule := Rule{Frequency: entity.FrequencyYearly, StartDate: date("2020-02-29")}

	got := Collect(Resolve(rule, date("2023-01-01"), date("2025-01-01")))

	assert.Equal(t, dates("2023-02-28", "2024-02-29"), got)
}

func TestResolve_WindowStartsAfterAnchor(t *testing.T) {
	rule := Rule{Frequency: entity.FrequencyWeekly, StartDate: date("2025-01-01")}

	got := Collect(Resolve(rule, date("2025-02-01"), date("2025-02-20")))

	assert.Equal(t, dates("2025-02-05", "2025-02-12", "2025-02-19"), got)
}

func TestResolve_StartAfterWindowIsEmpty(t *testing.T) {
	rule := Rule{Frequency: entity.FrequencyDaily, StartDate: date("2025-06-01")}

	assert.Empty(t, Collect(Resolve(rule, date("2025-01-01"), date("2025-06-01"))))
}

func TestResolve_SpecificDates(t *testing.T) {
	rule := Rule{
		Frequency: entity.FrequencySpecific,
		StartDate: date("2025-01-01"),
		SpecificDates: []time.Time{
			date("2025-03-01"),
			date("2024-12-01"), // before start
			date("2025-01-15").Add(13 * time.Hour),
			date("2025-01-15"),
			date("2025-09-01"), // outside window
		},
	}

	got := Collect(Resolve(rule, date("2025-01-01"), date("2025-06-01")))

	assert.Equal(t, dates("2025-01-15", "2025-03-01"), got)
}

func TestResolve_IsRestartable(t *testing.T) {
	seq := Resolve(Rule{Frequency: entity.FrequencyDaily, StartDate: date("2025-01-01")}, date("2025-01-01"), date("2025-01-04"))

	assert.Equal(t, Collect(seq), Collect(seq))

	// early break
	var first time.Time
	for d := range seq {
		first = d
		break
	}
	assert.Equal(t, date("2025-01-01"), first)
}

func TestResolve_UnknownFrequencyIsEmpty(t *testing.T) {
	rule := Rule{Frequency: entity.Frequency("Hourly"), StartDate: date("2025-01-01")}

	assert.Empty(t, Collect(Resolve(rule, date("2025-01-01"), date("2025-02-01"))))
}
