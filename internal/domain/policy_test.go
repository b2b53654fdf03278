package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPolicyWindow_EvaluateBoundaries(t *testing.T) {
	policy := DefaultPolicyWindow()
	today := date(2024, time.June, 3) // понедельник

	tests := []struct {
		name      string
		requested time.Time
		want      DateRangeVerdict
	}{
		{"yesterday", date(2024, time.June, 2), VerdictPast},
		{"today", today, VerdictTooSoon},
		{"today plus 14 days", date(2024, time.June, 17), VerdictTooSoon},
		{"today plus 15 days weekday", date(2024, time.June, 18), VerdictOK},
		{"saturday inside window", date(2024, time.June, 22), VerdictWeekend},
		{"sunday inside window", date(2024, time.June, 23), VerdictWeekend},
		{"exactly three months", date(2024, time.September, 3), VerdictOK},
		{"three months plus one day", date(2024, time.September, 4), VerdictTooFar},
		{"a year ahead", date(2025, time.June, 3), VerdictTooFar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Evaluate(tt.requested, today))
		})
	}
}

func TestPolicyWindow_PastTakesPrecedenceOverWeekend(t *testing.T) {
	policy := DefaultPolicyWindow()
	today := date(2024, time.June, 3)

	// 1 июня 2024 суббота и одновременно прошлое
	assert.Equal(t, VerdictPast, policy.Evaluate(date(2024, time.June, 1), today))
	// 15 июня суббота, но ближе 14 дней
	assert.Equal(t, VerdictTooSoon, policy.Evaluate(date(2024, time.June, 15), today))
	// 7 сентября суббота, но за горизонтом
	assert.Equal(t, VerdictTooFar, policy.Evaluate(date(2024, time.September, 7), today))
}

func TestPolicyWindow_MonthOverflow(t *testing.T) {
	policy := DefaultPolicyWindow()
	today := date(2024, time.November, 30)

	// 30 ноября + 3 месяца нормализуется в 2 марта 2025
	assert.Equal(t, date(2025, time.March, 2), policy.LastEligibleDate(today))
	assert.Equal(t, VerdictOK, policy.Evaluate(date(2025, time.February, 28), today))
	assert.Equal(t, VerdictTooFar, policy.Evaluate(date(2025, time.March, 3), today))
}

func TestPolicyWindow_IgnoresTimeOfDay(t *testing.T) {
	policy := DefaultPolicyWindow()
	today := time.Date(2024, time.June, 3, 23, 59, 0, 0, time.UTC)
	requested := time.Date(2024, time.June, 18, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, VerdictOK, policy.Evaluate(requested, today))
}

// Вердикты детерминированы, взаимоисключающи и покрывают все даты в диапазоне ±1 год
func TestPolicyWindow_EvaluateIsTotalAndExclusive(t *testing.T) {
	policy := DefaultPolicyWindow()
	today := date(2024, time.June, 3)
	minLead := today.AddDate(0, 0, policy.MinLeadDays)
	horizon := today.AddDate(0, policy.MaxHorizonMonths, 0)

	for d := today.AddDate(-1, 0, 0); !d.After(today.AddDate(1, 0, 0)); d = d.AddDate(0, 0, 1) {
		got := policy.Evaluate(d, today)
		assert.Equal(t, got, policy.Evaluate(d, today), "non-deterministic for %s", d.Format(DateFormat))

		matches := map[DateRangeVerdict]bool{
			VerdictPast:    d.Before(today),
			VerdictTooSoon: !d.Before(today) && !d.After(minLead),
			VerdictTooFar:  d.After(horizon),
			VerdictWeekend: d.After(minLead) && !d.After(horizon) && IsWeekend(d),
			VerdictOK:      d.After(minLead) && !d.After(horizon) && !IsWeekend(d),
		}

		count := 0
		for _, ok := range matches {
			if ok {
				count++
			}
		}
		assert.Equal(t, 1, count, "exactly one verdict must match %s", d.Format(DateFormat))
		assert.True(t, matches[got], "verdict %s does not match definition for %s", got, d.Format(DateFormat))
	}
}

func TestPolicyWindow_FirstEligibleDate(t *testing.T) {
	policy := DefaultPolicyWindow()
	assert.Equal(t, date(2024, time.June, 18), policy.FirstEligibleDate(date(2024, time.June, 3)))
}
