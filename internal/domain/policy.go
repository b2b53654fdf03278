package domain

import "time"

// DateRangeVerdict результат проверки даты по окну политики
type DateRangeVerdict string

const (
	VerdictOK      DateRangeVerdict = "ok"
	VerdictPast    DateRangeVerdict = "past"
	VerdictTooSoon DateRangeVerdict = "too_soon"
	VerdictTooFar  DateRangeVerdict = "too_far"
	VerdictWeekend DateRangeVerdict = "weekend"
)

// PolicyWindow окно допустимых дат записи
type PolicyWindow struct {
	MinLeadDays      int // дата <= сегодня+MinLeadDays слишком близко
	MaxHorizonMonths int // дата > сегодня+MaxHorizonMonths календарных месяцев слишком далеко
}

// DefaultPolicyWindow окно по умолчанию: от 15-го дня до 3 месяцев вперёд
func DefaultPolicyWindow() PolicyWindow {
	return PolicyWindow{
		MinLeadDays:      DefaultMinLeadDays,
		MaxHorizonMonths: DefaultMaxHorizonMonths,
	}
}

// Evaluate возвращает вердикт для даты requested относительно today.
// Правила проверяются по порядку, срабатывает первое:
// прошлое, слишком близко (граница включительно), слишком далеко, выходной.
// Время суток и часовой пояс аргументов не учитываются, сравниваются только календарные даты.
func (p PolicyWindow) Evaluate(requested, today time.Time) DateRangeVerdict {
	day := DateOnly(requested)
	now := DateOnly(today)

	if day.Before(now) {
		return VerdictPast
	}

	if !day.After(now.AddDate(0, 0, p.MinLeadDays)) {
		return VerdictTooSoon
	}

	// AddDate нормализует переполнение месяца (30 ноября + 3 месяца = 2 марта)
	if day.After(now.AddDate(0, p.MaxHorizonMonths, 0)) {
		return VerdictTooFar
	}

	if IsWeekend(day) {
		return VerdictWeekend
	}

	return VerdictOK
}

// FirstEligibleDate первая дата окна (сегодня+MinLeadDays+1)
func (p PolicyWindow) FirstEligibleDate(today time.Time) time.Time {
	return DateOnly(today).AddDate(0, 0, p.MinLeadDays+1)
}

// LastEligibleDate последняя дата окна
func (p PolicyWindow) LastEligibleDate(today time.Time) time.Time {
	return DateOnly(today).AddDate(0, p.MaxHorizonMonths, 0)
}

// DateOnly отбрасывает время, сохраняя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWeekend returns true for Saturday and Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
