package utils

import "time"

// WeekFormat is how week-start dates are rendered everywhere: keys,
// storage columns and the remote API all use the same YYYY-MM-DD string.
const WeekFormat = "2006-01-02"

// WeekStart returns the Monday of the week containing t, truncated to
// midnight UTC. The week always starts on Monday, no matter what the
// platform or locale says the first weekday is.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	// Go weeks start on Sunday (0); shift so Monday becomes 0.
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatWeek renders the canonical week-start string for t's week.
func FormatWeek(t time.Time) string {
	return WeekStart(t).Format(WeekFormat)
}

// ParseWeek parses a canonical week-start string back into a date.
func ParseWeek(week string) (time.Time, error) {
	return time.ParseInLocation(WeekFormat, week, time.UTC)
}

// AddWeeks steps n whole weeks from t (n may be negative).
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// LookbackWindow returns the week-start strings for the week containing t
// plus the lookback preceding weeks, most recent first.
func LookbackWindow(t time.Time, lookback int) []string {
	start := WeekStart(t)
	weeks := make([]string, 0, lookback+1)
	for i := 0; i <= lookback; i++ {
		weeks = append(weeks, AddWeeks(start, -i).Format(WeekFormat))
	}
	return weeks
}
