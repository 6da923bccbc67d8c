package wfh

import "time"

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	return date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
}

// NextWorkingDay returns the first working day after the submission day.
// A Friday submission skips the weekend to Monday.
func NextWorkingDay(submittedAt time.Time) time.Time {
	days := 1
	if submittedAt.Weekday() == time.Friday {
		days = 3
	}
	return DateOnly(submittedAt).AddDate(0, 0, days)
}

// PreviousWorkingDay returns midnight of the last working day strictly
// before the date. This is the review deadline for a pending entry.
func PreviousWorkingDay(date time.Time) time.Time {
	prev := DateOnly(date).AddDate(0, 0, -1)
	for IsWeekend(prev) {
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}

// DateOnly truncates a timestamp to its calendar date at UTC midnight,
// the same instant "2006-01-02" strings parse to. All date comparisons
// in the engine go through this normalization.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
