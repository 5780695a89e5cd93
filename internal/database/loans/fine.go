package loans

import "time"

// DefaultFinePerDay is the fallback per-day-late penalty when no rate is
// configured.
const DefaultFinePerDay = 5.0

// dateOnly truncates t to midnight in its own location. Fines are date
// arithmetic; the time of day a book crosses the desk never matters.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysLate returns how many whole days past due the return is. Zero or
// negative means the book came back on time. Rounding absorbs the hour a
// DST transition adds or removes from the span.
func daysLate(dueDate, returned time.Time) int {
	due := dateOnly(dueDate)
	ret := dateOnly(returned)
	return int(ret.Sub(due).Round(24*time.Hour) / (24 * time.Hour))
}

// fineFor computes the penalty fixed at return time. Returning on or before
// the due date costs nothing; otherwise each day late is charged at perDay.
func fineFor(dueDate, returned time.Time, perDay float64) float64 {
	late := daysLate(dueDate, returned)
	if late <= 0 {
		return 0
	}
	return float64(late) * perDay
}
