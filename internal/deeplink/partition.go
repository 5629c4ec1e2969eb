package deeplink

import "github.com/gatherhub/api/internal/model"

// Partition splits summaries into upcoming and past around a reference
// calendar date. An event dated on the reference date counts as upcoming.
// Callers supply the reference; the server has no notion of "today".
// Relative order within each half is preserved.
func Partition(events []model.EventSummary, referenceDate string) (upcoming, past []model.EventSummary) {
	upcoming = make([]model.EventSummary, 0, len(events))
	past = make([]model.EventSummary, 0)
	for _, e := range events {
		// Calendar dates in 2006-01-02 form order lexically.
		if e.Date >= referenceDate {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	return upcoming, past
}
