package punch

import (
	"slices"
)

// SortEvents returns a copy of events sorted ascending by timestamp. The
// sort is stable: events with equal timestamps keep their input order, so
// callers feeding insertion-ordered slices get insertion order as the
// tie-break.
func SortEvents(events []ClockEvent) []ClockEvent {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b ClockEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return sorted
}

// ComputeStatus derives a user's status from their events for one day.
// Pure: no validation of logical consistency is attempted; the last event
// by timestamp wins. An empty set means the day has not started.
func ComputeStatus(events []ClockEvent) UserStatus {
	if len(events) == 0 {
		return UserStatus{Status: StatusNotStarted}
	}

	sorted := SortEvents(events)
	last := sorted[len(sorted)-1]

	status := StatusNotStarted
	switch last.Action {
	case ActionStartDay:
		status = StatusWorking
	case ActionStartBreak:
		status = StatusOnBreak
	case ActionEndBreak:
		status = StatusWorking
	case ActionEndDay:
		status = StatusDayEnded
	}

	ts := last.Timestamp
	return UserStatus{
		Status:     status,
		LastAction: last.Action,
		LastTime:   &ts,
	}
}

// AllowedFrom reports whether action may be recorded from the current
// status. This is the companion invariant to ComputeStatus, enforced by
// the service before appending, never by the engine itself.
func AllowedFrom(action Action, current Status) bool {
	switch action {
	case ActionStartDay:
		return current == StatusNotStarted
	case ActionStartBreak:
		return current == StatusWorking
	case ActionEndBreak:
		return current == StatusOnBreak
	case ActionEndDay:
		return current != StatusDayEnded
	}
	return false
}
