package punch

import (
	"math"
	"time"
)

// ComputeDay runs the single-pass duration aggregation over one user's
// events for one day. Events referencing an unset anchor (an end_break
// with no open break, an end_day before any start_day) contribute zero;
// nothing here ever fails. Minutes are rounded once at the end, half away
// from zero, matching the report emails.
func ComputeDay(events []ClockEvent) DaySummary {
	if len(events) == 0 {
		return DaySummary{}
	}

	sorted := SortEvents(events)

	var (
		work       time.Duration
		brk        time.Duration
		workStart  *time.Time
		breakStart *time.Time
		startTime  *time.Time
		endTime    *time.Time
	)

	for _, e := range sorted {
		ts := e.Timestamp

		switch e.Action {
		case ActionStartDay:
			workStart = &ts
			startTime = &ts
		case ActionStartBreak:
			if workStart != nil {
				work += ts.Sub(*workStart)
			}
			breakStart = &ts
		case ActionEndBreak:
			if breakStart != nil {
				brk += ts.Sub(*breakStart)
			}
			// Resume the work clock.
			workStart = &ts
		case ActionEndDay:
			if workStart != nil {
				work += ts.Sub(*workStart)
			}
			endTime = &ts
		}
	}

	return DaySummary{
		TotalWorkMinutes:  roundMinutes(work),
		TotalBreakMinutes: roundMinutes(brk),
		StartTime:         startTime,
		EndTime:           endTime,
	}
}

// ComputeMonthly groups one user's events by calendar date, aggregates
// each day, and sums the rounded daily minutes. AvgMinutesPerDay is zero
// when no day has any work, never a division by zero.
func ComputeMonthly(events []ClockEvent) MonthlySummary {
	var summary MonthlySummary

	for _, dayEvents := range GroupByDate(events) {
		day := ComputeDay(dayEvents)
		summary.TotalWorkMinutes += day.TotalWorkMinutes
		summary.TotalBreakMinutes += day.TotalBreakMinutes
		if day.TotalWorkMinutes > 0 {
			summary.WorkingDays++
		}
	}

	if summary.WorkingDays > 0 {
		summary.AvgMinutesPerDay = int(math.Round(float64(summary.TotalWorkMinutes) / float64(summary.WorkingDays)))
	}

	return summary
}

// ComputeYearly aggregates an archived year across all users, producing
// the per-employee breakdown next to the grand totals. WorkingDays at the
// top level counts distinct dates on which at least one user worked.
func ComputeYearly(events []ClockEvent) YearlySummary {
	summary := YearlySummary{PerUser: make(map[string]UserYearly)}

	byUser := make(map[string][]ClockEvent)
	usernames := make(map[string]string)
	for _, e := range events {
		uid := e.UserID.String()
		byUser[uid] = append(byUser[uid], e)
		usernames[uid] = e.Username
	}

	workedDates := make(map[string]struct{})
	for uid, userEvents := range byUser {
		userSummary := MonthlySummary{}
		for date, dayEvents := range GroupByDate(userEvents) {
			day := ComputeDay(dayEvents)
			userSummary.TotalWorkMinutes += day.TotalWorkMinutes
			userSummary.TotalBreakMinutes += day.TotalBreakMinutes
			if day.TotalWorkMinutes > 0 {
				userSummary.WorkingDays++
				workedDates[date] = struct{}{}
			}
		}
		if userSummary.WorkingDays > 0 {
			userSummary.AvgMinutesPerDay = int(math.Round(float64(userSummary.TotalWorkMinutes) / float64(userSummary.WorkingDays)))
		}

		summary.TotalWorkMinutes += userSummary.TotalWorkMinutes
		summary.TotalBreakMinutes += userSummary.TotalBreakMinutes
		summary.PerUser[uid] = UserYearly{
			Username: usernames[uid],
			Summary:  userSummary,
		}
	}

	summary.WorkingDays = len(workedDates)
	return summary
}

// GroupByDate splits events by their calendar-day key.
func GroupByDate(events []ClockEvent) map[string][]ClockEvent {
	byDate := make(map[string][]ClockEvent)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	return byDate
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
