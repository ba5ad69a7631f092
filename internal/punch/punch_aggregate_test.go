package punch

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testPunch struct {
	action Action
	clock  string
}

func punchAt(action Action, clock string) testPunch {
	return testPunch{action: action, clock: clock}
}

func dayEvents(userID uuid.UUID, date string, punches ...testPunch) []ClockEvent {
	events := make([]ClockEvent, len(punches))
	for i, p := range punches {
		ts, _ := time.Parse("2006-01-02 15:04", date+" "+p.clock)
		events[i] = ClockEvent{
			ID:        uuid.New(),
			UserID:    userID,
			Username:  "alice",
			Action:    p.action,
			Timestamp: ts,
			Date:      date,
		}
	}
	return events
}

func TestComputeDay_FullDayWithBreak(t *testing.T) {
	uid := uuid.New()
	events := dayEvents(uid, "2026-03-10",
		punchAt(ActionStartDay, "09:00"),
		punchAt(ActionStartBreak, "12:00"),
		punchAt(ActionEndBreak, "13:00"),
		punchAt(ActionEndDay, "17:00"),
	)

	day := ComputeDay(events)

	assert.Equal(t, 420, day.TotalWorkMinutes)
	assert.Equal(t, 60, day.TotalBreakMinutes)
	assert.NotNil(t, day.StartTime)
	assert.NotNil(t, day.EndTime)
	assert.Equal(t, "09:00", day.StartTime.Format("15:04"))
	assert.Equal(t, "17:00", day.EndTime.Format("15:04"))
}

func TestComputeDay_ShuffledInputSameResult(t *testing.T) {
	uid := uuid.New()
	events := dayEvents(uid, "2026-03-10",
		punchAt(ActionStartDay, "09:00"),
		punchAt(ActionStartBreak, "12:00"),
		punchAt(ActionEndBreak, "13:00"),
		punchAt(ActionEndDay, "17:00"),
	)
	want := ComputeDay(events)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		r.Shuffle(len(events), func(a, b int) {
			events[a], events[b] = events[b], events[a]
		})
		assert.Equal(t, want, ComputeDay(events))
	}
}

func TestComputeDay_NoEvents(t *testing.T) {
	day := ComputeDay(nil)
	assert.Zero(t, day.TotalWorkMinutes)
	assert.Zero(t, day.TotalBreakMinutes)
	assert.Nil(t, day.StartTime)
	assert.Nil(t, day.EndTime)
}

func TestComputeDay_UnmatchedEventsContributeZero(t *testing.T) {
	uid := uuid.New()

	t.Run("end_break without open break", func(t *testing.T) {
		events := dayEvents(uid, "2026-03-10",
			punchAt(ActionStartDay, "09:00"),
			punchAt(ActionEndBreak, "10:00"),
			punchAt(ActionEndDay, "11:00"),
		)
		day := ComputeDay(events)
		// The stray end_break adds no break time, but it still resets the
		// work anchor: the 09:00-10:00 segment is dropped, only 10:00-11:00
		// counts.
		assert.Equal(t, 60, day.TotalWorkMinutes)
		assert.Equal(t, 0, day.TotalBreakMinutes)
	})

	t.Run("end_day without start", func(t *testing.T) {
		events := dayEvents(uid, "2026-03-10",
			punchAt(ActionEndDay, "17:00"),
		)
		day := ComputeDay(events)
		assert.Equal(t, 0, day.TotalWorkMinutes)
		assert.Equal(t, 0, day.TotalBreakMinutes)
	})

	t.Run("never negative", func(t *testing.T) {
		events := dayEvents(uid, "2026-03-10",
			punchAt(ActionEndBreak, "08:00"),
			punchAt(ActionEndDay, "08:30"),
			punchAt(ActionStartDay, "09:00"),
		)
		day := ComputeDay(events)
		assert.GreaterOrEqual(t, day.TotalWorkMinutes, 0)
		assert.GreaterOrEqual(t, day.TotalBreakMinutes, 0)
	})
}

func TestComputeDay_DayWithoutEnd(t *testing.T) {
	uid := uuid.New()
	events := dayEvents(uid, "2026-03-10",
		punchAt(ActionStartDay, "09:00"),
		punchAt(ActionStartBreak, "12:00"),
	)

	day := ComputeDay(events)

	// The open break contributes nothing yet; work stops at break start.
	assert.Equal(t, 180, day.TotalWorkMinutes)
	assert.Equal(t, 0, day.TotalBreakMinutes)
	assert.Nil(t, day.EndTime)
}

func TestComputeMonthly(t *testing.T) {
	uid := uuid.New()
	var events []ClockEvent
	events = append(events, dayEvents(uid, "2026-03-02",
		punchAt(ActionStartDay, "09:00"),
		punchAt(ActionEndDay, "17:00"),
	)...)
	events = append(events, dayEvents(uid, "2026-03-03",
		punchAt(ActionStartDay, "09:00"),
		punchAt(ActionStartBreak, "12:00"),
		punchAt(ActionEndBreak, "13:00"),
		punchAt(ActionEndDay, "18:00"),
	)...)
	// A day with only an unmatched end_day: no work, not a working day.
	events = append(events, dayEvents(uid, "2026-03-04",
		punchAt(ActionEndDay, "17:00"),
	)...)

	monthly := ComputeMonthly(events)

	assert.Equal(t, 480+480, monthly.TotalWorkMinutes)
	assert.Equal(t, 60, monthly.TotalBreakMinutes)
	assert.Equal(t, 2, monthly.WorkingDays)
	assert.Equal(t, 480, monthly.AvgMinutesPerDay)
}

func TestComputeMonthly_Empty(t *testing.T) {
	monthly := ComputeMonthly(nil)
	assert.Zero(t, monthly.TotalWorkMinutes)
	assert.Zero(t, monthly.WorkingDays)
	assert.Zero(t, monthly.AvgMinutesPerDay)
}

func TestComputeYearly(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	var events []ClockEvent
	aliceEvents := dayEvents(alice, "2026-01-05",
		punchAt(ActionStartDay, "09:00"),
		punchAt(ActionEndDay, "17:00"),
	)
	events = append(events, aliceEvents...)

	bobEvents := dayEvents(bob, "2026-01-05",
		punchAt(ActionStartDay, "10:00"),
		punchAt(ActionEndDay, "14:00"),
	)
	for i := range bobEvents {
		bobEvents[i].Username = "bob"
	}
	events = append(events, bobEvents...)

	yearly := ComputeYearly(events)

	assert.Equal(t, 480+240, yearly.TotalWorkMinutes)
	// Both worked the same date; distinct dates, not user-days.
	assert.Equal(t, 1, yearly.WorkingDays)
	assert.Len(t, yearly.PerUser, 2)
	assert.Equal(t, "alice", yearly.PerUser[alice.String()].Username)
	assert.Equal(t, 480, yearly.PerUser[alice.String()].Summary.TotalWorkMinutes)
	assert.Equal(t, "bob", yearly.PerUser[bob.String()].Username)
	assert.Equal(t, 240, yearly.PerUser[bob.String()].Summary.TotalWorkMinutes)
}
