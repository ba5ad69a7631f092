package punch

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func eventAt(action Action, ts time.Time) ClockEvent {
	return ClockEvent{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Action:    action,
		Timestamp: ts,
		Date:      ts.Format(DateLayout),
	}
}

func TestComputeStatus_Empty(t *testing.T) {
	status := ComputeStatus(nil)
	assert.Equal(t, StatusNotStarted, status.Status)
	assert.Empty(t, status.LastAction)
	assert.Nil(t, status.LastTime)
}

func TestComputeStatus_FollowsLastAction(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		actions []Action
		want    Status
	}{
		{"after start_day", []Action{ActionStartDay}, StatusWorking},
		{"after start_break", []Action{ActionStartDay, ActionStartBreak}, StatusOnBreak},
		{"after end_break", []Action{ActionStartDay, ActionStartBreak, ActionEndBreak}, StatusWorking},
		{"after end_day", []Action{ActionStartDay, ActionEndDay}, StatusDayEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]ClockEvent, len(tt.actions))
			for i, a := range tt.actions {
				events[i] = eventAt(a, base.Add(time.Duration(i)*time.Hour))
			}

			status := ComputeStatus(events)
			assert.Equal(t, tt.want, status.Status)
			assert.Equal(t, tt.actions[len(tt.actions)-1], status.LastAction)
			assert.NotNil(t, status.LastTime)
		})
	}
}

func TestComputeStatus_UnsortedInput(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	events := []ClockEvent{
		eventAt(ActionEndDay, base.Add(8*time.Hour)),
		eventAt(ActionStartDay, base),
	}

	status := ComputeStatus(events)
	assert.Equal(t, StatusDayEnded, status.Status)
}

func TestSortEvents_StableOnEqualTimestamps(t *testing.T) {
	ts := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	first := eventAt(ActionStartDay, ts)
	second := eventAt(ActionStartBreak, ts)
	third := eventAt(ActionEndBreak, ts.Add(time.Minute))

	sorted := SortEvents([]ClockEvent{first, second, third})

	assert.Equal(t, first.ID, sorted[0].ID)
	assert.Equal(t, second.ID, sorted[1].ID)
	assert.Equal(t, third.ID, sorted[2].ID)
}

func TestSortEvents_DoesNotMutateInput(t *testing.T) {
	ts := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	events := []ClockEvent{
		eventAt(ActionEndDay, ts.Add(time.Hour)),
		eventAt(ActionStartDay, ts),
	}

	_ = SortEvents(events)
	assert.Equal(t, ActionEndDay, events[0].Action)
}

func TestAllowedFrom(t *testing.T) {
	tests := []struct {
		action  Action
		current Status
		allowed bool
	}{
		{ActionStartDay, StatusNotStarted, true},
		{ActionStartDay, StatusWorking, false},
		{ActionStartDay, StatusOnBreak, false},
		{ActionStartDay, StatusDayEnded, false},

		{ActionStartBreak, StatusWorking, true},
		{ActionStartBreak, StatusNotStarted, false},
		{ActionStartBreak, StatusOnBreak, false},

		{ActionEndBreak, StatusOnBreak, true},
		{ActionEndBreak, StatusWorking, false},

		{ActionEndDay, StatusWorking, true},
		{ActionEndDay, StatusOnBreak, true},
		{ActionEndDay, StatusNotStarted, true},
		{ActionEndDay, StatusDayEnded, false},
	}

	for _, tt := range tests {
		got := AllowedFrom(tt.action, tt.current)
		assert.Equal(t, tt.allowed, got, "%s from %s", tt.action, tt.current)
	}
}
