package punch

import (
	"time"

	"github.com/google/uuid"
)

// Action is one of the four clock actions an employee can record.
type Action string

const (
	ActionStartDay   Action = "start_day"
	ActionStartBreak Action = "start_break"
	ActionEndBreak   Action = "end_break"
	ActionEndDay     Action = "end_day"
)

// ValidAction reports whether a is one of the four known actions.
func ValidAction(a Action) bool {
	switch a {
	case ActionStartDay, ActionStartBreak, ActionEndBreak, ActionEndDay:
		return true
	}
	return false
}

// Status is the derived clock state of a user for one day. It is never
// stored; it is recomputed from the day's events on every query.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusWorking    Status = "working"
	StatusOnBreak    Status = "on_break"
	StatusDayEnded   Status = "day_ended"
)

// DateLayout is the calendar-day key format used everywhere.
const DateLayout = "2006-01-02"

// ClockEvent is one immutable entry of the append-only event log.
// Date is derived from Timestamp in the application timezone; ordering is
// by Timestamp, never by insertion order.
type ClockEvent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Username  string    `gorm:"column:username;type:varchar(100);not null" json:"username"`
	Action    Action    `gorm:"column:action;type:varchar(20);not null" json:"action"`
	Timestamp time.Time `gorm:"column:recorded_at;type:timestamptz;not null;index" json:"timestamp"`
	Date      string    `gorm:"column:event_date;type:varchar(10);not null;index" json:"date"`
}

func (ClockEvent) TableName() string {
	return "clock_events"
}

// ArchivedClockEvent is a ClockEvent moved to the yearly archive table by
// the postgres store. The file store archives to a separate JSON file.
type ArchivedClockEvent ClockEvent

func (ArchivedClockEvent) TableName() string {
	return "clock_events_archive"
}

// UserStatus is the derived answer to "where is this user right now".
type UserStatus struct {
	Status     Status     `json:"status"`
	LastAction Action     `json:"lastAction,omitempty"`
	LastTime   *time.Time `json:"lastTime,omitempty"`
}

// DaySummary holds one user's aggregated durations for one calendar day,
// rounded to whole minutes.
type DaySummary struct {
	TotalWorkMinutes  int        `json:"totalWorkMinutes"`
	TotalBreakMinutes int        `json:"totalBreakMinutes"`
	StartTime         *time.Time `json:"startTime,omitempty"`
	EndTime           *time.Time `json:"endTime,omitempty"`
}

// MonthlySummary aggregates one user's days over a month (or any set of
// days). WorkingDays counts only days with TotalWorkMinutes > 0.
type MonthlySummary struct {
	TotalWorkMinutes  int `json:"totalWorkMinutes"`
	TotalBreakMinutes int `json:"totalBreakMinutes"`
	WorkingDays       int `json:"workingDays"`
	AvgMinutesPerDay  int `json:"avgMinutesPerDay"`
}

// UserYearly is one employee's share of a yearly archive summary.
type UserYearly struct {
	Username string         `json:"username"`
	Summary  MonthlySummary `json:"summary"`
}

// YearlySummary aggregates a whole archived year, with the per-employee
// breakdown keyed by user id.
type YearlySummary struct {
	TotalWorkMinutes  int                   `json:"totalWorkMinutes"`
	TotalBreakMinutes int                   `json:"totalBreakMinutes"`
	WorkingDays       int                   `json:"workingDays"`
	PerUser           map[string]UserYearly `json:"perUser"`
}
