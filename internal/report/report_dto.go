package report

import "github.com/Petros-Code/Pointeuse-MeduzaStore/internal/punch"

// EmployeeDay is one employee's line in a daily report. Anomalies flag
// incomplete days (missing start or end punch) for the admin to chase.
type EmployeeDay struct {
	UserID    string           `json:"userId"`
	Username  string           `json:"username"`
	Summary   punch.DaySummary `json:"summary"`
	Anomalies []string         `json:"anomalies,omitempty"`
}

type DailyReport struct {
	Date      string        `json:"date"`
	Employees []EmployeeDay `json:"employees"`
}

type EmployeeMonth struct {
	UserID   string               `json:"userId"`
	Username string               `json:"username"`
	Summary  punch.MonthlySummary `json:"summary"`
}

type MonthlyReport struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Employees []EmployeeMonth `json:"employees"`
}

type ArchiveReport struct {
	Year       int                 `json:"year"`
	EventCount int                 `json:"eventCount"`
	Summary    punch.YearlySummary `json:"summary"`
}

type DailyEmailRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type MonthlyEmailRequest struct {
	Year  int `json:"year" binding:"omitempty,min=2000,max=2200"`
	Month int `json:"month" binding:"omitempty,min=1,max=12"`
}
