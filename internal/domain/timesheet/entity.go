package timesheet

import (
	"time"
)

// TimeRecord is one employee's attendance entry for one calendar date.
// At most one record exists per (employee, date). A record with a null
// clock-out and IsCompleted=false is an open session.
type TimeRecord struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	ClockIn     *time.Time
	ClockOut    *time.Time
	WorkedHours float64
	BreakHours  float64
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TimeSlot is a sub-interval (work or break) within a TimeRecord. Slots are
// owned by their record; their lifetime is bound to the parent.
type TimeSlot struct {
	ID               string
	TimeRecordID     string
	StartTime        time.Time
	EndTime          *time.Time
	SlotType         string
	IsActiveRightNow bool
	IsManualEntry    bool
}

// ClockEvent selects which timestamp of a TimeRecord an aggregation reads.
type ClockEvent string

const (
	ClockEventIn  ClockEvent = "clock_in"
	ClockEventOut ClockEvent = "clock_out"
)

// AllTeamsFilter is the sentinel team-filter value meaning "every team the
// viewer is entitled to see" rather than a concrete team list.
const AllTeamsFilter = "all"

// Scope is the set of employee ids a viewer may query attendance for.
// Unrestricted bypasses employee filtering entirely (attendance admins).
// An empty EmployeeIDs with Unrestricted=false means "no visible employees",
// which is a valid scope, not an error.
type Scope struct {
	Unrestricted bool
	EmployeeIDs  []string
}

// IsEmpty reports whether the scope resolves to zero visible employees.
func (s Scope) IsEmpty() bool {
	return !s.Unrestricted && len(s.EmployeeIDs) == 0
}

// HoursSummary is the summed hours over a date range and employee scope.
// Fields are zero-valued, never absent, when no records match.
type HoursSummary struct {
	TotalWorkedHours float64
	TotalBreakHours  float64
}

// TimesheetSummary carries summed worked hours plus averaged clock-in/out
// times expressed as seconds of day of the stored UTC timestamps. Each field
// zero-defaults independently.
type TimesheetSummary struct {
	TotalWorkedHours   float64
	AvgClockInSeconds  float64
	AvgClockOutSeconds float64
}
