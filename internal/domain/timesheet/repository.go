package timesheet

import (
	"context"
	"time"
)

// TimeRecordRepository defines the read-only query boundary of the timesheet
// core. Implementations never mutate records; the clock-in/out workflow owns
// all writes.
type TimeRecordRepository interface {
	// SummarizeHours sums worked and break hours over the inclusive date
	// range. An empty employeeIDs slice applies no identifier filter; callers
	// that require a narrowed scope must not pass an empty slice through.
	// Zero-valued sums, never an error, when no rows match.
	SummarizeHours(ctx context.Context, employeeIDs []string, startDate, endDate time.Time) (HoursSummary, error)

	// SummarizeTimesheet sums worked hours and averages clock-in/out
	// seconds-of-day over the range. Each field zero-defaults independently.
	SummarizeTimesheet(ctx context.Context, employeeIDs []string, startDate, endDate time.Time) (TimesheetSummary, error)

	// CountClockEvents counts distinct employees per half-hour bucket for the
	// given clock event on one date, after converting stored timestamps to
	// timeZone. Returns a sparse bucket-index -> count map; buckets with no
	// events are absent. One grouped query, never a query per bucket.
	CountClockEvents(ctx context.Context, scope Scope, timeZone string, date time.Time, event ClockEvent) (map[int]int, error)

	// ListRecords returns one row per (employee, date) with embedded ordered
	// time slots, filtered by scope, optional team membership and date range,
	// ordered by date then employee first name, paginated by limit/offset on
	// the grouped rows.
	ListRecords(ctx context.Context, scope Scope, teamIDs []string, startDate, endDate time.Time, limit, offset int) ([]EmployeeTimeRecordRow, error)

	// CountRecords counts the grouped rows ListRecords would return for the
	// same filters, for pagination metadata.
	CountRecords(ctx context.Context, scope Scope, teamIDs []string, startDate, endDate time.Time) (int64, error)

	// WorkedHoursByDate returns worked hours keyed by YYYY-MM-DD for one
	// employee over the range. Days without a record are absent from the map.
	WorkedHoursByDate(ctx context.Context, employeeID string, startDate, endDate time.Time) (map[string]float64, error)

	// FindOpenSession returns the employee's open session (null clock-out,
	// not completed, active employee) on the exact date, or nil when none
	// exists. Absence is a normal outcome, not an error.
	FindOpenSession(ctx context.Context, employeeID string, date time.Time) (*TimeRecord, error)
}
