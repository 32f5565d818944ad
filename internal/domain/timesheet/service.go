package timesheet

import "context"

// TimesheetService is the attendance aggregation and visibility engine
// consumed by the dashboard handlers. All operations are read-only; the
// visibility scope is resolved before any aggregation that depends on it.
type TimesheetService interface {
	// ResolveScope computes the set of employee ids the viewer may query.
	ResolveScope(ctx context.Context, viewerID string, teamFilter []string) (Scope, error)

	// ClockEventDistribution returns the 48 half-hour buckets of one day with
	// the distinct count of visible employees whose clock event falls in each.
	ClockEventDistribution(ctx context.Context, viewerID string, filter TrendFilter, event ClockEvent) ([]TrendSlotResponse, error)

	// HoursSummary sums hours over an explicit, pre-narrowed employee scope.
	// An empty scope yields a zero summary without touching storage.
	HoursSummary(ctx context.Context, employeeIDs []string, filter RangeFilter) (HoursSummaryResponse, error)

	// TeamHoursSummary sums hours over the viewer's resolved team scope. An
	// empty resolved scope applies no identifier filter (manager dashboard
	// variant) and still zero-defaults on no rows.
	TeamHoursSummary(ctx context.Context, viewerID string, filter TeamSummaryFilter) (HoursSummaryResponse, error)

	// TimesheetSummary reports summed worked hours and averaged clock times
	// over the viewer's resolved scope.
	TimesheetSummary(ctx context.Context, viewerID string, filter TeamSummaryFilter) (TimesheetSummaryResponse, error)

	// ListRecords returns the paginated per-day record rows visible to the
	// viewer, with embedded time slots.
	ListRecords(ctx context.Context, viewerID string, filter RecordListFilter) (ListTimeRecordsResponse, error)

	// DailyWorkHours lists one entry per day in range for one employee,
	// zero-filled for days without a record.
	DailyWorkHours(ctx context.Context, employeeID string, filter RangeFilter) ([]DailyWorkHours, error)

	// OpenSession finds the employee's open session on the given date, or nil
	// when there is none.
	OpenSession(ctx context.Context, employeeID string, date string) (*TimeRecordResponse, error)
}
