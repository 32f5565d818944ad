package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timetrack-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET FILTERS
// ========================================

// TrendFilter selects one day's clock-event distribution.
type TrendFilter struct {
	Teams    []string `json:"teams,omitempty"` // team ids, or the "all" sentinel
	Date     string   `json:"date"`            // YYYY-MM-DD
	TimeZone string   `json:"time_zone"`       // IANA zone name, e.g. Asia/Colombo
}

func (f *TrendFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(f.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(f.TimeZone) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_zone",
			Message: "time_zone is required",
		})
	}

	if len(f.Teams) == 0 {
		f.Teams = []string{AllTeamsFilter} // Default to the viewer's full scope
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RangeFilter is a plain inclusive date range.
type RangeFilter struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, valid := validator.IsValidDate(f.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(f.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, valid := validator.IsValidDate(f.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range parses the filter into time values. Validate must pass first.
// Returns ErrInvalidRange when the end date precedes the start date.
func (f *RangeFilter) Range() (time.Time, time.Time, error) {
	start, _ := validator.IsValidDate(f.StartDate)
	end, _ := validator.IsValidDate(f.EndDate)
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

// TeamSummaryFilter is a date range narrowed by the viewer's team filter.
type TeamSummaryFilter struct {
	Teams     []string `json:"teams,omitempty"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

func (f *TeamSummaryFilter) Validate() error {
	rf := RangeFilter{StartDate: f.StartDate, EndDate: f.EndDate}
	if err := rf.Validate(); err != nil {
		return err
	}

	if len(f.Teams) == 0 {
		f.Teams = []string{AllTeamsFilter}
	}

	return nil
}

func (f *TeamSummaryFilter) Range() (time.Time, time.Time, error) {
	rf := RangeFilter{StartDate: f.StartDate, EndDate: f.EndDate}
	return rf.Range()
}

// RecordListFilter drives the paginated per-day record listing.
type RecordListFilter struct {
	Teams     []string `json:"teams,omitempty"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RecordListFilter) Validate() error {
	var errs validator.ValidationErrors

	rf := RangeFilter{StartDate: f.StartDate, EndDate: f.EndDate}
	if err := rf.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(f.Teams) == 0 {
		f.Teams = []string{AllTeamsFilter}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (f *RecordListFilter) Range() (time.Time, time.Time, error) {
	rf := RangeFilter{StartDate: f.StartDate, EndDate: f.EndDate}
	return rf.Range()
}

// ========================================
// TIMESHEET RESPONSES
// ========================================

// TrendSlotResponse is one half-hour bucket of a clock-event distribution.
type TrendSlotResponse struct {
	Slot  string `json:"slot"` // "HH:mm - HH:mm"
	Count int    `json:"count"`
}

type HoursSummaryResponse struct {
	TotalWorkedHours float64 `json:"total_worked_hours"`
	TotalBreakHours  float64 `json:"total_break_hours"`
}

type TimesheetSummaryResponse struct {
	TotalWorkedHours   float64 `json:"total_worked_hours"`
	AvgClockInSeconds  float64 `json:"avg_clock_in_seconds"`
	AvgClockOutSeconds float64 `json:"avg_clock_out_seconds"`
	AvgClockIn         string  `json:"avg_clock_in,omitempty"`  // "HH:mm", empty when no data
	AvgClockOut        string  `json:"avg_clock_out,omitempty"` // "HH:mm", empty when no data
}

// TimeSlotDetail is the embedded slot shape inside a record row. The JSON tags
// double as the aggregation keys built by the record query.
type TimeSlotDetail struct {
	TimeSlotID       string     `json:"time_slot_id"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	SlotType         string     `json:"slot_type"`
	IsActiveRightNow bool       `json:"is_active_right_now"`
	IsManualEntry    bool       `json:"is_manual_entry"`
}

// EmployeeTimeRecordRow is one (employee, date) row of the paginated listing.
type EmployeeTimeRecordRow struct {
	TimeRecordID string           `json:"time_record_id"`
	EmployeeID   string           `json:"employee_id"`
	Date         string           `json:"date"` // YYYY-MM-DD
	WorkedHours  float64          `json:"worked_hours"`
	BreakHours   float64          `json:"break_hours"`
	TimeSlots    []TimeSlotDetail `json:"time_slots"`
}

type ListTimeRecordsResponse struct {
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
	Records    []EmployeeTimeRecordRow `json:"records"`
}

// DailyWorkHours is one day of an employee's work-hours listing. Days without
// a time record report zero hours.
type DailyWorkHours struct {
	Date        string  `json:"date"`
	WorkedHours float64 `json:"worked_hours"`
}

// TimeRecordResponse is the presentation shape of a single record.
type TimeRecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	ClockInTime  *string `json:"clock_in_time,omitempty"`
	ClockOutTime *string `json:"clock_out_time,omitempty"`
	WorkedHours  float64 `json:"worked_hours"`
	BreakHours   float64 `json:"break_hours"`
	IsCompleted  bool    `json:"is_completed"`
}
