package timesheet

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/timetrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/pkg/validator"
)

type TimesheetServiceImpl struct {
	timesheet.TimeRecordRepository
	employee.DirectoryRepository
}

func NewTimesheetService(
	timeRecordRepo timesheet.TimeRecordRepository,
	directoryRepo employee.DirectoryRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		TimeRecordRepository: timeRecordRepo,
		DirectoryRepository:  directoryRepo,
	}
}

// ResolveScope implements timesheet.TimesheetService.
//
// Admins see everyone. With the "all" sentinel a manager sees the union of
// their direct reports and members of teams they supervise (one hop, never a
// transitive closure). A concrete team list is a plain membership filter with
// no manager overlay.
func (s *TimesheetServiceImpl) ResolveScope(ctx context.Context, viewerID string, teamFilter []string) (timesheet.Scope, error) {
	role, err := s.DirectoryRepository.AttendanceRoleOf(ctx, viewerID)
	if err != nil {
		return timesheet.Scope{}, fmt.Errorf("failed to resolve attendance role: %w", err)
	}

	if role == employee.AttendanceRoleAdmin {
		return timesheet.Scope{Unrestricted: true}, nil
	}

	if len(teamFilter) == 0 || validator.IsInSlice(timesheet.AllTeamsFilter, teamFilter) {
		reports, err := s.DirectoryRepository.ListDirectReports(ctx, viewerID)
		if err != nil {
			return timesheet.Scope{}, fmt.Errorf("failed to list direct reports: %w", err)
		}

		supervised, err := s.DirectoryRepository.ListSupervisedTeams(ctx, viewerID)
		if err != nil {
			return timesheet.Scope{}, fmt.Errorf("failed to list supervised teams: %w", err)
		}

		var members []string
		if len(supervised) > 0 {
			members, err = s.DirectoryRepository.ListTeamMembers(ctx, supervised)
			if err != nil {
				return timesheet.Scope{}, fmt.Errorf("failed to list supervised team members: %w", err)
			}
		}

		return timesheet.Scope{EmployeeIDs: distinctUnion(reports, members)}, nil
	}

	members, err := s.DirectoryRepository.ListTeamMembers(ctx, teamFilter)
	if err != nil {
		return timesheet.Scope{}, fmt.Errorf("failed to list team members: %w", err)
	}

	return timesheet.Scope{EmployeeIDs: members}, nil
}

// ClockEventDistribution implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ClockEventDistribution(ctx context.Context, viewerID string, filter timesheet.TrendFilter, event timesheet.ClockEvent) ([]timesheet.TrendSlotResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	// Reject bad zones before touching storage; this is a configuration
	// error, not a per-bucket failure.
	if _, err := time.LoadLocation(filter.TimeZone); err != nil {
		return nil, timesheet.ErrInvalidTimeZone
	}

	date, _ := validator.IsValidDate(filter.Date)

	scope, err := s.ResolveScope(ctx, viewerID, filter.Teams)
	if err != nil {
		return nil, err
	}

	var counts map[int]int
	if !scope.IsEmpty() {
		counts, err = s.TimeRecordRepository.CountClockEvents(ctx, scope, filter.TimeZone, date, event)
		if err != nil {
			return nil, fmt.Errorf("failed to count clock events: %w", err)
		}
	}

	// All 48 buckets are reported, zero counts included.
	slots := make([]timesheet.TrendSlotResponse, 0, BucketsPerDay)
	for _, bucket := range DayBuckets() {
		slots = append(slots, timesheet.TrendSlotResponse{
			Slot:  bucket.Label(),
			Count: counts[bucket.Index],
		})
	}

	return slots, nil
}

// HoursSummary implements timesheet.TimesheetService. The employee scope is
// the caller's responsibility; an empty scope short-circuits to zeros.
func (s *TimesheetServiceImpl) HoursSummary(ctx context.Context, employeeIDs []string, filter timesheet.RangeFilter) (timesheet.HoursSummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.HoursSummaryResponse{}, err
	}

	startDate, endDate, err := filter.Range()
	if err != nil {
		return timesheet.HoursSummaryResponse{}, err
	}

	if len(employeeIDs) == 0 {
		return timesheet.HoursSummaryResponse{}, nil
	}

	summary, err := s.TimeRecordRepository.SummarizeHours(ctx, employeeIDs, startDate, endDate)
	if err != nil {
		return timesheet.HoursSummaryResponse{}, fmt.Errorf("failed to summarize hours: %w", err)
	}

	return timesheet.HoursSummaryResponse{
		TotalWorkedHours: summary.TotalWorkedHours,
		TotalBreakHours:  summary.TotalBreakHours,
	}, nil
}

// TeamHoursSummary implements timesheet.TimesheetService. Unlike
// HoursSummary, an empty resolved scope applies no identifier filter.
func (s *TimesheetServiceImpl) TeamHoursSummary(ctx context.Context, viewerID string, filter timesheet.TeamSummaryFilter) (timesheet.HoursSummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.HoursSummaryResponse{}, err
	}

	startDate, endDate, err := filter.Range()
	if err != nil {
		return timesheet.HoursSummaryResponse{}, err
	}

	scope, err := s.ResolveScope(ctx, viewerID, filter.Teams)
	if err != nil {
		return timesheet.HoursSummaryResponse{}, err
	}

	summary, err := s.TimeRecordRepository.SummarizeHours(ctx, scope.EmployeeIDs, startDate, endDate)
	if err != nil {
		return timesheet.HoursSummaryResponse{}, fmt.Errorf("failed to summarize team hours: %w", err)
	}

	return timesheet.HoursSummaryResponse{
		TotalWorkedHours: summary.TotalWorkedHours,
		TotalBreakHours:  summary.TotalBreakHours,
	}, nil
}

// TimesheetSummary implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) TimesheetSummary(ctx context.Context, viewerID string, filter timesheet.TeamSummaryFilter) (timesheet.TimesheetSummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.TimesheetSummaryResponse{}, err
	}

	startDate, endDate, err := filter.Range()
	if err != nil {
		return timesheet.TimesheetSummaryResponse{}, err
	}

	scope, err := s.ResolveScope(ctx, viewerID, filter.Teams)
	if err != nil {
		return timesheet.TimesheetSummaryResponse{}, err
	}

	if scope.IsEmpty() {
		return timesheet.TimesheetSummaryResponse{}, nil
	}

	var employeeIDs []string
	if !scope.Unrestricted {
		employeeIDs = scope.EmployeeIDs
	}

	summary, err := s.TimeRecordRepository.SummarizeTimesheet(ctx, employeeIDs, startDate, endDate)
	if err != nil {
		return timesheet.TimesheetSummaryResponse{}, fmt.Errorf("failed to summarize timesheet: %w", err)
	}

	return timesheet.TimesheetSummaryResponse{
		TotalWorkedHours:   summary.TotalWorkedHours,
		AvgClockInSeconds:  summary.AvgClockInSeconds,
		AvgClockOutSeconds: summary.AvgClockOutSeconds,
		AvgClockIn:         secondsOfDayToClock(summary.AvgClockInSeconds),
		AvgClockOut:        secondsOfDayToClock(summary.AvgClockOutSeconds),
	}, nil
}

// ListRecords implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListRecords(ctx context.Context, viewerID string, filter timesheet.RecordListFilter) (timesheet.ListTimeRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListTimeRecordsResponse{}, err
	}

	startDate, endDate, err := filter.Range()
	if err != nil {
		return timesheet.ListTimeRecordsResponse{}, err
	}

	scope, err := s.ResolveScope(ctx, viewerID, filter.Teams)
	if err != nil {
		return timesheet.ListTimeRecordsResponse{}, err
	}

	response := timesheet.ListTimeRecordsResponse{
		Page:    filter.Page,
		Limit:   filter.Limit,
		Records: []timesheet.EmployeeTimeRecordRow{},
	}

	if scope.IsEmpty() {
		return response, nil
	}

	// The sentinel means "whole scope": no additional membership predicate.
	var teamIDs []string
	if !validator.IsInSlice(timesheet.AllTeamsFilter, filter.Teams) {
		teamIDs = filter.Teams
	}

	total, err := s.TimeRecordRepository.CountRecords(ctx, scope, teamIDs, startDate, endDate)
	if err != nil {
		return timesheet.ListTimeRecordsResponse{}, fmt.Errorf("failed to count time records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	records, err := s.TimeRecordRepository.ListRecords(ctx, scope, teamIDs, startDate, endDate, filter.Limit, offset)
	if err != nil {
		return timesheet.ListTimeRecordsResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	response.TotalCount = total
	response.TotalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	if records != nil {
		response.Records = records
	}

	return response, nil
}

// DailyWorkHours implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) DailyWorkHours(ctx context.Context, employeeID string, filter timesheet.RangeFilter) ([]timesheet.DailyWorkHours, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	startDate, endDate, err := filter.Range()
	if err != nil {
		return nil, err
	}

	if _, err := s.DirectoryRepository.IsActive(ctx, employeeID); err != nil {
		return nil, err
	}

	hoursByDate, err := s.TimeRecordRepository.WorkedHoursByDate(ctx, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get worked hours by date: %w", err)
	}

	// Days without a record report zero hours.
	var days []timesheet.DailyWorkHours
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		days = append(days, timesheet.DailyWorkHours{
			Date:        key,
			WorkedHours: hoursByDate[key],
		})
	}

	return days, nil
}

// OpenSession implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) OpenSession(ctx context.Context, employeeID string, date string) (*timesheet.TimeRecordResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	parsedDate, valid := validator.IsValidDate(date)
	if !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	record, err := s.TimeRecordRepository.FindOpenSession(ctx, employeeID, parsedDate)
	if err != nil {
		return nil, fmt.Errorf("failed to find open session: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	return &timesheet.TimeRecordResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		Date:         record.Date.Format("2006-01-02"),
		ClockInTime:  timePtrToString(record.ClockIn),
		ClockOutTime: timePtrToString(record.ClockOut),
		WorkedHours:  record.WorkedHours,
		BreakHours:   record.BreakHours,
		IsCompleted:  record.IsCompleted,
	}, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// secondsOfDayToClock renders an averaged seconds-of-day value as "HH:mm".
// Zero (no data) renders as empty.
func secondsOfDayToClock(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	total := int(math.Round(seconds))
	return fmt.Sprintf("%02d:%02d", (total/3600)%24, (total%3600)/60)
}

// distinctUnion merges id slices preserving first-seen order, dropping
// duplicates.
func distinctUnion(slices ...[]string) []string {
	seen := make(map[string]struct{})
	var union []string
	for _, ids := range slices {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}
	return union
}
