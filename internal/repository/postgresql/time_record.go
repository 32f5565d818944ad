package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timetrack-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeRecordRepository struct {
	db *database.DB
}

func NewTimeRecordRepository(db *database.DB) timesheet.TimeRecordRepository {
	return &timeRecordRepository{db: db}
}

// SummarizeHours implements timesheet.TimeRecordRepository.
func (r *timeRecordRepository) SummarizeHours(ctx context.Context, employeeIDs []string, startDate, endDate time.Time) (timesheet.HoursSummary, error) {
query := `
		SELECT COALESCE(SUM(worked_hours), 0),
		       COALESCE(SUM(break_hours), 0)
		FROM time_records
		WHERE date BETWEEN $1 AND $2
	`
	args := []interface{}{startDate, endDate}

	// An empty id list applies no identifier filter (manager summary variant)
	if len(employeeIDs) > 0 {
		query += " AND employee_id = ANY($3)"
		args = append(args, employeeIDs)
	}

	var summary timesheet.HoursSummary
	err := r.db.QueryRow(ctx, query, args...).Scan(&summary.TotalWorkedHours, &summary.TotalBreakHours)
	if err != nil {
		return timesheet.HoursSummary{}, fmt.Errorf("failed to summarize hours: %w", err)
	}

	return summary, nil
}

// SummarizeTimesheet implements timesheet.TimeRecordRepository.
func (r *timeRecordRepository) SummarizeTimesheet(ctx context.Context, employeeIDs []string, startDate, endDate time.Time) (timesheet.TimesheetSummary, error) {
query := `
		SELECT COALESCE(SUM(worked_hours), 0),
		       COALESCE(AVG(EXTRACT(EPOCH FROM (clock_in AT TIME ZONE 'UTC')::time)), 0),
		       COALESCE(AVG(EXTRACT(EPOCH FROM (clock_out AT TIME ZONE 'UTC')::time)), 0)
		FROM time_records
		WHERE date BETWEEN $1 AND $2
	`
	args := []interface{}{startDate, endDate}

	if len(employeeIDs) > 0 {
		query += " AND employee_id = ANY($3)"
		args = append(args, employeeIDs)
	}

	var summary timesheet.TimesheetSummary
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&summary.TotalWorkedHours,
		&summary.AvgClockInSeconds,
		&summary.AvgClockOutSeconds,
	)
	if err != nil {
		return timesheet.TimesheetSummary{}, fmt.Errorf("failed to summarize timesheet: %w", err)
	}

	return summary, nil
}

// CountClockEvents implements timesheet.TimeRecordRepository.
//
// One grouped query covers the whole day; bucket membership is half-open
// [start, end), so an event at exactly HH:30 lands in the upper bucket.
func (r *timeRecordRepository) CountClockEvents(ctx context.Context, scope timesheet.Scope, timeZone string, date time.Time, event timesheet.ClockEvent) (map[int]int, error) {
// Restricted to the two known columns; never caller-supplied text.
	column := "clock_in"
	if event == timesheet.ClockEventOut {
		column = "clock_out"
	}

	query := fmt.Sprintf(`
		SELECT floor(extract(epoch FROM (tr.%s AT TIME ZONE $1)::time) / 1800)::int AS bucket,
		       COUNT(DISTINCT tr.employee_id) AS employee_count
		FROM time_records tr
		WHERE tr.date = $2
		  AND tr.%s IS NOT NULL
	`, column, column)
	args := []interface{}{timeZone, date}

	if !scope.Unrestricted {
		query += " AND tr.employee_id = ANY($3)"
		args = append(args, scope.EmployeeIDs)
	}

	query += " GROUP BY bucket"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count clock events: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var bucket, count int
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("failed to scan clock event bucket: %w", err)
		}
		counts[bucket] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clock event buckets: %w", err)
	}

	return counts, nil
}

// buildRecordWhere assembles the shared WHERE clause of the record listing
// and its count query.
func buildRecordWhere(scope timesheet.Scope, teamIDs []string, startDate, endDate time.Time) (string, []interface{}) {
	baseWhere := "tr.date BETWEEN $1 AND $2"
	args := []interface{}{startDate, endDate}
	argIdx := 3

	if !scope.Unrestricted {
		baseWhere += fmt.Sprintf(" AND tr.employee_id = ANY($%d)", argIdx)
		args = append(args, scope.EmployeeIDs)
		argIdx++
	}

	if len(teamIDs) > 0 {
		baseWhere += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM employee_teams et
			WHERE et.employee_id = tr.employee_id
			  AND et.team_id = ANY($%d)
		)`, argIdx)
		args = append(args, teamIDs)
	}

	return baseWhere, args
}

// ListRecords implements timesheet.TimeRecordRepository.
func (r *timeRecordRepository) ListRecords(ctx context.Context, scope timesheet.Scope, teamIDs []string, startDate, endDate time.Time, limit, offset int) ([]timesheet.EmployeeTimeRecordRow, error) {
	if limit <= 0 {
		return nil, timesheet.ErrInvalidRange
	}

baseWhere, args := buildRecordWhere(scope, teamIDs, startDate, endDate)
	argIdx := len(args) + 1

	selectQuery := fmt.Sprintf(`
		SELECT tr.id, tr.employee_id, tr.date,
		       COALESCE(ROUND(tr.worked_hours::numeric, 2), 0)::float8 AS worked_hours,
		       COALESCE(ROUND(tr.break_hours::numeric, 2), 0)::float8 AS break_hours,
		       COALESCE(
		               json_agg(
		                       json_build_object(
		                               'time_slot_id', ts.id,
		                               'start_time', ts.start_time,
		                               'end_time', ts.end_time,
		                               'slot_type', ts.slot_type,
		                               'is_active_right_now', ts.is_active_right_now,
		                               'is_manual_entry', ts.is_manual_entry
		                       ) ORDER BY ts.start_time ASC
		               ) FILTER (WHERE ts.id IS NOT NULL), '[]'
		       ) AS time_slots
		FROM time_records tr
		JOIN employees e ON e.id = tr.employee_id
		LEFT JOIN time_slots ts ON ts.time_record_id = tr.id
		WHERE %s
		GROUP BY tr.date, tr.employee_id, tr.id, e.first_name
		ORDER BY tr.date ASC, e.first_name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time records: %w", err)
	}
	defer rows.Close()

	var records []timesheet.EmployeeTimeRecordRow
	for rows.Next() {
		var row timesheet.EmployeeTimeRecordRow
		var date time.Time
		var slotsJSON []byte
		if err := rows.Scan(&row.TimeRecordID, &row.EmployeeID, &date, &row.WorkedHours, &row.BreakHours, &slotsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan time record row: %w", err)
		}
		row.Date = date.Format("2006-01-02")

		row.TimeSlots = []timesheet.TimeSlotDetail{}
		if len(slotsJSON) > 0 {
			if err := json.Unmarshal(slotsJSON, &row.TimeSlots); err != nil {
				return nil, fmt.Errorf("failed to decode time slots: %w", err)
			}
		}

		records = append(records, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time records: %w", err)
	}

	return records, nil
}

// CountRecords implements timesheet.TimeRecordRepository.
func (r *timeRecordRepository) CountRecords(ctx context.Context, scope timesheet.Scope, teamIDs []string, startDate, endDate time.Time) (int64, error) {
baseWhere, args := buildRecordWhere(scope, teamIDs, startDate, endDate)

	countQuery := `
		SELECT COUNT(DISTINCT tr.id)
		FROM time_records tr
		JOIN employees e ON e.id = tr.employee_id
		WHERE ` + baseWhere

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count time records: %w", err)
	}

	return total, nil
}

// WorkedHoursByDate implements timesheet.TimeRecordRepository.
func (r *timeRecordRepository) WorkedHoursByDate(ctx context.Context, employeeID string, startDate, endDate time.Time) (map[string]float64, error) {
query := `
		SELECT date, COALESCE(worked_hours, 0)
		FROM time_records
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
	`

	rows, err := r.db.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query worked hours: %w", err)
	}
	defer rows.Close()

	hoursByDate := make(map[string]float64)
	for rows.Next() {
		var date time.Time
		var workedHours float64
		if err := rows.Scan(&date, &workedHours); err != nil {
			return nil, fmt.Errorf("failed to scan worked hours: %w", err)
		}
		hoursByDate[date.Format("2006-01-02")] = workedHours
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate worked hours: %w", err)
	}

	return hoursByDate, nil
}

// FindOpenSession implements timesheet.TimeRecordRepository.
func (r *timeRecordRepository) FindOpenSession(ctx context.Context, employeeID string, date time.Time) (*timesheet.TimeRecord, error) {
query := `
		SELECT tr.id, tr.employee_id, tr.date, tr.clock_in, tr.clock_out,
		       COALESCE(tr.worked_hours, 0), COALESCE(tr.break_hours, 0),
		       tr.is_completed, tr.created_at, tr.updated_at
		FROM time_records tr
		JOIN employees e ON e.id = tr.employee_id
		WHERE tr.employee_id = $1
		  AND tr.date = $2
		  AND tr.clock_out IS NULL
		  AND tr.is_completed = false
		  AND e.is_active = true
		LIMIT 1
	`

	var record timesheet.TimeRecord
	err := r.db.QueryRow(ctx, query, employeeID, date).Scan(
		&record.ID, &record.EmployeeID, &record.Date, &record.ClockIn, &record.ClockOut,
		&record.WorkedHours, &record.BreakHours,
		&record.IsCompleted, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No open session is a normal outcome
		}
		return nil, fmt.Errorf("failed to find open session: %w", err)
	}

	return &record, nil
}
