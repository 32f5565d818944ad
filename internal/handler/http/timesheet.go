package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/timetrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type TimesheetHandler interface {
	// ClockInTrend returns the half-hour clock-in distribution for one day
	ClockInTrend(w http.ResponseWriter, r *http.Request)
	// ClockOutTrend returns the half-hour clock-out distribution for one day
	ClockOutTrend(w http.ResponseWriter, r *http.Request)
	// HoursSummary returns the viewer's own worked/break hour totals
	HoursSummary(w http.ResponseWriter, r *http.Request)
	// TeamHoursSummary returns hour totals over the viewer's team scope
	TeamHoursSummary(w http.ResponseWriter, r *http.Request)
	// TimesheetSummary returns worked hours plus average clock times
	TimesheetSummary(w http.ResponseWriter, r *http.Request)
	// ListRecords returns the paginated per-day record listing
	ListRecords(w http.ResponseWriter, r *http.Request)
	// WorkHours returns one employee's per-day worked hours over a range
	WorkHours(w http.ResponseWriter, r *http.Request)
	// OpenSession returns an employee's unfinished session on a date, if any
	OpenSession(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

// viewerID extracts the authenticated employee id from the token claims.
func viewerID(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	id, ok := claims["employee_id"].(string)
	return id, ok && id != ""
}

// parseTeams splits the comma-separated teams query parameter.
func parseTeams(r *http.Request) []string {
	raw := r.URL.Query().Get("teams")
	if raw == "" {
		return nil
	}

	var teams []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			teams = append(teams, t)
		}
	}
	return teams
}

func (h *timesheetHandlerImpl) clockTrend(w http.ResponseWriter, r *http.Request, event timesheet.ClockEvent) {
	viewer, ok := viewerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	filter := timesheet.TrendFilter{
		Teams:    parseTeams(r),
		Date:     r.URL.Query().Get("date"),      // format: YYYY-MM-DD
		TimeZone: r.URL.Query().Get("time_zone"), // IANA zone name
	}

	result, err := h.timesheetService.ClockEventDistribution(r.Context(), viewer, filter, event)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockInTrend handles GET /timesheet/analytics/clock-in-trend
func (h *timesheetHandlerImpl) ClockInTrend(w http.ResponseWriter, r *http.Request) {
	h.clockTrend(w, r, timesheet.ClockEventIn)
}

// ClockOutTrend handles GET /timesheet/analytics/clock-out-trend
func (h *timesheetHandlerImpl) ClockOutTrend(w http.ResponseWriter, r *http.Request) {
	h.clockTrend(w, r, timesheet.ClockEventOut)
}

// HoursSummary handles GET /timesheet/summary
func (h *timesheetHandlerImpl) HoursSummary(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	filter := timesheet.RangeFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.timesheetService.HoursSummary(r.Context(), []string{viewer}, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TeamHoursSummary handles GET /timesheet/analytics/attendance-summary
func (h *timesheetHandlerImpl) TeamHoursSummary(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	filter := timesheet.TeamSummaryFilter{
		Teams:     parseTeams(r),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.timesheetService.TeamHoursSummary(r.Context(), viewer, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TimesheetSummary handles GET /timesheet/analytics/timesheet-summary
func (h *timesheetHandlerImpl) TimesheetSummary(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	filter := timesheet.TeamSummaryFilter{
		Teams:     parseTeams(r),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.timesheetService.TimesheetSummary(r.Context(), viewer, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRecords handles GET /timesheet/records
func (h *timesheetHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filter := timesheet.RecordListFilter{
		Teams:     parseTeams(r),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
		Page:      page,
		Limit:     limit,
	}

	result, err := h.timesheetService.ListRecords(r.Context(), viewer, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// WorkHours handles GET /timesheet/records/work-hours/{employeeID}
//
// Employees may read their own listing; anyone else's requires an
// attendance role.
func (h *timesheetHandlerImpl) WorkHours(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if employeeID != viewer {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Attendance access required")
			return
		}
		role, _ := claims["attendance_role"].(string)
		if employee.AttendanceRole(role) == employee.AttendanceRoleNone {
			response.Forbidden(w, "Attendance access required")
			return
		}
	}

	filter := timesheet.RangeFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.timesheetService.DailyWorkHours(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// OpenSession handles GET /timesheet/open-session
func (h *timesheetHandlerImpl) OpenSession(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	date := r.URL.Query().Get("date") // format: YYYY-MM-DD

	result, err := h.timesheetService.OpenSession(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result == nil {
		response.SuccessWithMessage(w, "No open session", nil)
		return
	}

	response.Success(w, result)
}
