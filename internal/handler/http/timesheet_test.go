package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/timetrack-backend-go/internal/config"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

// fakeTimesheetService returns canned results so the tests exercise routing,
// auth and error mapping only.
type fakeTimesheetService struct {
	trend       []timesheet.TrendSlotResponse
	hours       timesheet.HoursSummaryResponse
	summary     timesheet.TimesheetSummaryResponse
	records     timesheet.ListTimeRecordsResponse
	workHours   []timesheet.DailyWorkHours
	openSession *timesheet.TimeRecordResponse
	err         error

	lastEmployeeIDs []string
	lastViewerID    string
}

func (f *fakeTimesheetService) ResolveScope(ctx context.Context, viewerID string, teamFilter []string) (timesheet.Scope, error) {
	return timesheet.Scope{}, f.err
}

func (f *fakeTimesheetService) ClockEventDistribution(ctx context.Context, viewerID string, filter timesheet.TrendFilter, event timesheet.ClockEvent) ([]timesheet.TrendSlotResponse, error) {
	f.lastViewerID = viewerID
	return f.trend, f.err
}

func (f *fakeTimesheetService) HoursSummary(ctx context.Context, employeeIDs []string, filter timesheet.RangeFilter) (timesheet.HoursSummaryResponse, error) {
	f.lastEmployeeIDs = employeeIDs
	return f.hours, f.err
}

func (f *fakeTimesheetService) TeamHoursSummary(ctx context.Context, viewerID string, filter timesheet.TeamSummaryFilter) (timesheet.HoursSummaryResponse, error) {
	f.lastViewerID = viewerID
	return f.hours, f.err
}

func (f *fakeTimesheetService) TimesheetSummary(ctx context.Context, viewerID string, filter timesheet.TeamSummaryFilter) (timesheet.TimesheetSummaryResponse, error) {
	f.lastViewerID = viewerID
	return f.summary, f.err
}

func (f *fakeTimesheetService) ListRecords(ctx context.Context, viewerID string, filter timesheet.RecordListFilter) (timesheet.ListTimeRecordsResponse, error) {
	f.lastViewerID = viewerID
	return f.records, f.err
}

func (f *fakeTimesheetService) DailyWorkHours(ctx context.Context, employeeID string, filter timesheet.RangeFilter) ([]timesheet.DailyWorkHours, error) {
	return f.workHours, f.err
}

func (f *fakeTimesheetService) OpenSession(ctx context.Context, employeeID string, date string) (*timesheet.TimeRecordResponse, error) {
	return f.openSession, f.err
}

func newTestRouter(svc timesheet.TimesheetService) (http.Handler, jwt.Service) {
	cfg := &config.Config{
		App: config.AppConfig{Env: "test", FrontendURL: "http://localhost:3000"},
	}
	jwtService := jwt.NewJWTService(testSecret, "1h")
	return NewRouter(cfg, jwtService, NewTimesheetHandler(svc)), jwtService
}

func mintToken(t *testing.T, jwtService jwt.Service, employeeID string, role employee.AttendanceRole) string {
	token, _, err := jwtService.GenerateAccessToken(employeeID, role)
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	router, _ := newTestRouter(&fakeTimesheetService{})

	rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/summary", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTimesheetHandler_HoursSummary(t *testing.T) {
	svc := &fakeTimesheetService{hours: timesheet.HoursSummaryResponse{TotalWorkedHours: 37.5, TotalBreakHours: 4}}
	router, jwtService := newTestRouter(svc)
	token := mintToken(t, jwtService, "emp-1", employee.AttendanceRoleNone)

	rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/summary?start_date=2025-06-01&end_date=2025-06-30", token)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)

	// The viewer's own id is the summary scope
	assert.Equal(t, []string{"emp-1"}, svc.lastEmployeeIDs)
}

func TestTimesheetHandler_ClockInTrend(t *testing.T) {
	var trend []timesheet.TrendSlotResponse
	for i := 0; i < 48; i++ {
		trend = append(trend, timesheet.TrendSlotResponse{Slot: "x", Count: 0})
	}
	svc := &fakeTimesheetService{trend: trend}
	router, jwtService := newTestRouter(svc)
	token := mintToken(t, jwtService, "mgr-1", employee.AttendanceRoleManager)

	rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/analytics/clock-in-trend?date=2025-06-15&time_zone=UTC", token)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	slots, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, slots, 48)
	assert.Equal(t, "mgr-1", svc.lastViewerID)
}

func TestTimesheetHandler_ListRecordsMeta(t *testing.T) {
	svc := &fakeTimesheetService{records: timesheet.ListTimeRecordsResponse{
		TotalCount: 45,
		Page:       2,
		Limit:      20,
		TotalPages: 3,
		Records:    []timesheet.EmployeeTimeRecordRow{},
	}}
	router, jwtService := newTestRouter(svc)
	token := mintToken(t, jwtService, "mgr-1", employee.AttendanceRoleManager)

	rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/records?start_date=2025-06-01&end_date=2025-06-30&page=2", token)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Meta)
	assert.Equal(t, int64(45), envelope.Meta.TotalItems)
	assert.Equal(t, 2, envelope.Meta.Page)
	assert.Equal(t, 3, envelope.Meta.TotalPages)
}

func TestRouter_AnalyticsRequireAttendanceRole(t *testing.T) {
	router, jwtService := newTestRouter(&fakeTimesheetService{})

	token := mintToken(t, jwtService, "emp-1", employee.AttendanceRoleNone)
	for _, path := range []string{
		"/api/v1/timesheet/analytics/clock-in-trend",
		"/api/v1/timesheet/analytics/clock-out-trend",
		"/api/v1/timesheet/analytics/attendance-summary",
		"/api/v1/timesheet/analytics/timesheet-summary",
	} {
		rec := doRequest(router, http.MethodGet, path, token)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	adminToken := mintToken(t, jwtService, "admin-1", employee.AttendanceRoleAdmin)
	rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/analytics/attendance-summary?start_date=2025-06-01&end_date=2025-06-30", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTimesheetHandler_OpenSessionAdminOnly(t *testing.T) {
	svc := &fakeTimesheetService{}
	router, jwtService := newTestRouter(svc)

	t.Run("manager is forbidden", func(t *testing.T) {
		token := mintToken(t, jwtService, "mgr-1", employee.AttendanceRoleManager)
		rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/open-session?employee_id=e1&date=2025-06-15", token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin sees absence as success", func(t *testing.T) {
		token := mintToken(t, jwtService, "admin-1", employee.AttendanceRoleAdmin)
		rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/open-session?employee_id=e1&date=2025-06-15", token)
		require.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.True(t, envelope.Success)
		assert.Nil(t, envelope.Data)
	})
}

func TestTimesheetHandler_WorkHoursSelfOrRole(t *testing.T) {
	svc := &fakeTimesheetService{workHours: []timesheet.DailyWorkHours{}}
	router, jwtService := newTestRouter(svc)

	t.Run("own listing is allowed", func(t *testing.T) {
		token := mintToken(t, jwtService, "emp-1", employee.AttendanceRoleNone)
		rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/records/work-hours/emp-1?start_date=2025-06-01&end_date=2025-06-05", token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("someone else's listing needs a role", func(t *testing.T) {
		token := mintToken(t, jwtService, "emp-1", employee.AttendanceRoleNone)
		rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/records/work-hours/emp-2?start_date=2025-06-01&end_date=2025-06-05", token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager may read reports", func(t *testing.T) {
		token := mintToken(t, jwtService, "mgr-1", employee.AttendanceRoleManager)
		rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/records/work-hours/emp-2?start_date=2025-06-01&end_date=2025-06-05", token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestTimesheetHandler_ErrorMapping(t *testing.T) {
	router, jwtService := newTestRouter(&fakeTimesheetService{err: timesheet.ErrInvalidTimeZone})
	token := mintToken(t, jwtService, "mgr-1", employee.AttendanceRoleManager)

	t.Run("domain error maps to 400", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/v1/timesheet/analytics/clock-in-trend?date=2025-06-15&time_zone=bad", token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation errors map to 422", func(t *testing.T) {
		validationRouter, validationJWT := newTestRouter(&fakeTimesheetService{
			err: validator.ValidationErrors{{Field: "date", Message: "date is required"}},
		})
		vtoken := mintToken(t, validationJWT, "mgr-1", employee.AttendanceRoleManager)

		rec := doRequest(validationRouter, http.MethodGet, "/api/v1/timesheet/analytics/clock-in-trend", vtoken)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		envelope := decodeEnvelope(t, rec)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
		assert.Contains(t, envelope.Error.Details, "date")
	})
}
