package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timetrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireAttendanceAdmin requires the attendance admin role
func RequireAttendanceAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Attendance admin access required")
			return
		}

		role, ok := claims["attendance_role"].(string)
		if !ok {
			response.Forbidden(w, "Attendance admin access required")
			return
		}

		if employee.AttendanceRole(role) != employee.AttendanceRoleAdmin {
			response.Forbidden(w, "Attendance admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAttendanceRole requires the admin or manager attendance role
func RequireAttendanceRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Attendance access required")
			return
		}

		roleStr, ok := claims["attendance_role"].(string)
		if !ok {
			response.Forbidden(w, "Attendance access required")
			return
		}

		role := employee.AttendanceRole(roleStr)
		if role != employee.AttendanceRoleAdmin && role != employee.AttendanceRoleManager {
			response.Forbidden(w, "Attendance access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
