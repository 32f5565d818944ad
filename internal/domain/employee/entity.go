package employee

import "time"

// AttendanceRole is the attendance-module role carried by an employee's role
// assignment. Other modules keep their own roles on the same row.
type AttendanceRole string

const (
	AttendanceRoleAdmin   AttendanceRole = "ATTENDANCE_ADMIN"
	AttendanceRoleManager AttendanceRole = "ATTENDANCE_MANAGER"
	AttendanceRoleNone    AttendanceRole = ""
)

type Employee struct {
	ID        string
	FirstName string
	LastName  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Team struct {
	ID       string
	Name     string
	IsActive bool
}

// EmployeeTeam is a team membership row. IsSupervisor distinguishes
// "supervises" from plain membership on the same relationship.
type EmployeeTeam struct {
	EmployeeID   string
	TeamID       string
	IsSupervisor bool
}

// EmployeeManager links an employee to one of their managers.
type EmployeeManager struct {
	EmployeeID string
	ManagerID  string
	IsPrimary  bool
}
