package employee

import "context"

// DirectoryRepository exposes the employee-directory lookups the timesheet
// visibility rules depend on. All lookups consider active employees and teams
// only; inactive rows never contribute to a scope.
type DirectoryRepository interface {
	// IsActive reports whether the employee exists and is active.
	IsActive(ctx context.Context, employeeID string) (bool, error)

	// AttendanceRoleOf returns the employee's attendance role.
	// Employees without a role assignment get AttendanceRoleNone.
	AttendanceRoleOf(ctx context.Context, employeeID string) (AttendanceRole, error)

	// ListDirectReports returns ids of active employees that list managerID
	// as one of their managers.
	ListDirectReports(ctx context.Context, managerID string) ([]string, error)

	// ListSupervisedTeams returns ids of active teams whose membership row for
	// employeeID carries the supervisor flag.
	ListSupervisedTeams(ctx context.Context, employeeID string) ([]string, error)

	// ListTeamMembers returns distinct ids of active employees that belong to
	// any of the given teams.
	ListTeamMembers(ctx context.Context, teamIDs []string) ([]string, error)
}
