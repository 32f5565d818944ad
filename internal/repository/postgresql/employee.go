package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timetrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timetrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeDirectoryRepository struct {
	db *database.DB
}

func NewEmployeeDirectoryRepository(db *database.DB) employee.DirectoryRepository {
	return &employeeDirectoryRepository{db: db}
}

// IsActive implements employee.DirectoryRepository.
func (r *employeeDirectoryRepository) IsActive(ctx context.Context, employeeID string) (bool, error) {
query := `SELECT is_active FROM employees WHERE id = $1`

	var isActive bool
	err := r.db.QueryRow(ctx, query, employeeID).Scan(&isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, employee.ErrEmployeeNotFound
		}
		return false, fmt.Errorf("failed to check employee active flag: %w", err)
	}

	return isActive, nil
}

// AttendanceRoleOf implements employee.DirectoryRepository.
func (r *employeeDirectoryRepository) AttendanceRoleOf(ctx context.Context, employeeID string) (employee.AttendanceRole, error) {
query := `
		SELECT er.attendance_role
		FROM employee_roles er
		WHERE er.employee_id = $1
	`

	var role string
	err := r.db.QueryRow(ctx, query, employeeID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No role assignment means no attendance privileges
			return employee.AttendanceRoleNone, nil
		}
		return employee.AttendanceRoleNone, fmt.Errorf("failed to get attendance role: %w", err)
	}

	return employee.AttendanceRole(role), nil
}

// ListDirectReports implements employee.DirectoryRepository.
func (r *employeeDirectoryRepository) ListDirectReports(ctx context.Context, managerID string) ([]string, error) {
query := `
		SELECT em.employee_id
		FROM employee_managers em
		JOIN employees e ON e.id = em.employee_id
		WHERE em.manager_id = $1
		  AND e.is_active = true
	`

	rows, err := r.db.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct reports: %w", err)
	}
	defer rows.Close()

	var employeeIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan direct report: %w", err)
		}
		employeeIDs = append(employeeIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate direct reports: %w", err)
	}

	return employeeIDs, nil
}

// ListSupervisedTeams implements employee.DirectoryRepository.
func (r *employeeDirectoryRepository) ListSupervisedTeams(ctx context.Context, employeeID string) ([]string, error) {
query := `
		SELECT et.team_id
		FROM employee_teams et
		JOIN teams t ON t.id = et.team_id
		WHERE et.employee_id = $1
		  AND et.is_supervisor = true
		  AND t.is_active = true
	`

	rows, err := r.db.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supervised teams: %w", err)
	}
	defer rows.Close()

	var teamIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan supervised team: %w", err)
		}
		teamIDs = append(teamIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate supervised teams: %w", err)
	}

	return teamIDs, nil
}

// ListTeamMembers implements employee.DirectoryRepository.
func (r *employeeDirectoryRepository) ListTeamMembers(ctx context.Context, teamIDs []string) ([]string, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}

query := `
		SELECT DISTINCT et.employee_id
		FROM employee_teams et
		JOIN employees e ON e.id = et.employee_id
		WHERE et.team_id = ANY($1)
		  AND e.is_active = true
	`

	rows, err := r.db.Query(ctx, query, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	var employeeIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		employeeIDs = append(employeeIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}

	return employeeIDs, nil
}
