package dto

import (
	"negocio/internal/core/types"
	"negocio/internal/domain/employees"
)

// EmployeeRequest creates or updates an employee.
type EmployeeRequest struct {
	Name     string              `json:"name" binding:"required"`
	Role     string              `json:"role"`
	Email    string              `json:"email"`
	Phone    string              `json:"phone"`
	Salary   int64               `json:"salary" binding:"min=0"`
	Schedule *employees.Schedule `json:"schedule"`
}

// ToEmployee maps the request onto an employee.
func (r EmployeeRequest) ToEmployee(e *employees.Employee) {
	e.Name = r.Name
	e.Role = r.Role
	e.Email = r.Email
	e.Phone = r.Phone
	e.Salary = types.MinorUnits(r.Salary)
	if r.Schedule != nil {
		e.Schedule = *r.Schedule
	}
}

// ScheduleRequest replaces an employee's weekly schedule.
type ScheduleRequest struct {
	Schedule employees.Schedule `json:"schedule" binding:"required"`
}

// AbsenceRequest records an absence.
type AbsenceRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// VacationRequest records a vacation period.
type VacationRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Notes     string `json:"notes"`
}

// PermitRequest records a leave permit.
type PermitRequest struct {
	Date   string `json:"date" binding:"required"`
	Hours  int    `json:"hours" binding:"min=0"`
	Reason string `json:"reason"`
}
