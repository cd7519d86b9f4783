// Package employees manages the staff register and its sub-records:
// the per-employee schedule, the absence/vacation/permit logs and document
// attachments. Sub-records are independent collections keyed by employee id
// with no cross-collection invariants.
package employees

import (
	"context"
	"strings"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/core/types"
)

// DaySchedule is the working window for one weekday. Empty start and end
// mean a day off.
type DaySchedule struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Schedule holds one entry per weekday, Monday first.
type Schedule [7]DaySchedule

// Employee is one staff member. The schedule lives on the employee document
// itself and is updated in place; all other sub-records are separate
// append-only collections.
type Employee struct {
	entity.Record

	Name     string           `json:"name"`
	Role     string           `json:"role,omitempty"`
	Email    string           `json:"email,omitempty"`
	Phone    string           `json:"phone,omitempty"`
	Salary   types.MinorUnits `json:"salary,omitempty"`
	Schedule Schedule         `json:"schedule"`
}

// Validate checks required fields.
func (e *Employee) Validate(ctx context.Context) error {
	if strings.TrimSpace(e.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}

// Absence is one recorded absence.
type Absence struct {
	entity.Record

	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Reason     string `json:"reason,omitempty"`
}

// Vacation is one approved vacation period.
type Vacation struct {
	entity.Record

	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Notes      string `json:"notes,omitempty"`
}

// Permit is one granted leave permit.
type Permit struct {
	entity.Record

	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Hours      int    `json:"hours,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// Document is an attached file: the bytes live in the object store, the
// record keeps the label and resolved URL.
type Document struct {
	entity.Record

	EmployeeID string `json:"employeeId"`
	Label      string `json:"label"`
	Path       string `json:"path"`
	URL        string `json:"url"`
}

func (a *Absence) Owner() string  { return a.EmployeeID }
func (v *Vacation) Owner() string { return v.EmployeeID }
func (p *Permit) Owner() string   { return p.EmployeeID }
func (d *Document) Owner() string { return d.EmployeeID }
