package employees

import (
	"context"

	"negocio/internal/core/apperror"
	"negocio/internal/docstore"
)

// Sub-record collections. Each is independent: records reference their
// employee by id only, and removing an employee does not touch them.
const (
	AbsencesCollection  = "absences"
	VacationsCollection = "vacations"
	PermitsCollection   = "permits"
	DocumentsCollection = "documents"
)

// owned is implemented by sub-records to expose their employee id.
type owned interface {
	Owner() string
}

// Log is an append-only sub-record collection: add, list by employee and
// bulk delete. Records are never updated in place.
type Log[T any] struct {
	col  *docstore.Collection[T]
	kind string
}

// NewLog creates a typed sub-record log.
func NewLog[T any](store docstore.Store, collection, kind string) *Log[T] {
	return &Log[T]{col: docstore.NewCollection[T](store, collection), kind: kind}
}

// Add appends a record. The record must carry its employee id.
func (l *Log[T]) Add(ctx context.Context, rec *T) error {
	if o, ok := any(rec).(owned); ok && o.Owner() == "" {
		return apperror.NewValidation("employeeId is required").WithDetail("field", "employeeId")
	}
	if s, ok := any(rec).(interface{ EnsureCreated() }); ok {
		s.EnsureCreated()
	}
	if _, err := l.col.Add(ctx, rec); err != nil {
		return apperror.NewPersistence("add "+l.kind, err)
	}
	return nil
}

// List returns the records for one employee, oldest first.
func (l *Log[T]) List(ctx context.Context, employeeID string) ([]*T, error) {
	return l.col.List(ctx, docstore.Query{OrderBy: "createdAt"}.Where("employeeId", employeeID))
}

// RemoveMany deletes exactly the given ids. Records of other employees are
// never touched; an absent id is skipped without error.
func (l *Log[T]) RemoveMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := l.col.Delete(ctx, id); err != nil {
			return apperror.NewPersistence("delete "+l.kind, err)
		}
	}
	return nil
}
