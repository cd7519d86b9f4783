package employees

import (
	"context"
	"errors"
	"fmt"
	"path"

	"negocio/internal/blobstore"
	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/core/id"
	"negocio/internal/docstore"
	"negocio/pkg/logger"
)

// CollectionName is the backing docstore collection for employees.
const CollectionName = "employees"

// Service provides the staff register and its sub-record logs.
//
// Deleting an employee leaves its sub-records in place: there is no
// referential cleanup across collections, matching the single-document
// atomicity of the store. Orphaned sub-records remain listable by the old
// employee id.
type Service struct {
	col   *docstore.Collection[Employee]
	blobs blobstore.Store

	Absences  *Log[Absence]
	Vacations *Log[Vacation]
	Permits   *Log[Permit]
	Documents *Log[Document]
}

// NewService creates the employee service.
func NewService(store docstore.Store, blobs blobstore.Store) *Service {
	return &Service{
		col:       docstore.NewCollection[Employee](store, CollectionName),
		blobs:     blobs,
		Absences:  NewLog[Absence](store, AbsencesCollection, "absence"),
		Vacations: NewLog[Vacation](store, VacationsCollection, "vacation"),
		Permits:   NewLog[Permit](store, PermitsCollection, "permit"),
		Documents: NewLog[Document](store, DocumentsCollection, "document"),
	}
}

func (s *Service) Create(ctx context.Context, e *Employee) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.Record = entity.NewRecord()
	}
	if _, err := s.col.Add(ctx, e); err != nil {
		return apperror.NewPersistence("create employee", err)
	}
	logger.Info(ctx, "employee created", "employee_id", e.ID, "name", e.Name)
	return nil
}

func (s *Service) GetByID(ctx context.Context, employeeID string) (*Employee, error) {
	e, err := s.col.Get(ctx, employeeID)
	if err != nil {
		return nil, apperror.NewNotFound("employee", employeeID).WithCause(err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	return s.col.List(ctx, docstore.Query{OrderBy: "name"})
}

func (s *Service) Update(ctx context.Context, e *Employee) error {
	if e.ID == "" {
		return apperror.NewValidation("id is required")
	}
	if err := e.Validate(ctx); err != nil {
		return err
	}
	if err := s.col.Replace(ctx, e.ID, e); err != nil {
		return apperror.NewPersistence("update employee", err)
	}
	return nil
}

// Delete removes the employee document only. Sub-records are kept.
func (s *Service) Delete(ctx context.Context, employeeID string) error {
	return s.col.Delete(ctx, employeeID)
}

// UpdateSchedule replaces the schedule in place on the employee document.
// The rest of the document is untouched.
func (s *Service) UpdateSchedule(ctx context.Context, employeeID string, sched Schedule) error {
	if err := s.col.Update(ctx, employeeID, map[string]any{"schedule": sched}); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return apperror.NewNotFound("employee", employeeID)
		}
		return apperror.NewPersistence("update schedule", err)
	}
	return nil
}

// AttachDocument uploads the file to the object store and records the
// attachment. The stored record carries the resolved URL so listing does
// not need the blob store.
func (s *Service) AttachDocument(ctx context.Context, employeeID, label, filename string, data []byte) (*Document, error) {
	if _, err := s.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperror.NewValidation("file is empty").WithDetail("field", "file")
	}

	objectPath := path.Join("employees", employeeID, fmt.Sprintf("%s-%s", id.New(), filename))
	ref, err := s.blobs.Upload(ctx, objectPath, data)
	if err != nil {
		return nil, apperror.NewPersistence("upload document", err)
	}

	doc := &Document{
		Record:     entity.NewRecord(),
		EmployeeID: employeeID,
		Label:      label,
		Path:       string(ref),
		URL:        s.blobs.URL(ref),
	}
	if err := s.Documents.Add(ctx, doc); err != nil {
		return nil, err
	}

	logger.Info(ctx, "employee document attached",
		"employee_id", employeeID, "document_id", doc.ID, "label", label)
	return doc, nil
}
