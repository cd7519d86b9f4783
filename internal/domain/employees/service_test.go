package employees

import (
	"context"
	"testing"

	"negocio/internal/blobstore"
	"negocio/internal/core/apperror"
	"negocio/internal/docstore/memory"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	blobs, err := blobstore.NewDiskStore(t.TempDir(), "/files")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return NewService(store, blobs), store
}

func createEmployee(t *testing.T, svc *Service, name string) *Employee {
	t.Helper()
	e := &Employee{Name: name}
	if err := svc.Create(context.Background(), e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return e
}

func TestBulkDeleteRemovesExactlySelected(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	juan := createEmployee(t, svc, "Juan")
	ana := createEmployee(t, svc, "Ana")

	var juanIDs []string
	for _, date := range []string{"2026-08-01", "2026-08-02", "2026-08-03", "2026-08-04", "2026-08-05"} {
		rec := &Absence{EmployeeID: juan.ID, Date: date}
		if err := svc.Absences.Add(ctx, rec); err != nil {
			t.Fatalf("Add absence: %v", err)
		}
		juanIDs = append(juanIDs, rec.ID)
	}
	anaRec := &Absence{EmployeeID: ana.ID, Date: "2026-08-01"}
	if err := svc.Absences.Add(ctx, anaRec); err != nil {
		t.Fatalf("Add absence: %v", err)
	}

	if err := svc.Absences.RemoveMany(ctx, juanIDs[:2]); err != nil {
		t.Fatalf("RemoveMany: %v", err)
	}

	remaining, err := svc.Absences.List(ctx, juan.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(remaining) != 3 {
		t.Errorf("remaining absences = %d, want 3", len(remaining))
	}
	for _, rec := range remaining {
		if rec.ID == juanIDs[0] || rec.ID == juanIDs[1] {
			t.Errorf("deleted record %s still listed", rec.ID)
		}
	}

	// Other employees' records are untouched.
	anaRecs, err := svc.Absences.List(ctx, ana.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(anaRecs) != 1 {
		t.Errorf("ana's absences = %d, want 1", len(anaRecs))
	}
}

func TestSubrecordRequiresEmployeeID(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Vacations.Add(context.Background(), &Vacation{StartDate: "2026-09-01", EndDate: "2026-09-10"})
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Fatalf("want VALIDATION_ERROR, got %v", err)
	}
}

func TestUpdateScheduleInPlace(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	e := createEmployee(t, svc, "Juan")
	e.Role = "Vendedor"
	if err := svc.Update(ctx, e); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var sched Schedule
	for i := 0; i < 5; i++ {
		sched[i] = DaySchedule{Start: "09:00", End: "18:00"}
	}
	if err := svc.UpdateSchedule(ctx, e.ID, sched); err != nil {
		t.Fatalf("UpdateSchedule: %v", err)
	}

	got, err := svc.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Schedule != sched {
		t.Errorf("schedule not updated: %+v", got.Schedule)
	}
	// The partial update must not clobber the rest of the document.
	if got.Name != "Juan" || got.Role != "Vendedor" {
		t.Errorf("sibling fields lost: name=%q role=%q", got.Name, got.Role)
	}
}

func TestUpdateScheduleUnknownEmployee(t *testing.T) {
	svc, _ := newService(t)

	err := svc.UpdateSchedule(context.Background(), "missing", Schedule{})
	if !apperror.IsNotFound(err) {
		t.Fatalf("want NOT_FOUND, got %v", err)
	}
}

func TestDeleteEmployeeKeepsSubrecords(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	e := createEmployee(t, svc, "Juan")
	if err := svc.Permits.Add(ctx, &Permit{EmployeeID: e.ID, Date: "2026-08-20", Hours: 4}); err != nil {
		t.Fatalf("Add permit: %v", err)
	}

	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// No cascade: the permit survives its employee.
	permits, err := svc.Permits.List(ctx, e.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(permits) != 1 {
		t.Errorf("permits after employee delete = %d, want 1", len(permits))
	}
}

func TestAttachDocument(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	e := createEmployee(t, svc, "Juan")

	doc, err := svc.AttachDocument(ctx, e.ID, "Contrato", "contrato.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("AttachDocument: %v", err)
	}
	if doc.URL == "" || doc.Path == "" {
		t.Errorf("document missing storage refs: %+v", doc)
	}

	docs, err := svc.Documents.List(ctx, e.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 || docs[0].Label != "Contrato" {
		t.Errorf("documents = %+v, want one labeled Contrato", docs)
	}
}

func TestAttachDocumentUnknownEmployee(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.AttachDocument(context.Background(), "missing", "x", "x.pdf", []byte("data"))
	if !apperror.IsNotFound(err) {
		t.Fatalf("want NOT_FOUND, got %v", err)
	}
}
