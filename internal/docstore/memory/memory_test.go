package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"negocio/internal/docstore"
)

func addDoc(t *testing.T, s *Store, collection string, doc map[string]any) string {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	docID, err := s.Add(context.Background(), collection, data)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	return docID
}

func TestAddGeneratesDistinctIDs(t *testing.T) {
	s := New()
	a := addDoc(t, s, "things", map[string]any{"name": "a"})
	b := addDoc(t, s, "things", map[string]any{"name": "b"})

	if a == "" || b == "" || a == b {
		t.Fatalf("ids = %q, %q", a, b)
	}
	if s.Count("things") != 2 {
		t.Errorf("Count = %d, want 2", s.Count("things"))
	}
}

func TestGetNotFound(t *testing.T) {
	s := New()
	if _, err := s.Get(context.Background(), "things", "missing"); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListFiltersByFieldEquality(t *testing.T) {
	s := New()
	ctx := context.Background()

	addDoc(t, s, "items", map[string]any{"owner": "juan", "n": 1})
	addDoc(t, s, "items", map[string]any{"owner": "juan", "n": 2})
	addDoc(t, s, "items", map[string]any{"owner": "ana", "n": 3})

	docs, err := s.List(ctx, "items", docstore.Query{}.Where("owner", "juan"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("filtered docs = %d, want 2", len(docs))
	}

	// Numeric values match across Go int and JSON number.
	docs, err = s.List(ctx, "items", docstore.Query{}.Where("n", 3))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("numeric filter docs = %d, want 1", len(docs))
	}
}

func TestListOrderBy(t *testing.T) {
	s := New()
	ctx := context.Background()

	addDoc(t, s, "items", map[string]any{"rank": 2.0})
	addDoc(t, s, "items", map[string]any{"rank": 1.0})
	addDoc(t, s, "items", map[string]any{"rank": 3.0})

	docs, err := s.List(ctx, "items", docstore.Query{OrderBy: "rank"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	ranks := make([]float64, len(docs))
	for i, d := range docs {
		var fields map[string]float64
		if err := json.Unmarshal(d.Data, &fields); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		ranks[i] = fields["rank"]
	}
	if ranks[0] != 1 || ranks[1] != 2 || ranks[2] != 3 {
		t.Errorf("ascending order = %v", ranks)
	}

	docs, err = s.List(ctx, "items", docstore.Query{OrderBy: "rank", Descending: true, Limit: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("limited docs = %d, want 1", len(docs))
	}
	var top map[string]float64
	if err := json.Unmarshal(docs[0].Data, &top); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if top["rank"] != 3 {
		t.Errorf("descending first rank = %v, want 3", top["rank"])
	}
}

func TestUpdateMergesShallow(t *testing.T) {
	s := New()
	ctx := context.Background()

	docID := addDoc(t, s, "items", map[string]any{"name": "Juan", "role": "Cajero"})

	if err := s.Update(ctx, "items", docID, []byte(`{"role":"Vendedor"}`)); err != nil {
		t.Fatalf("Update: %v", err)
	}

	doc, err := s.Get(ctx, "items", docID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var fields map[string]string
	if err := json.Unmarshal(doc.Data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fields["role"] != "Vendedor" {
		t.Errorf("role = %q, want Vendedor", fields["role"])
	}
	if fields["name"] != "Juan" {
		t.Errorf("sibling field lost: name = %q", fields["name"])
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := New()
	err := s.Update(context.Background(), "items", "missing", []byte(`{}`))
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteAbsentIsNoError(t *testing.T) {
	s := New()
	ctx := context.Background()

	docID := addDoc(t, s, "items", map[string]any{"name": "x"})
	if err := s.Delete(ctx, "items", docID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "items", docID); err != nil {
		t.Errorf("repeated Delete: %v", err)
	}
	if s.Count("items") != 0 {
		t.Errorf("Count = %d, want 0", s.Count("items"))
	}
}

func TestFailureHooks(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	docID := addDoc(t, s, "safe", map[string]any{"n": 1})

	s.FailAdd = func(collection string) error {
		if collection == "broken" {
			return boom
		}
		return nil
	}
	s.FailUpdate = func(collection, id string) error {
		if id == docID {
			return boom
		}
		return nil
	}

	if _, err := s.Add(ctx, "broken", []byte(`{}`)); !errors.Is(err, boom) {
		t.Errorf("FailAdd not applied: %v", err)
	}
	if _, err := s.Add(ctx, "safe", []byte(`{}`)); err != nil {
		t.Errorf("FailAdd hit wrong collection: %v", err)
	}
	if err := s.Update(ctx, "safe", docID, []byte(`{"n":2}`)); !errors.Is(err, boom) {
		t.Errorf("FailUpdate not applied: %v", err)
	}
}
