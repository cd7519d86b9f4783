package numerator

import (
	"context"
	"testing"
	"time"

	"negocio/internal/docstore/memory"
)

func mustNext(t *testing.T, svc *Service, cfg Config, period time.Time) string {
	t.Helper()
	got, err := svc.GetNextNumber(context.Background(), cfg, period)
	if err != nil {
		t.Fatalf("GetNextNumber: %v", err)
	}
	return got
}

func TestSequentialNumbers(t *testing.T) {
	svc := New(memory.New())
	cfg := DefaultConfig("FAC")
	period := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)

	for i, want := range []string{"FAC-2026-00001", "FAC-2026-00002", "FAC-2026-00003"} {
		if got := mustNext(t, svc, cfg, period); got != want {
			t.Errorf("number %d = %s, want %s", i+1, got, want)
		}
	}
}

func TestSeriesAreIndependent(t *testing.T) {
	store := memory.New()
	svc := New(store)
	period := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	mustNext(t, svc, DefaultConfig("FAC"), period)
	mustNext(t, svc, DefaultConfig("FAC"), period)

	if got := mustNext(t, svc, DefaultConfig("VEN"), period); got != "VEN-2026-00001" {
		t.Errorf("fresh series = %s, want VEN-2026-00001", got)
	}
	if got := mustNext(t, svc, DefaultConfig("FAC"), period); got != "FAC-2026-00003" {
		t.Errorf("continued series = %s, want FAC-2026-00003", got)
	}

	// One counter document per series.
	if n := store.Count(CollectionName); n != 2 {
		t.Errorf("counter docs = %d, want 2", n)
	}
}

func TestYearResetStartsNewCounter(t *testing.T) {
	svc := New(memory.New())
	cfg := DefaultConfig("FAC")

	y2026 := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	y2027 := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)

	mustNext(t, svc, cfg, y2026)
	mustNext(t, svc, cfg, y2026)
	if got := mustNext(t, svc, cfg, y2027); got != "FAC-2027-00001" {
		t.Errorf("new year = %s, want FAC-2027-00001", got)
	}
}

func TestMonthlyReset(t *testing.T) {
	svc := New(memory.New())
	cfg := Config{Prefix: "TCK", IncludeYear: true, PadWidth: 3, ResetPeriod: "month"}

	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	if got := mustNext(t, svc, cfg, jan); got != "TCK-2026-001" {
		t.Errorf("jan = %s, want TCK-2026-001", got)
	}
	if got := mustNext(t, svc, cfg, feb); got != "TCK-2026-001" {
		t.Errorf("feb restarts = %s, want TCK-2026-001", got)
	}
}

func TestNeverResetOmitsNothingAcrossYears(t *testing.T) {
	svc := New(memory.New())
	cfg := Config{Prefix: "DOC", ResetPeriod: "never"}

	y2026 := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	y2027 := time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC)

	if got := mustNext(t, svc, cfg, y2026); got != "DOC-00001" {
		t.Errorf("first = %s, want DOC-00001", got)
	}
	if got := mustNext(t, svc, cfg, y2027); got != "DOC-00002" {
		t.Errorf("next year continues = %s, want DOC-00002", got)
	}
}

func TestNilServiceErrors(t *testing.T) {
	var svc *Service
	if _, err := svc.GetNextNumber(context.Background(), DefaultConfig("X"), time.Now()); err == nil {
		t.Fatal("nil service must error, not panic")
	}
}
