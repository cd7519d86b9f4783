// Package numerator provides document auto-numbering over the document
// store. Counters live in their own collection, one document per series.
package numerator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"negocio/internal/docstore"
)

// CollectionName is the backing docstore collection for counters.
const CollectionName = "counters"

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "FAC", "VEN")
	Prefix string

	// IncludeYear adds year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

type counterDoc struct {
	Series string `json:"series"`
	Value  int64  `json:"value"`
}

// Service provides document numbering. Counter increments are serialized
// in-process; the store guarantees single-document atomicity per write, and
// the single-server deployment makes the read-increment-write safe.
type Service struct {
	mu    sync.Mutex
	store docstore.Store
}

// New creates a numerator service over the document store.
func New(store docstore.Store) *Service {
	return &Service{store: store}
}

// GetNextNumber generates the next document number for the series.
// Pattern: PREFIX-YEAR-XXXXX (e.g., FAC-2026-00001).
func (s *Service) GetNextNumber(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	key := s.buildKey(cfg, period)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.increment(ctx, key)
	if err != nil {
		return "", fmt.Errorf("numerator: next number for %s: %w", key, err)
	}

	return s.formatNumber(cfg, period, next), nil
}

// increment bumps the counter document for the series, creating it on
// first use. Counters are addressed by their series field, not a chosen id.
func (s *Service) increment(ctx context.Context, series string) (int64, error) {
	docs, err := s.store.List(ctx, CollectionName, docstore.Query{}.Where("series", series))
	if err != nil {
		return 0, err
	}

	if len(docs) == 0 {
		body, err := json.Marshal(counterDoc{Series: series, Value: 1})
		if err != nil {
			return 0, err
		}
		if _, err := s.store.Add(ctx, CollectionName, body); err != nil {
			return 0, err
		}
		return 1, nil
	}

	var current counterDoc
	if err := json.Unmarshal(docs[0].Data, &current); err != nil {
		return 0, err
	}

	next := current.Value + 1
	partial, err := json.Marshal(map[string]any{"value": next})
	if err != nil {
		return 0, err
	}
	if err := s.store.Update(ctx, CollectionName, docs[0].ID, partial); err != nil {
		return 0, err
	}
	return next, nil
}

// buildKey builds the counter series key based on reset period.
func (s *Service) buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%d_%02d", cfg.Prefix, period.Year(), period.Month())
	case "never":
		return cfg.Prefix
	default: // year
		return fmt.Sprintf("%s_%d", cfg.Prefix, period.Year())
	}
}

// formatNumber renders the final document number.
func (s *Service) formatNumber(cfg Config, period time.Time, value int64) string {
	padWidth := cfg.PadWidth
	if padWidth <= 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%d-%0*d", cfg.Prefix, period.Year(), padWidth, value)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, value)
}
