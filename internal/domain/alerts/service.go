// Package alerts evaluates stock alert rules over the product catalog.
// Rules are CEL expressions over per-product variables, so the alert
// condition can be changed through configuration without a rebuild.
package alerts

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"negocio/internal/core/apperror"
	"negocio/internal/domain/catalogs/product"
	"negocio/pkg/logger"
)

// DefaultRule flags products at or below their minimum stock.
const DefaultRule = "stock <= min_stock"

// Alert is one product flagged by the rule.
type Alert struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	Stock     int64  `json:"stock"`
	MinStock  int64  `json:"minStock"`
}

// Service evaluates the configured rule against the catalog. Results are
// cached until the next stock mutation invalidates them.
type Service struct {
	products product.Repository
	program  cel.Program
	rule     string

	mu     sync.Mutex
	cached []*Alert
	valid  bool
}

// NewService compiles the rule and creates the alert service. An empty
// rule uses DefaultRule.
func NewService(products product.Repository, rule string) (*Service, error) {
	if rule == "" {
		rule = DefaultRule
	}

	env, err := cel.NewEnv(
		cel.Variable("stock", cel.IntType),
		cel.Variable("min_stock", cel.IntType),
		cel.Variable("name", cel.StringType),
		cel.Variable("code", cel.StringType),
	)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(rule)
	if issues != nil && issues.Err() != nil {
		return nil, apperror.NewValidation("invalid stock alert rule").
			WithDetail("rule", rule).
			WithCause(issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, apperror.NewValidation("stock alert rule must evaluate to a boolean").
			WithDetail("rule", rule)
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}

	return &Service{products: products, program: program, rule: rule}, nil
}

// Rule returns the active rule expression.
func (s *Service) Rule() string { return s.rule }

// LowStock returns the products the rule currently flags, cheapest from
// cache when no stock mutation happened since the last evaluation.
func (s *Service) LowStock(ctx context.Context) ([]*Alert, error) {
	s.mu.Lock()
	if s.valid {
		cached := s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	items, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	var flagged []*Alert
	for _, p := range items {
		hit, err := s.evaluate(ctx, p)
		if err != nil {
			logger.Warn(ctx, "stock rule evaluation failed",
				"product_id", p.ID, "rule", s.rule, "error", err)
			continue
		}
		if hit {
			flagged = append(flagged, &Alert{
				ProductID: p.ID,
				Name:      p.Name,
				Code:      p.Code,
				Stock:     p.Stock,
				MinStock:  p.EffectiveMinStock(),
			})
		}
	}

	s.mu.Lock()
	s.cached = flagged
	s.valid = true
	s.mu.Unlock()
	return flagged, nil
}

// Invalidate drops the cached evaluation. Wired to the finalizer's
// sale-finalized hook.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.cached = nil
	s.mu.Unlock()
}

func (s *Service) evaluate(ctx context.Context, p *product.Product) (bool, error) {
	out, _, err := s.program.ContextEval(ctx, map[string]any{
		"stock":     p.Stock,
		"min_stock": p.EffectiveMinStock(),
		"name":      p.Name,
		"code":      p.Code,
	})
	if err != nil {
		return false, err
	}
	hit, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule returned %T, want bool", out.Value())
	}
	return hit, nil
}
