// Package postgres implements docstore.Store on PostgreSQL.
// Every collection lives in a single documents table with a JSONB body;
// partial updates use the `||` merge operator, which keeps the per-document
// atomicity of a hosted document database on a relational engine.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"negocio/internal/core/id"
	"negocio/internal/docstore"
)

var tracer trace.Tracer = otel.Tracer("negocio/docstore")

// Schema is the DDL for the documents table. Applied by cmd/seed.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection  text        NOT NULL,
    id          text        NOT NULL,
    data        jsonb       NOT NULL,
    created_at  timestamptz NOT NULL DEFAULT now(),
    updated_at  timestamptz NOT NULL DEFAULT now(),
    PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_data_idx ON documents USING gin (data jsonb_path_ops);
`

// PoolConfig holds connection pool configuration.
type PoolConfig struct {
	DSN               string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// DefaultPoolConfig returns sensible defaults for production.
func DefaultPoolConfig(dsn string) PoolConfig {
	return PoolConfig{
		DSN:               dsn,
		MaxConns:          25,
		MinConns:          5,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
	}
}

// NewPool creates a new connection pool with the given configuration.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Store implements docstore.Store over a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the documents table if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Schema)
	return err
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// orderField restricts sortable field names to plain identifiers. The field
// name lands in the SQL text, not in a bind parameter, so anything else is
// rejected rather than interpolated.
var orderField = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func orderClause(q docstore.Query) string {
	if q.OrderBy == "" || !orderField.MatchString(q.OrderBy) {
		return "id ASC"
	}
	dir := "ASC"
	if q.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("data->>'%s' %s", q.OrderBy, dir)
}

type docRow struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

func (s *Store) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Doc, error) {
	ctx, span := tracer.Start(ctx, "docstore.List")
	span.SetAttributes(attribute.String("collection", collection))
	defer span.End()

	sb := builder().
		Select("id", "data").
		From("documents").
		Where(squirrel.Eq{"collection": collection})

	if len(q.Filters) > 0 {
		match := make(map[string]any, len(q.Filters))
		for _, f := range q.Filters {
			match[f.Field] = f.Value
		}
		matchJSON, err := json.Marshal(match)
		if err != nil {
			return nil, fmt.Errorf("encode filter: %w", err)
		}
		sb = sb.Where("data @> ?::jsonb", string(matchJSON))
	}

	sb = sb.OrderBy(orderClause(q))

	if q.Limit > 0 {
		sb = sb.Limit(uint64(q.Limit))
	}

	sql, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []docRow
	if err := pgxscan.Select(ctx, s.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	docs := make([]docstore.Doc, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, docstore.Doc{ID: r.ID, Data: r.Data})
	}
	return docs, nil
}

func (s *Store) Get(ctx context.Context, collection, docID string) (docstore.Doc, error) {
	ctx, span := tracer.Start(ctx, "docstore.Get")
	span.SetAttributes(attribute.String("collection", collection))
	defer span.End()

	sql, args, err := builder().
		Select("id", "data").
		From("documents").
		Where(squirrel.Eq{"collection": collection, "id": docID}).
		ToSql()
	if err != nil {
		return docstore.Doc{}, fmt.Errorf("build get query: %w", err)
	}

	var row docRow
	if err := pgxscan.Get(ctx, s.pool, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return docstore.Doc{}, docstore.ErrNotFound
		}
		return docstore.Doc{}, fmt.Errorf("get %s/%s: %w", collection, docID, err)
	}
	return docstore.Doc{ID: row.ID, Data: row.Data}, nil
}

func (s *Store) Add(ctx context.Context, collection string, data []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "docstore.Add")
	span.SetAttributes(attribute.String("collection", collection))
	defer span.End()

	docID := id.New()
	sql, args, err := builder().
		Insert("documents").
		Columns("collection", "id", "data").
		Values(collection, docID, string(data)).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return docID, nil
}

func (s *Store) Update(ctx context.Context, collection, docID string, partial []byte) error {
	ctx, span := tracer.Start(ctx, "docstore.Update")
	span.SetAttributes(attribute.String("collection", collection))
	defer span.End()

	// JSONB merge is a single-statement, single-document atomic write.
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET data = data || $1::jsonb, updated_at = now()
		 WHERE collection = $2 AND id = $3`,
		string(partial), collection, docID,
	)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, docID, err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, docID string) error {
	ctx, span := tracer.Start(ctx, "docstore.Delete")
	span.SetAttributes(attribute.String("collection", collection))
	defer span.End()

	_, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, docID,
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, docID, err)
	}
	return nil
}

var _ docstore.Store = (*Store)(nil)
