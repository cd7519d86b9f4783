// Package audit records an append-only trail of domain events (sales
// finalized, catalog changes) in its own collection. Large payloads are
// zstd-compressed before storage.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "negocio/internal/core/context"
	"negocio/internal/core/entity"
	"negocio/internal/docstore"
	"negocio/pkg/logger"
)

// CollectionName is the backing docstore collection.
const CollectionName = "audit"

// Action is the type of audited operation.
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionFinalize Action = "finalize"
)

// CompressionAlgo specifies how the payload is stored.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// Entry is a single audit record. Exactly one of Payload and
// PayloadCompressed is set, per CompressionAlgo.
type Entry struct {
	entity.Record

	EntityType        string          `json:"entityType"`
	EntityID          string          `json:"entityId"`
	Action            Action          `json:"action"`
	UserID            string          `json:"userId,omitempty"`
	Payload           json.RawMessage `json:"payload,omitempty"`
	PayloadCompressed []byte          `json:"payloadCompressed,omitempty"`
	CompressionAlgo   CompressionAlgo `json:"compressionAlgo"`
}

// Service writes and reads the audit trail. Audit writes are best-effort:
// callers log failures but never fail the business operation over them.
type Service struct {
	col     *docstore.Collection[Entry]
	encoder *zstd.Encoder
	decoder *zstd.Decoder

	compressThreshold int
}

// NewService creates the audit service.
func NewService(store docstore.Store) (*Service, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Service{
		col:               docstore.NewCollection[Entry](store, CollectionName),
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Log records an audit entry.
func (s *Service) Log(ctx context.Context, entry Entry) error {
	if entry.UserID == "" {
		if user := appctx.GetUser(ctx); user != nil {
			entry.UserID = user.UserID
		}
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	entry.CompressionAlgo = CompressionNone
	if len(entry.Payload) > s.compressThreshold {
		entry.PayloadCompressed = s.encoder.EncodeAll(entry.Payload, nil)
		entry.Payload = nil
		entry.CompressionAlgo = CompressionZstd
	}

	_, err := s.col.Add(ctx, &entry)
	return err
}

// LogChange is a convenience wrapper marshalling the payload.
func (s *Service) LogChange(ctx context.Context, entityType, entityID string, action Action, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Warn(ctx, "audit payload marshal failed", "entity_type", entityType, "error", err)
		return
	}
	err = s.Log(ctx, Entry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Payload:    body,
	})
	if err != nil {
		logger.Warn(ctx, "audit write failed",
			"entity_type", entityType, "entity_id", entityID, "action", string(action), "error", err)
	}
}

// History returns the newest entries for one entity, payloads decompressed.
func (s *Service) History(ctx context.Context, entityType, entityID string, limit int) ([]*Entry, error) {
	q := docstore.Query{OrderBy: "createdAt", Descending: true, Limit: limit}.
		Where("entityType", entityType).
		Where("entityId", entityID)
	entries, err := s.col.List(ctx, q)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.CompressionAlgo != CompressionZstd || len(e.PayloadCompressed) == 0 {
			continue
		}
		payload, err := s.decoder.DecodeAll(e.PayloadCompressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress audit payload %s: %w", e.ID, err)
		}
		e.Payload = payload
		e.PayloadCompressed = nil
	}
	return entries, nil
}
