// Package entity provides the base record type shared by stored documents.
package entity

import (
	"time"
)

// Record contains the fields common to all stored documents. The id is
// assigned by the document store on Add and written back via SetID.
type Record struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	// Attributes keeps loosely-typed extra fields carried by legacy
	// documents so round-trips do not drop them.
	Attributes map[string]any `json:"attributes,omitempty"`
}

// NewRecord creates a Record stamped with the current time.
func NewRecord() Record {
	return Record{CreatedAt: time.Now().UTC()}
}

// SetID assigns the store-issued id (docstore.Identifiable).
func (r *Record) SetID(id string) { r.ID = id }

// EnsureCreated stamps CreatedAt if the record has not been stamped yet.
func (r *Record) EnsureCreated() {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}
