// Package blobstore defines the object-storage collaborator used for file
// attachments (employee documents). Only upload and URL resolution are
// required by the domain.
package blobstore

import "context"

// Ref identifies an uploaded object.
type Ref string

// Store is the object-storage contract.
type Store interface {
	// Upload stores data under path and returns a reference.
	Upload(ctx context.Context, path string, data []byte) (Ref, error)

	// URL resolves a reference to a serveable URL.
	URL(ref Ref) string
}
