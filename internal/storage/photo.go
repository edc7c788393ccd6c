// Package storage provides the binary backends for pet photos. Keys are
// opaque relative paths ("pets/<uuid>.<ext>"); how a key becomes a URL is
// the frontend's business.
package storage

import "context"

// PhotoStore persists and releases photo binaries. Delete is idempotent:
// deleting a key that no longer exists is not an error.
type PhotoStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}
