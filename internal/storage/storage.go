package storage

import "context"

// BlobStore is the file-storage contract the services depend on.
// Put must confirm the upload before the caller touches the database;
// Delete is best-effort at every call site.
type BlobStore interface {
	Put(ctx context.Context, data []byte, contentType, nameHint string) (string, error)
	Delete(ctx context.Context, url string) error
}
