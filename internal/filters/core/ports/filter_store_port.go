package ports

import (
	"context"
	"errors"
)

var (
	ErrSnapshotNotFound = errors.New("filter snapshot not found")
	ErrShareNotFound    = errors.New("shared link not found")
)

// SnapshotStorePort is durable key/value storage for serialized filter sets.
type SnapshotStorePort interface {
	// Get returns ErrSnapshotNotFound when key was never written or was removed.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// ClipboardPort receives shared URLs.
type ClipboardPort interface {
	// WriteText stores text and returns a handle for it ("" when the backend
	// has none).
	WriteText(ctx context.Context, text string) (handle string, err error)
}

// ShareResolverPort maps a clipboard handle back to its URL.
type ShareResolverPort interface {
	Resolve(ctx context.Context, handle string) (string, error)
}
