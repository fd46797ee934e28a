package model

import (
	"context"
	"io"
)

// Storage is a blob store.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// SnapshotStore reads and writes a whole serialized collection at once.
// Load returns ErrNotFound when nothing was saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Hasher turns secrets into storable digests.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}
