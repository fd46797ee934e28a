package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.SnapshotStore = (*Blob)(nil)

// Blob keeps a snapshot as one object of a model.Storage.
type Blob struct {
	storage model.Storage
	key     string
}

func NewBlob(storage model.Storage, key string) *Blob {
	return &Blob{storage: storage, key: key}
}

func (b *Blob) Load(ctx context.Context) ([]byte, error) {
	rc, err := b.storage.Download(ctx, b.key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot object: %w", err)
	}
	return data, nil
}

func (b *Blob) Save(ctx context.Context, data []byte) error {
	return b.storage.Upload(ctx, b.key, bytes.NewReader(data))
}
