// Package storage provides the object store backend for raw payload
// archiving. Implementations stream uploads; nothing touches local disk.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions carries upload parameters. Size must be the exact byte
// count when known; -1 lets the backend chunk as it sees fit.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the write seam the archiver runs on. Snapshots are append-only;
// reads and retention are operational concerns handled outside the service.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
}
