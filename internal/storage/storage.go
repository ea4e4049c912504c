// Package storage keeps playlist export snapshots in an S3-compatible object store.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions describe an upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is the object store used for exports.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a URL that downloads key without credentials until expiry passes.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
