package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnavailable is returned by every operation when object storage is
// unreachable or was never configured. Callers must treat it as non-fatal
// and surface a retryable user-facing error.
var ErrUnavailable = errors.New("object storage unavailable")

// unavailableStorage is the fallback Storage used when no object store is
// configured. The process keeps serving traffic; uploads and downloads fail
// with ErrUnavailable.
type unavailableStorage struct{}

// Unavailable returns a Storage whose every operation fails with ErrUnavailable.
func Unavailable() Storage {
	return unavailableStorage{}
}

func (unavailableStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	return ObjectInfo{}, ErrUnavailable
}

func (unavailableStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	return nil, ObjectInfo{}, ErrUnavailable
}

func (unavailableStorage) Delete(ctx context.Context, key string) error {
	return ErrUnavailable
}

func (unavailableStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", ErrUnavailable
}
