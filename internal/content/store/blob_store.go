// Package store implements the external content store over gocloud blob
// buckets, so the same code serves local disk, in-memory and cloud object
// storage.
package store

import (
	"context"
	"time"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	contentDomain "github.com/publiish/bio-did-seq/internal/content/domain"
	"github.com/publiish/bio-did-seq/internal/errors"
)

// BlobStore persists content-addressed payloads in a blob bucket.
type BlobStore struct {
	bucket      *blob.Bucket
	callTimeout time.Duration
}

// NewBlobStore creates a BlobStore. A non-zero callTimeout bounds every
// bucket call.
func NewBlobStore(bucket *blob.Bucket, callTimeout time.Duration) *BlobStore {
	return &BlobStore{bucket: bucket, callTimeout: callTimeout}
}

// Put stores the payload under its content id. Re-storing an existing
// payload is a no-op returning the same id.
func (s *BlobStore) Put(ctx context.Context, data []byte) (string, error) {
	id := contentDomain.ContentID(data)

	ctx, cancel := s.bound(ctx)
	defer cancel()

	exists, err := s.bucket.Exists(ctx, id)
	if err != nil {
		return "", translate(err)
	}
	if exists {
		return id, nil
	}

	if err := s.bucket.WriteAll(ctx, id, data, nil); err != nil {
		return "", translate(err)
	}
	return id, nil
}

// Get returns the payload stored under id.
func (s *BlobStore) Get(ctx context.Context, id string) ([]byte, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	data, err := s.bucket.ReadAll(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return data, nil
}

func (s *BlobStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

// translate maps bucket errors onto the core taxonomy. Deadline expiry is a
// local Timeout; everything else unexpected means the store is unavailable.
func translate(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrTimeout, "content store call timed out")
	}
	switch gcerrors.Code(err) {
	case gcerrors.NotFound:
		return contentDomain.ErrContentNotFound
	case gcerrors.DeadlineExceeded:
		return errors.Wrap(errors.ErrTimeout, "content store call timed out")
	default:
		return errors.Wrap(errors.ErrStoreUnavailable, err.Error())
	}
}
