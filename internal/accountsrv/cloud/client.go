// Package cloud is the tiering boundary between the account catalog and
// object storage. The catalog itself never calls into this package; it only
// supplies the account and container ids that shape the key layout.
package cloud

import (
	"context"
	"io"

	"github.com/nimbusworks/nimbus/internal/common/apperrors"
)

// StorageClient stores and retrieves blobs by key. Implementations must be
// safe for concurrent use.
type StorageClient interface {
	// Upload writes the blob at the given path, replacing any existing blob.
	Upload(ctx context.Context, path string, body io.Reader) apperrors.Error

	// Download returns the blob at the given path. Returns ErrBlobNotFound
	// if no blob exists there.
	Download(ctx context.Context, path string) ([]byte, apperrors.Error)

	// Delete removes the blob at the given path. Deleting a missing blob is
	// not an error.
	Delete(ctx context.Context, path string) apperrors.Error
}
