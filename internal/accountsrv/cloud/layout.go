package cloud

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nimbusworks/nimbus/internal/common/apperrors"
)

// BlobPath returns the object key for a blob, namespaced by its owning
// account and container. Keys are of the form
// "<accountID>/<containerID>/<blobID>" so per-tenant listing and deletion
// reduce to prefix operations.
func BlobPath(accountID, containerID int16, blobID string) (string, apperrors.Error) {
	if blobID == "" {
		return "", ErrInvalidBlobPath.Msg("blob id must not be empty")
	}
	if strings.Contains(blobID, "/") {
		return "", ErrInvalidBlobPath.Msg("blob id must not contain '/'")
	}
	return fmt.Sprintf("%d/%d/%s", accountID, containerID, blobID), nil
}

// ContainerPrefix returns the key prefix covering every blob in a container.
func ContainerPrefix(accountID, containerID int16) string {
	return fmt.Sprintf("%d/%d/", accountID, containerID)
}

// ParseBlobPath splits an object key produced by BlobPath back into its
// account id, container id, and blob id.
func ParseBlobPath(path string) (accountID, containerID int16, blobID string, err apperrors.Error) {
	parts := strings.SplitN(path, "/", 3)
	if len(parts) != 3 || parts[2] == "" {
		return 0, 0, "", ErrInvalidBlobPath.Msg("blob path must be <accountID>/<containerID>/<blobID>")
	}
	aid, perr := strconv.ParseInt(parts[0], 10, 16)
	if perr != nil {
		return 0, 0, "", ErrInvalidBlobPath.Msg("account id segment is not a 16-bit integer")
	}
	cid, perr := strconv.ParseInt(parts[1], 10, 16)
	if perr != nil {
		return 0, 0, "", ErrInvalidBlobPath.Msg("container id segment is not a 16-bit integer")
	}
	return int16(aid), int16(cid), parts[2], nil
}
