package cloud

import (
	"net/http"

	"github.com/nimbusworks/nimbus/internal/common/apperrors"
)

// ErrCloudError is the base error for the cloud tiering boundary.
var ErrCloudError apperrors.Error = apperrors.New("cloud storage error").SetStatusCode(http.StatusInternalServerError)

var (
	ErrInvalidBlobPath apperrors.Error = ErrCloudError.New("invalid blob path").SetStatusCode(http.StatusBadRequest)
	ErrBlobNotFound    apperrors.Error = ErrCloudError.New("blob not found").SetStatusCode(http.StatusNotFound)
	ErrStorage         apperrors.Error = ErrCloudError.New("storage operation failed").SetExpandError(true).SetStatusCode(http.StatusBadGateway)
)
