package account

import (
	"net/http"

	"github.com/nimbusworks/nimbus/internal/common/apperrors"
)

// Base catalog model error
var (
	ErrAccountError apperrors.Error = apperrors.New("account processing failed").SetStatusCode(http.StatusInternalServerError)
)

// Validation errors
var (
	ErrInvalidArgument          apperrors.Error = ErrAccountError.New("invalid argument").SetStatusCode(http.StatusBadRequest)
	ErrMalformedDocument        apperrors.Error = ErrAccountError.New("malformed document").SetExpandError(true).SetStatusCode(http.StatusBadRequest)
	ErrUnsupportedSchemaVersion apperrors.Error = ErrAccountError.New("unsupported schema version").SetStatusCode(http.StatusBadRequest)
	ErrInvariantViolation       apperrors.Error = ErrAccountError.New("invariant violation").SetExpandError(true).SetStatusCode(http.StatusBadRequest)
	ErrInvalidEnumValue         apperrors.Error = ErrAccountError.New("invalid enum value").SetStatusCode(http.StatusBadRequest)
)
