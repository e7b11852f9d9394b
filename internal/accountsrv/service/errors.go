package service

import (
	"net/http"

	"github.com/nimbusworks/nimbus/internal/common/apperrors"
)

var (
	ErrServiceError apperrors.Error = apperrors.New("account service failed").SetStatusCode(http.StatusInternalServerError)

	ErrAccountNotFound apperrors.Error = ErrServiceError.New("account not found").SetStatusCode(http.StatusNotFound)
	ErrUpdateConflict  apperrors.Error = ErrServiceError.New("conflicting account update").SetExpandError(true).SetStatusCode(http.StatusConflict)
	ErrInvalidUpdate   apperrors.Error = ErrServiceError.New("invalid account update").SetStatusCode(http.StatusBadRequest)
)
