package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNoPendingLogin     = errors.New("no_pending_login")
	ErrInvalidCode        = errors.New("invalid_code")
	ErrRateLimitExceeded  = errors.New("rate_limit_exceeded")
	ErrCsrfRejected       = errors.New("csrf_rejected")
	ErrUnsupportedChannel = errors.New("unsupported_channel")
	ErrPasswordTooShort   = errors.New("password_too_short")

	// The backing key-value store could not be reached.
	ErrStorageUnavailable = errors.New("storage_unavailable")
)
