// Package common defines shared constants and sentinel errors used across
// the refind client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session contract errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Identity operation errors. The backend's own message, when present,
	// rides on the wrapping error.
	ErrRegistrationRejected = errors.New("registration rejected")
	ErrAuthenticationFailed = errors.New("authentication failed")
)
