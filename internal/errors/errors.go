package errors

import "errors"

// Key errors indicate issues resolving or persisting the master key.
var (
	// ErrNoMasterKey indicates no master key could be resolved from the
	// keyring or the environment. Bootstrap must run first.
	ErrNoMasterKey = errors.New("no master key available")

	// ErrInvalidKeyLength indicates the master key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid master key length")
)

// Store errors indicate issues with the named secret store.
var (
	// ErrInvalidSecretName indicates the secret name contains characters
	// that would escape the store directory.
	ErrInvalidSecretName = errors.New("invalid secret name")
)
