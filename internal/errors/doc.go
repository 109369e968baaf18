// Package errors provides typed error values for the QMOI application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: master key resolution and validation (ErrNoMasterKey,
//     ErrInvalidKeyLength)
//   - Store errors: named secret validation (ErrInvalidSecretName)
//
// # Usage
//
// Return errors from internal packages:
//
//	if key == nil {
//	    return qerrors.ErrNoMasterKey
//	}
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, qerrors.ErrInvalidSecretName) {
//	    // Tell the operator which names are acceptable
//	}
//
// Two conditions are deliberately not errors: an unavailable keyring
// backend (a boolean result with environment-variable fallback messaging)
// and a confirm-write refusal (a result field rendered as a warning with
// exit 0). Decrypt failures collapse to a not-found result for the same
// reason: callers implement fallback chains, not error handling.
package errors
