// Package secrets provides the encrypted named secret store for QMOI.
//
// A named secret is a logical credential (e.g. "github", "ngrok")
// persisted as authenticated ciphertext at .qmoi/<name>_token.enc. Many
// named secrets share one master key, resolved by the masterkey package.
//
// # Encryption
//
// Secrets are encrypted with NaCl secretbox using a random 24-byte nonce
// prepended to the ciphertext, so re-encrypting the same secret produces
// different output. Secretbox authenticates the ciphertext: a wrong key,
// a truncated file, or a flipped bit makes decryption fail cleanly rather
// than yield corrupted plaintext.
//
// # Resolution
//
// GetNamedSecret resolves in a fixed priority order: the encrypted file
// first, then the QMOI_<NAME>_TOKEN environment variable, then nothing.
// Decrypt failures are deliberately collapsed into the not-found case so
// callers implement fallback chains without error handling.
//
// # Concurrency
//
// The store provides no file locking. Concurrent rotations of the same
// name from multiple processes are undefined behavior; operators must
// serialize rotations.
package secrets
