package masterkey

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	// Service is the keyring service identifier for the master key entry.
	Service = "qmoi_master"

	// Account is the keyring account identifier for the master key entry.
	Account = "master-key"

	// EnvVar is the environment variable consulted when the keyring has
	// no master key. The value is the base64url-encoded key.
	EnvVar = "QMOI_MASTER_KEY"

	// KeySize is the master key length in bytes.
	KeySize = 32
)

// Get resolves the master key, preferring the OS keyring over the
// environment. Returns nil when neither source yields a key; absence is
// an expected condition, not an error. Malformed values in either source
// are treated as absent.
func Get() []byte {
	if key := fromKeyring(); key != nil {
		return key
	}
	return fromEnv()
}

// Generate produces a new random master key. It has no side effects;
// persisting the key is the caller's responsibility.
func Generate() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// StoreInKeyring persists the master key in the OS keyring. Returns false
// when no keyring backend is available so callers can fall back to
// printing an export instruction.
func StoreInKeyring(key []byte) bool {
	if err := keyring.Set(Service, Account, Encode(key)); err != nil {
		return false
	}
	return true
}

// Encode returns the base64url encoding used for keyring storage and the
// QMOI_MASTER_KEY environment variable.
func Encode(key []byte) string {
	return base64.URLEncoding.EncodeToString(key)
}

// Decode reverses Encode. Returns nil for malformed or wrongly sized input.
func Decode(encoded string) []byte {
	key, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil || len(key) != KeySize {
		return nil
	}
	return key
}

// Source reports where the master key would be resolved from:
// "keyring", "environment", or "none".
func Source() string {
	if fromKeyring() != nil {
		return "keyring"
	}
	if fromEnv() != nil {
		return "environment"
	}
	return "none"
}

func fromKeyring() []byte {
	val, err := keyring.Get(Service, Account)
	if err != nil {
		return nil
	}
	return Decode(val)
}

func fromEnv() []byte {
	val := os.Getenv(EnvVar)
	if val == "" {
		return nil
	}
	return Decode(val)
}
