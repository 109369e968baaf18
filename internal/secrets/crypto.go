package secrets

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"

	qerrors "github.com/qmoi-ai/qmoi/internal/errors"
	"github.com/qmoi-ai/qmoi/internal/masterkey"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// EncryptSecret encrypts a UTF-8 secret with the resolved master key and
// writes the ciphertext to outPath, creating parent directories as needed.
// Returns ErrNoMasterKey when no master key is resolvable; bootstrap must
// run first.
func EncryptSecret(secret string, outPath string) error {
	key := masterkey.Get()
	if key == nil {
		return qerrors.ErrNoMasterKey
	}
	return EncryptSecretWithKey(secret, key, outPath)
}

// EncryptSecretWithKey encrypts a secret under an explicit key, bypassing
// master key resolution. Used by bootstrap, which must encrypt under a key
// it has generated but not yet persisted anywhere resolvable.
func EncryptSecretWithKey(secret string, key []byte, outPath string) error {
	if len(key) != masterkey.KeySize {
		return fmt.Errorf("%w: expected %d bytes, got %d", qerrors.ErrInvalidKeyLength, masterkey.KeySize, len(key))
	}

	var boxKey [masterkey.KeySize]byte
	copy(boxKey[:], key)

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := secretbox.Seal(nonce[:], []byte(secret), &nonce, &boxKey)

	if err := os.MkdirAll(filepath.Dir(outPath), 0700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", outPath, err)
	}
	if err := os.WriteFile(outPath, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write to %s: %w", outPath, err)
	}

	return nil
}

// DecryptSecretFile decrypts a file written by EncryptSecret and returns
// the secret string. A missing file, an unresolvable master key, or a
// failed authentication (wrong key, truncated or tampered ciphertext) all
// return ("", false). Callers cannot distinguish missing from corrupt at
// this layer; both are recoverable conditions handled by fallback chains.
func DecryptSecretFile(encPath string) (string, bool) {
	key := masterkey.Get()
	if key == nil || len(key) != masterkey.KeySize {
		return "", false
	}

	ciphertext, err := os.ReadFile(encPath)
	if err != nil {
		return "", false
	}
	if len(ciphertext) < nonceSize {
		return "", false
	}

	var boxKey [masterkey.KeySize]byte
	copy(boxKey[:], key)

	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[:nonceSize])

	plaintext, ok := secretbox.Open(nil, ciphertext[nonceSize:], &nonce, &boxKey)
	if !ok {
		return "", false
	}

	return string(plaintext), true
}
