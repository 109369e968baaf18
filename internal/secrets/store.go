package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	qerrors "github.com/qmoi-ai/qmoi/internal/errors"
)

// DefaultStoreDir is the conventional directory for encrypted named secrets.
const DefaultStoreDir = ".qmoi"

// NamedSecretPath returns the conventional on-disk location for a named
// secret: <dir>/<name>_token.enc.
func NamedSecretPath(name, dir string) string {
	return filepath.Join(dir, name+"_token.enc")
}

// TokenEnvVar returns the environment variable consulted as the plaintext
// fallback for a named secret, e.g. QMOI_GITHUB_TOKEN for "github".
func TokenEnvVar(name string) string {
	return "QMOI_" + strings.ToUpper(name) + "_TOKEN"
}

// ValidateSecretName rejects names that would escape the store directory.
func ValidateSecretName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		return fmt.Errorf("%w: %q", qerrors.ErrInvalidSecretName, name)
	}
	return nil
}

// EncryptNamedSecret encrypts a secret under the current master key and
// writes it to the conventional path inside dir. Returns the path written.
func EncryptNamedSecret(secret, name, dir string) (string, error) {
	if err := ValidateSecretName(name); err != nil {
		return "", err
	}
	out := NamedSecretPath(name, dir)
	if err := EncryptSecret(secret, out); err != nil {
		return "", err
	}
	return out, nil
}

// EncryptNamedSecretWithKey is EncryptNamedSecret under an explicit key.
func EncryptNamedSecretWithKey(secret, name string, key []byte, dir string) (string, error) {
	if err := ValidateSecretName(name); err != nil {
		return "", err
	}
	out := NamedSecretPath(name, dir)
	if err := EncryptSecretWithKey(secret, key, out); err != nil {
		return "", err
	}
	return out, nil
}

// GetNamedSecret resolves a named secret. Resolution order:
//
//  1. The encrypted file at the conventional path inside dir
//  2. The QMOI_<NAME>_TOKEN environment variable
//
// Returns "" when neither source yields a value. Downstream tooling (the
// git credential bridge) depends on this priority: CI environments inject
// plaintext env vars, local workstations carry encrypted files, and the
// file always wins when both exist.
func GetNamedSecret(name, dir string) string {
	if ValidateSecretName(name) != nil {
		return ""
	}

	if secret, ok := DecryptSecretFile(NamedSecretPath(name, dir)); ok && secret != "" {
		return secret
	}

	return os.Getenv(TokenEnvVar(name))
}

// ListNamedSecrets returns the names of all encrypted secrets in dir,
// derived from <name>_token.enc filenames. A missing directory yields nil.
func ListNamedSecrets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), "_token.enc"); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
