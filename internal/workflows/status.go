package workflows

import (
	"context"
	"os"

	"github.com/qmoi-ai/qmoi/internal/masterkey"
	"github.com/qmoi-ai/qmoi/internal/secrets"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	// StoreDir overrides the secret store directory.
	StoreDir string
}

// SecretStatus describes one named secret in the store.
type SecretStatus struct {
	// Name is the logical secret name.
	Name string

	// Path is the encrypted file location.
	Path string

	// Decryptable is true when the current master key opens the file.
	Decryptable bool

	// EnvFallback is true when the QMOI_<NAME>_TOKEN variable is set.
	EnvFallback bool
}

// StatusResult contains the outcome of a status inspection.
type StatusResult struct {
	// StoreDir is the resolved secret store directory.
	StoreDir string

	// StoreExists is true when the store directory exists on disk.
	StoreExists bool

	// KeySource reports where the master key resolves from:
	// "keyring", "environment", or "none".
	KeySource string

	// Secrets lists the encrypted secrets found in the store.
	Secrets []SecretStatus
}

// Status inspects the secret store without modifying anything: where the
// master key resolves from, which encrypted secrets exist, and whether
// each one can actually be decrypted with the current key.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	storeDir, err := resolveStoreDir(opts.StoreDir)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		StoreDir:  storeDir,
		KeySource: masterkey.Source(),
	}

	if _, err := os.Stat(storeDir); err == nil {
		result.StoreExists = true
	}

	names, err := secrets.ListNamedSecrets(storeDir)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		path := secrets.NamedSecretPath(name, storeDir)
		_, decryptable := secrets.DecryptSecretFile(path)
		_, envSet := os.LookupEnv(secrets.TokenEnvVar(name))

		result.Secrets = append(result.Secrets, SecretStatus{
			Name:        name,
			Path:        path,
			Decryptable: decryptable,
			EnvFallback: envSet,
		})
	}

	return result, nil
}
