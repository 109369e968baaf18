package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmoi-ai/qmoi/internal/audit"
	"github.com/qmoi-ai/qmoi/internal/configs"
	"github.com/qmoi-ai/qmoi/internal/masterkey"
	"github.com/qmoi-ai/qmoi/internal/secrets"
	"github.com/qmoi-ai/qmoi/internal/utils"
)

// BootstrapOptions configures the bootstrap workflow.
type BootstrapOptions struct {
	// Token is the ngrok auth token to encrypt. Optional.
	Token string

	// GitHubToken is the GitHub personal access token to encrypt. Optional.
	GitHubToken string

	// StoreKeyring persists the master key in the OS keyring.
	StoreKeyring bool

	// CreateGitHelper writes a git credential helper script to the store.
	CreateGitHelper bool

	// ConfirmWrite explicitly confirms writing PAT-shaped tokens to disk.
	ConfirmWrite bool

	// StoreDir overrides the secret store directory. Empty resolves the
	// conventional .qmoi location.
	StoreDir string
}

// BootstrapResult contains the outcome of a bootstrap operation.
type BootstrapResult struct {
	// StoreDir is the resolved secret store directory.
	StoreDir string

	// KeySource reports where the master key came from:
	// "keyring", "environment", or "generated".
	KeySource string

	// KeyStoredInKeyring is true when the key was persisted to the keyring.
	KeyStoredInKeyring bool

	// KeyringFailed is true when keyring persistence was requested but no
	// backend was available.
	KeyringFailed bool

	// MasterKeyExport is the base64url key for the operator's export
	// instruction. Only set when the key is not resolvable from the
	// keyring after this operation.
	MasterKeyExport string

	// NgrokPath is where the ngrok token was written. Empty if skipped.
	NgrokPath string

	// NgrokRefused is true when the confirm-write gate refused the token.
	NgrokRefused bool

	// GitHubPath is where the GitHub token was written. Empty if skipped.
	GitHubPath string

	// GitHubRefused is true when the confirm-write gate refused the token.
	GitHubRefused bool

	// HelperPath is where the git credential helper was written. Empty if
	// not requested.
	HelperPath string
}

// gitCredentialHelper answers git's credential "get" action by shelling
// back into the named secret store resolution logic.
const gitCredentialHelper = `#!/usr/bin/env bash
# QMOI git credential helper: prints username and password for https remotes.
# Configure with: git config --global credential.helper '<path to this file>'
while read -r line && [ -n "$line" ]; do :; done
exec qmoi secrets credential
`

// Bootstrap provisions the master key and encrypts the initial secrets.
//
// The master key is resolved from the keyring or environment when one
// already exists; otherwise a new key is generated. Tokens that look like
// personal access tokens are refused for on-disk persistence unless
// ConfirmWrite is set; a refusal is reported in the result, not as an
// error.
func Bootstrap(ctx context.Context, opts BootstrapOptions) (*BootstrapResult, error) {
	storeDir, err := resolveStoreDir(opts.StoreDir)
	if err != nil {
		return nil, err
	}

	result := &BootstrapResult{StoreDir: storeDir}

	// Reuse an existing master key so already-encrypted secrets stay
	// readable; generate one only on a fresh workstation.
	key := masterkey.Get()
	if key != nil {
		result.KeySource = masterkey.Source()
	} else {
		key, err = masterkey.Generate()
		if err != nil {
			return nil, err
		}
		result.KeySource = "generated"
	}

	if opts.StoreKeyring {
		if masterkey.StoreInKeyring(key) {
			result.KeyStoredInKeyring = true
		} else {
			result.KeyringFailed = true
		}
	}

	// The operator must persist a generated key somewhere resolvable, or
	// everything encrypted in this run becomes unrecoverable.
	if result.KeySource == "generated" && !result.KeyStoredInKeyring {
		result.MasterKeyExport = masterkey.Encode(key)
	}

	if opts.Token != "" {
		if utils.IsPersonalAccessToken(opts.Token) && !opts.ConfirmWrite {
			result.NgrokRefused = true
		} else {
			path, err := secrets.EncryptNamedSecretWithKey(opts.Token, "ngrok", key, storeDir)
			if err != nil {
				return nil, fmt.Errorf("encrypting ngrok token: %w", err)
			}
			result.NgrokPath = path
		}
	}

	if opts.GitHubToken != "" {
		if utils.IsPersonalAccessToken(opts.GitHubToken) && !opts.ConfirmWrite {
			result.GitHubRefused = true
		} else {
			path, err := secrets.EncryptNamedSecretWithKey(opts.GitHubToken, "github", key, storeDir)
			if err != nil {
				return nil, fmt.Errorf("encrypting GitHub token: %w", err)
			}
			result.GitHubPath = path
		}
	}

	if opts.CreateGitHelper {
		helperPath := filepath.Join(storeDir, "git-credential-qmoi.sh")
		if err := os.MkdirAll(storeDir, 0700); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
		// #nosec G306 -- the helper must be executable; 0700 keeps it owner-only.
		if err := os.WriteFile(helperPath, []byte(gitCredentialHelper), 0700); err != nil {
			return nil, fmt.Errorf("writing git credential helper: %w", err)
		}
		result.HelperPath = helperPath
	}

	// Log to audit trail.
	entry := audit.LogWithWorkstation("bootstrap")
	entry.KeySource = result.KeySource
	entry.Refused = result.NgrokRefused || result.GitHubRefused
	entry.Helper = result.HelperPath
	audit.Log(entry)

	return result, nil
}

// resolveStoreDir returns the explicit dir when given, otherwise the
// conventional store location from configs.
func resolveStoreDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if err := configs.InitStoreSettings(); err != nil {
		return "", fmt.Errorf("resolving store directory: %w", err)
	}
	return configs.StoreQmoiSettings.StoreDir, nil
}
