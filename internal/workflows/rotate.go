package workflows

import (
	"context"
	"fmt"

	"github.com/qmoi-ai/qmoi/internal/audit"
	"github.com/qmoi-ai/qmoi/internal/masterkey"
	"github.com/qmoi-ai/qmoi/internal/secrets"
	"github.com/qmoi-ai/qmoi/internal/utils"
)

// RotateOptions configures the rotate workflow.
type RotateOptions struct {
	// Name is the logical secret name (e.g. "github", "ngrok"). Required.
	Name string

	// Token is the new token value. Required.
	Token string

	// StoreKeyring persists an auto-provisioned master key in the keyring.
	StoreKeyring bool

	// ConfirmWrite explicitly confirms writing PAT-shaped tokens to disk.
	ConfirmWrite bool

	// StoreDir overrides the secret store directory.
	StoreDir string
}

// RotateResult contains the outcome of a rotate operation.
type RotateResult struct {
	// Refused is true when the confirm-write gate refused the token.
	// Nothing was written.
	Refused bool

	// Path is where the rotated secret was written.
	Path string

	// KeyGenerated is true when no master key existed and one was
	// auto-provisioned for this rotation.
	KeyGenerated bool

	// KeyStoredInKeyring is true when the auto-provisioned key was
	// persisted to the keyring.
	KeyStoredInKeyring bool

	// MasterKeyExport carries the base64url key the operator must persist
	// when an auto-provisioned key could not be stored in the keyring.
	MasterKeyExport string
}

// Rotate overwrites the encrypted file for a named secret with a newly
// encrypted token.
//
// A missing master key is not fatal: one is auto-provisioned and reported
// in the result with explicit persistence instructions for the operator.
// Concurrent rotations of the same name are not serialized; operators
// must not run them in parallel.
func Rotate(ctx context.Context, opts RotateOptions) (*RotateResult, error) {
	if err := secrets.ValidateSecretName(opts.Name); err != nil {
		return nil, err
	}

	storeDir, err := resolveStoreDir(opts.StoreDir)
	if err != nil {
		return nil, err
	}

	result := &RotateResult{}

	if utils.IsPersonalAccessToken(opts.Token) && !opts.ConfirmWrite {
		result.Refused = true

		entry := audit.LogWithWorkstation("rotate")
		entry.Name = opts.Name
		entry.Refused = true
		audit.Log(entry)

		return result, nil
	}

	key := masterkey.Get()
	if key == nil {
		key, err = masterkey.Generate()
		if err != nil {
			return nil, err
		}
		result.KeyGenerated = true

		if opts.StoreKeyring && masterkey.StoreInKeyring(key) {
			result.KeyStoredInKeyring = true
		}
		if !result.KeyStoredInKeyring {
			result.MasterKeyExport = masterkey.Encode(key)
		}
	}

	path, err := secrets.EncryptNamedSecretWithKey(opts.Token, opts.Name, key, storeDir)
	if err != nil {
		return nil, fmt.Errorf("encrypting secret %q: %w", opts.Name, err)
	}
	result.Path = path

	entry := audit.LogWithWorkstation("rotate")
	entry.Name = opts.Name
	entry.OutputPath = path
	if result.KeyGenerated {
		entry.KeySource = "generated"
	}
	audit.Log(entry)

	return result, nil
}
