package workflows

import (
	"context"

	"github.com/qmoi-ai/qmoi/internal/secrets"
)

// GitCredentialUsername is the username git expects alongside a GitHub
// token over https.
const GitCredentialUsername = "x-access-token"

// CredentialOptions configures the credential workflow.
type CredentialOptions struct {
	// Name is the logical secret name. Defaults to "github".
	Name string

	// StoreDir overrides the secret store directory.
	StoreDir string
}

// CredentialResult contains a resolved git credential.
type CredentialResult struct {
	// Found is false when no secret resolved. Callers emit nothing in
	// that case so git falls through to its other helpers.
	Found bool

	// Username and Password follow the git credential-helper protocol.
	Username string
	Password string
}

// Credential resolves a named secret for the git credential-helper
// protocol. Absence is not an error: git treats an empty helper response
// as "no credential from this helper".
func Credential(ctx context.Context, opts CredentialOptions) (*CredentialResult, error) {
	name := opts.Name
	if name == "" {
		name = "github"
	}

	storeDir, err := resolveStoreDir(opts.StoreDir)
	if err != nil {
		return nil, err
	}

	token := secrets.GetNamedSecret(name, storeDir)
	if token == "" {
		return &CredentialResult{}, nil
	}

	return &CredentialResult{
		Found:    true,
		Username: GitCredentialUsername,
		Password: token,
	}, nil
}
