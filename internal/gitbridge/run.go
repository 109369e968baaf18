package gitbridge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/qmoi-ai/qmoi/internal/audit"
	"github.com/qmoi-ai/qmoi/internal/secrets"
)

// networkSubcommands are the git subcommands that may need credentials.
var networkSubcommands = map[string]bool{
	"push":  true,
	"pull":  true,
	"fetch": true,
}

// NeedsCredentials reports whether any of the git arguments name a
// subcommand that performs network operations.
func NeedsCredentials(args []string) bool {
	for _, arg := range args {
		if networkSubcommands[arg] {
			return true
		}
	}
	return false
}

// Run executes git with the given arguments, injecting the stored GitHub
// token via the askpass protocol for network subcommands. When no secret
// resolves, git runs unmodified and falls back to whatever credential
// configuration the host already has (SSH keys, credential manager).
//
// Returns git's exit code. A non-zero git exit is not a Go error; only a
// failure to start the subprocess is.
func Run(ctx context.Context, args []string, storeDir string) (int, error) {
	env := os.Environ()
	askpass := ""

	if NeedsCredentials(args) {
		if token := secrets.GetNamedSecret("github", storeDir); token != "" {
			path, err := WriteAskpassHelper(token, storeDir)
			if err != nil {
				return 0, err
			}
			askpass = path
			defer RemoveAskpassHelper(askpass)

			// Git requires an absolute path for GIT_ASKPASS.
			abs, err := filepath.Abs(path)
			if err != nil {
				return 0, fmt.Errorf("failed to resolve askpass path: %w", err)
			}
			env = append(env, "GIT_ASKPASS="+abs)
			// Username for GitHub token auth over https.
			env = append(env, "GIT_USERNAME=x-access-token")

			entry := audit.LogWithWorkstation("git-askpass")
			entry.Helper = abs
			audit.Log(entry)
		}
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("failed to run git: %w", err)
	}

	return 0, nil
}
