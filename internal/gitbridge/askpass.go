package gitbridge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AskpassName is the filename of the transient askpass helper inside the
// secret store directory.
const AskpassName = "git-askpass-qmoi.sh"

// WriteAskpassHelper materializes a transient askpass script that prints
// the token when git invokes it. The script is owner-only (0700) and must
// be removed by the caller after the git subprocess exits.
func WriteAskpassHelper(token, storeDir string) (string, error) {
	if err := os.MkdirAll(storeDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create store directory: %w", err)
	}

	path := filepath.Join(storeDir, AskpassName)
	script := fmt.Sprintf("#!/usr/bin/env bash\nprintf '%%s\\n' %s\n", shellQuote(token))

	// #nosec G306 -- the helper must be executable by git; 0700 keeps it owner-only.
	if err := os.WriteFile(path, []byte(script), 0700); err != nil {
		return "", fmt.Errorf("failed to write askpass helper: %w", err)
	}

	return path, nil
}

// shellQuote wraps s in single quotes for safe embedding in the helper
// script. Embedded single quotes become '\''.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// RemoveAskpassHelper deletes a helper written by WriteAskpassHelper.
// A missing file is fine; the helper is single-use.
func RemoveAskpassHelper(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
