package utils

import "strings"

// patPrefixes are the recognizable GitHub personal access token prefixes.
// Classic tokens use ghp_; fine-grained tokens use github_pat_.
var patPrefixes = []string{"ghp_", "github_pat_"}

// IsPersonalAccessToken reports whether a token looks like a GitHub
// personal access token. Tokens matching this check are refused for
// on-disk persistence unless the operator passes --confirm-write, which
// protects against accidentally persisting a token pasted into an
// interactive session.
func IsPersonalAccessToken(token string) bool {
	for _, prefix := range patPrefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

// RedactToken returns a display-safe form of a token: the first four
// characters followed by an ellipsis, or "****" for short values.
func RedactToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "…"
}
