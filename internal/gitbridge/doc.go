// Package gitbridge wraps git invocations so network operations can use
// the stored GitHub token without any plaintext credential configuration.
//
// For push, pull, and fetch, the bridge resolves the "github" named
// secret and, when one exists, materializes a transient askpass helper
// (.qmoi/git-askpass-qmoi.sh, mode 0700), points GIT_ASKPASS at it, sets
// GIT_USERNAME=x-access-token, and removes the helper once git exits.
//
// The bridge never fails for lack of a credential: when no secret
// resolves, git runs with the host's existing configuration (SSH keys,
// cached credential manager). All other subcommands pass through
// unmodified.
package gitbridge
