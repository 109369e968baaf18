// Package workflows provides high-level orchestration for QMOI commands.
//
// Workflows coordinate multiple operations across packages (configs,
// masterkey, secrets, audit) to implement complete user-facing features.
// Each workflow handles a single command's business logic, independent of
// CLI concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving the store directory and master key
//   - Applying the confirm-write safety gate
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
// Each command has a corresponding workflow:
//
//   - Bootstrap: Provisions the master key and encrypts initial secrets
//   - Rotate: Replaces a named secret, auto-provisioning a key if needed
//   - Status: Reports key source and store contents without modification
//   - Credential: Resolves a secret for the git credential-helper protocol
//
// # Refusals vs. Errors
//
// The confirm-write safety gate produces a refusal carried in the result
// struct (NgrokRefused, GitHubRefused, Refused), never an error. Commands
// print an explanation and exit zero. Real failures are returned as
// errors, with sentinels from internal/errors where callers need to
// branch on them.
package workflows
