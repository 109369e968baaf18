// Package utils provides shared utility functions for the QMOI application.
//
// # Filesystem Utilities
//
// Functions for working with the filesystem and store structure:
//   - FindStoreRoot: walks up directories to find an existing .qmoi store
//   - GetHostname: returns the system hostname
//
// # String Utilities
//
// Functions for token classification and display:
//   - IsPersonalAccessToken: detects GitHub PAT-shaped tokens
//   - RedactToken: returns a display-safe token form
package utils
