// Package masterkey resolves and persists the symmetric master key that
// protects all encrypted named secrets.
//
// # Resolution Order
//
// The key is resolved from two sources, in priority order:
//
//  1. OS keyring, service "qmoi_master", account "master-key"
//  2. QMOI_MASTER_KEY environment variable (base64url)
//
// When neither source yields a key, Get returns nil. Absence is an
// expected first-class condition (e.g. a fresh workstation before
// bootstrap), never an error.
//
// # Lifecycle
//
// The master key is generated once by bootstrap and stored either in the
// OS keyring or exported by the operator. At most one logical master key
// is active per workstation; rotation is a manual, explicit operation.
// The key is never written into any encrypted secret file.
//
// If the master key is lost, every secret encrypted under it becomes
// permanently unrecoverable. There is no key escrow; this is a deliberate
// simplicity/security trade-off.
package masterkey
