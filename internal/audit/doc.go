// Package audit provides an append-only audit trail for secret operations.
//
// Entries are written as JSON Lines to .qmoi/audit.jsonl inside the
// secret store. Each entry records the operation, the workstation that
// performed it, and operation-specific metadata. Secret values are never
// written to the log.
//
// Audit logging is best-effort: a failure to append never fails the
// operation being audited.
package audit
