package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/qmoi-ai/qmoi/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp   string `json:"ts"`   // RFC3339 with microseconds.
	Workstation string `json:"ws"`   // Name of the workstation performing the action.
	UUID        string `json:"uuid"` // UUID of the workstation performing the action.
	Operation   string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Name       string `json:"name,omitempty"`        // Secret name for bootstrap/rotate.
	OutputPath string `json:"output_path,omitempty"` // Path written for bootstrap/rotate.
	KeySource  string `json:"key_source,omitempty"`  // Master key source: keyring/environment/generated.
	Refused    bool   `json:"refused,omitempty"`     // True when the confirm-write gate refused.
	Helper     string `json:"helper,omitempty"`      // Helper script path for the git bridge.
}

// Log appends an entry to the audit log inside the secret store directory.
// If logging fails, the failure is swallowed: operations should not fail
// just because audit logging failed.
func Log(entry Entry) {
	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	storeDir := configs.StoreQmoiSettings.StoreDir
	if storeDir == "" {
		// Store not resolved, skip logging.
		return
	}
	if _, err := os.Stat(storeDir); os.IsNotExist(err) {
		// Nothing has been bootstrapped here yet.
		return
	}

	logPath := filepath.Join(storeDir, "audit.jsonl")

	// Open file for appending (create if doesn't exist).
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithWorkstation is a convenience function that populates workstation
// fields from the user config.
func LogWithWorkstation(op string) Entry {
	entry := Entry{Operation: op}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return entry
	}

	entry.Workstation = userConfig.Workstation.Name
	entry.UUID = userConfig.Workstation.UUID

	return entry
}

// LogPath returns the path to the audit log file.
// Returns empty string if the store has not been resolved.
func LogPath() string {
	storeDir := configs.StoreQmoiSettings.StoreDir
	if storeDir == "" {
		return ""
	}
	return filepath.Join(storeDir, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
