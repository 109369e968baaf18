package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmoi-ai/qmoi/internal/configs"
)

// withTempStore points StoreQmoiSettings at a temp .qmoi directory for
// the duration of the test and returns the store path.
func withTempStore(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	storeDir := filepath.Join(tmpDir, ".qmoi")
	if err := os.MkdirAll(storeDir, 0700); err != nil {
		t.Fatalf("Failed to create store dir: %v", err)
	}

	original := configs.StoreQmoiSettings
	configs.StoreQmoiSettings = &configs.StoreSettings{
		Root:     tmpDir,
		StoreDir: storeDir,
	}
	t.Cleanup(func() {
		configs.StoreQmoiSettings = original
	})

	return storeDir
}

func TestLog_CreatesFile(t *testing.T) {
	storeDir := withTempStore(t)

	Log(Entry{
		Workstation: "build-box",
		UUID:        "test-uuid",
		Operation:   "bootstrap",
		Name:        "github",
	})

	logPath := filepath.Join(storeDir, "audit.jsonl")
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("Audit log file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	storeDir := withTempStore(t)

	Log(Entry{Workstation: "a", Operation: "bootstrap"})
	Log(Entry{Workstation: "b", Operation: "rotate"})
	Log(Entry{Workstation: "c", Operation: "credential"})

	data, err := os.ReadFile(filepath.Join(storeDir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[1].Operation != "rotate" {
		t.Errorf("Second entry op = %q, want %q", entries[1].Operation, "rotate")
	}
}

func TestLog_SetsTimestamp(t *testing.T) {
	storeDir := withTempStore(t)

	Log(Entry{Operation: "rotate"})

	data, err := os.ReadFile(filepath.Join(storeDir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	var entry Entry
	if err := json.Unmarshal(data[:len(data)-1], &entry); err != nil {
		t.Fatalf("Failed to unmarshal entry: %v", err)
	}
	if entry.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
}

func TestLog_MissingStoreIsNoop(t *testing.T) {
	original := configs.StoreQmoiSettings
	configs.StoreQmoiSettings = &configs.StoreSettings{
		Root:     t.TempDir(),
		StoreDir: filepath.Join(t.TempDir(), ".qmoi"), // never created
	}
	defer func() {
		configs.StoreQmoiSettings = original
	}()

	// Must not create the store directory or panic.
	Log(Entry{Operation: "bootstrap"})

	if _, err := os.Stat(configs.StoreQmoiSettings.StoreDir); !os.IsNotExist(err) {
		t.Error("Log should not create the store directory")
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"op":"bootstrap"}
not json
{"op":"rotate"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "bootstrap" || entries[1].Operation != "rotate" {
		t.Errorf("Unexpected entries: %+v", entries)
	}
}

func TestParseEntries_Empty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil, got %v", entries)
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	withTempStore(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil for missing log, got %v", entries)
	}
}
