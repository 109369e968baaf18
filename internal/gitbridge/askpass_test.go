package gitbridge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAskpassHelper(t *testing.T) {
	storeDir := filepath.Join(t.TempDir(), ".qmoi")

	path, err := WriteAskpassHelper("ghp_secret123", storeDir)
	if err != nil {
		t.Fatalf("WriteAskpassHelper failed: %v", err)
	}

	if filepath.Base(path) != AskpassName {
		t.Errorf("Helper name = %q, want %q", filepath.Base(path), AskpassName)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Helper not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("Helper permissions = %o, want 0700", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read helper: %v", err)
	}
	script := string(data)
	if !strings.HasPrefix(script, "#!") {
		t.Error("Helper must start with a shebang")
	}
	if !strings.Contains(script, "'ghp_secret123'") {
		t.Error("Helper must print the quoted token")
	}
}

func TestWriteAskpassHelper_QuotesInToken(t *testing.T) {
	storeDir := filepath.Join(t.TempDir(), ".qmoi")

	path, err := WriteAskpassHelper(`tok'en"with$chars`, storeDir)
	if err != nil {
		t.Fatalf("WriteAskpassHelper failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read helper: %v", err)
	}
	script := string(data)

	// A single quote inside the token must not terminate the shell quoting;
	// everything else stays inside single quotes so the shell never expands it.
	if !strings.Contains(script, `'tok'\''en"with$chars'`) {
		t.Errorf("Token not safely quoted in helper: %s", script)
	}
}

func TestRemoveAskpassHelper(t *testing.T) {
	storeDir := filepath.Join(t.TempDir(), ".qmoi")

	path, err := WriteAskpassHelper("token", storeDir)
	if err != nil {
		t.Fatalf("WriteAskpassHelper failed: %v", err)
	}

	RemoveAskpassHelper(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Helper should be removed")
	}

	// Removing twice (or an empty path) must not panic.
	RemoveAskpassHelper(path)
	RemoveAskpassHelper("")
}

func TestNeedsCredentials(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"Push", []string{"push", "origin", "main"}, true},
		{"Pull", []string{"pull"}, true},
		{"FetchWithFlags", []string{"fetch", "--all"}, true},
		{"Status", []string{"status"}, false},
		{"Commit", []string{"commit", "-m", "push fix"}, false},
		{"Empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsCredentials(tt.args); got != tt.want {
				t.Errorf("NeedsCredentials(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
