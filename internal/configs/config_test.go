package configs

import (
	"os"
	"path/filepath"
	"testing"
)

// withTempUserSettings points UserQmoiSettings at a temp directory for
// the duration of the test.
func withTempUserSettings(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	original := UserQmoiSettings
	UserQmoiSettings = &UserSettings{UserConfigsPath: tmpDir}
	t.Cleanup(func() {
		UserQmoiSettings = original
	})

	return tmpDir
}

func TestSaveTOML_OwnerOnlyPerms(t *testing.T) {
	withTempUserSettings(t)

	if err := SaveUserConfig(&UserConfig{
		Workstation: Workstation{UUID: "11111111-2222-3333-4444-555555555555"},
	}); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(UserQmoiSettings.UserConfigsPath, "config.toml"))
	if err != nil {
		t.Fatalf("Config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Config file permissions = %o, want 0600", perm)
	}
}

func TestLoadUserConfig_MissingFile(t *testing.T) {
	withTempUserSettings(t)

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Workstation.UUID != "" {
		t.Errorf("Expected empty UUID for missing config, got %q", config.Workstation.UUID)
	}
}

func TestSaveLoadUserConfig_RoundTrip(t *testing.T) {
	withTempUserSettings(t)

	saved := &UserConfig{
		Workstation: Workstation{
			UUID: "11111111-2222-3333-4444-555555555555",
			Name: "build-box",
		},
	}
	if err := SaveUserConfig(saved); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if loaded.Workstation.UUID != saved.Workstation.UUID {
		t.Errorf("UUID = %q, want %q", loaded.Workstation.UUID, saved.Workstation.UUID)
	}
	if loaded.Workstation.Name != saved.Workstation.Name {
		t.Errorf("Name = %q, want %q", loaded.Workstation.Name, saved.Workstation.Name)
	}
}

func TestEnsureUserConfig_GeneratesUUID(t *testing.T) {
	tmpDir := withTempUserSettings(t)

	config, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig failed: %v", err)
	}
	if config.Workstation.UUID == "" {
		t.Fatal("Expected a generated workstation UUID")
	}
	if hostname, herr := os.Hostname(); herr == nil && config.Workstation.Name != hostname {
		t.Errorf("Name = %q, want hostname %q", config.Workstation.Name, hostname)
	}

	// The generated UUID must be persisted.
	if _, err := os.Stat(filepath.Join(tmpDir, "config.toml")); err != nil {
		t.Fatalf("Config file not written: %v", err)
	}

	// A second call must return the same UUID.
	again, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig failed on second call: %v", err)
	}
	if again.Workstation.UUID != config.Workstation.UUID {
		t.Errorf("UUID changed between calls: %q vs %q", again.Workstation.UUID, config.Workstation.UUID)
	}
}

// chdir changes into dir and restores the original working directory
// when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(original); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
}

func TestInitStoreSettings_DefaultsToWorkingDir(t *testing.T) {
	withTempUserSettings(t)
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	if err := InitStoreSettings(); err != nil {
		t.Fatalf("InitStoreSettings failed: %v", err)
	}

	if filepath.Base(StoreQmoiSettings.StoreDir) != ".qmoi" {
		t.Errorf("StoreDir = %q, expected a .qmoi directory", StoreQmoiSettings.StoreDir)
	}
	if StoreQmoiSettings.Root == "" {
		t.Error("Expected Root to be set")
	}
}

func TestInitStoreSettings_FindsExistingStoreAbove(t *testing.T) {
	withTempUserSettings(t)
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".qmoi"), 0700); err != nil {
		t.Fatalf("Failed to create store dir: %v", err)
	}
	subDir := filepath.Join(tmpDir, "services", "api")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	chdir(t, subDir)

	if err := InitStoreSettings(); err != nil {
		t.Fatalf("InitStoreSettings failed: %v", err)
	}

	if filepath.Base(StoreQmoiSettings.Root) == "api" {
		t.Errorf("Root %q should resolve to the existing store above, not the subdirectory", StoreQmoiSettings.Root)
	}
}

func TestInitStoreSettings_UserConfigOverride(t *testing.T) {
	withTempUserSettings(t)
	override := filepath.Join(t.TempDir(), "shared-store")
	if err := SaveUserConfig(&UserConfig{DefaultStoreDir: override}); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}
	chdir(t, t.TempDir())

	if err := InitStoreSettings(); err != nil {
		t.Fatalf("InitStoreSettings failed: %v", err)
	}

	if StoreQmoiSettings.StoreDir != override {
		t.Errorf("StoreDir = %q, want override %q", StoreQmoiSettings.StoreDir, override)
	}
}
