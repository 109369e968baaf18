package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmoi-ai/qmoi/internal/utils"

	"github.com/google/uuid"
)

type UserConfig struct {
	Workstation Workstation `toml:"workstation"`

	// DefaultStoreDir overrides store discovery when set. Useful for
	// workstations that keep one shared store outside any project tree.
	DefaultStoreDir string `toml:"default_store_dir,omitempty"`
}

type Workstation struct {
	// UUID identifies this workstation in audit log entries.
	UUID string `toml:"workstation_uuid"`
	Name string `toml:"name"`
}

// LoadUserConfig loads the user configuration from the config file.
func LoadUserConfig() (*UserConfig, error) {
	configPath := filepath.Join(UserQmoiSettings.UserConfigsPath, "config.toml")

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := filepath.Join(UserQmoiSettings.UserConfigsPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// GenerateWorkstationUUID generates a new UUID for this workstation.
func GenerateWorkstationUUID() string {
	return uuid.New().String()
}

// EnsureUserConfig ensures the user configuration exists and has a
// workstation UUID, generating and persisting one on first use.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.Workstation.UUID == "" {
		config.Workstation.UUID = GenerateWorkstationUUID()
		if config.Workstation.Name == "" {
			if hostname, err := utils.GetHostname(); err == nil {
				config.Workstation.Name = hostname
			}
		}
		if err := SaveUserConfig(config); err != nil {
			return nil, fmt.Errorf("failed to save user config: %w", err)
		}
	}

	return config, nil
}
