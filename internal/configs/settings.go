package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/qmoi-ai/qmoi/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
}

type StoreSettings struct {
	// StoreDir is the directory holding encrypted named secrets and the
	// audit log. Empty until InitStoreSettings runs.
	StoreDir string

	// Root is the directory containing StoreDir.
	Root string
}

var (
	UserQmoiSettings  *UserSettings
	StoreQmoiSettings *StoreSettings
)

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	// This is independent of where the command runs, so it is ok to init here
	UserQmoiSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "qmoi"),
	}
	StoreQmoiSettings = &StoreSettings{}
}

// InitStoreSettings resolves the secret store directory. A
// default_store_dir from the user config wins; next an existing .qmoi
// directory found by walking up from the working directory; otherwise
// the store defaults to .qmoi under the working directory (it may not
// exist yet; bootstrap creates it on first write).
func InitStoreSettings() error {
	if userConfig, err := LoadUserConfig(); err == nil && userConfig.DefaultStoreDir != "" {
		StoreQmoiSettings = &StoreSettings{
			Root:     filepath.Dir(userConfig.DefaultStoreDir),
			StoreDir: userConfig.DefaultStoreDir,
		}
		return nil
	}

	root, err := utils.FindStoreRoot()
	if err != nil {
		return err
	}

	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	StoreQmoiSettings = &StoreSettings{
		Root:     root,
		StoreDir: filepath.Join(root, ".qmoi"),
	}

	return nil
}
