package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// FindStoreRoot traverses up directories to find an existing .qmoi store.
// Returns the directory containing .qmoi if found, empty string otherwise.
// Stops searching when it reaches one level above the user's home directory.
func FindStoreRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	for {
		// Stop searching at one level above home directory
		if currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		storeDir := filepath.Join(currentDir, ".qmoi")
		fileInfo, err := os.Stat(storeDir)
		// No error means the path exists
		if err == nil {
			if fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			// Return any error that's not "file not found" (like permission issues)
			return "", fmt.Errorf("error checking for .qmoi directory at %s: %w", currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)

		// If we've reached the filesystem root and haven't found .qmoi
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// GetHostname returns the system hostname, used as the default workstation name.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to get hostname: %w", err)
	}
	return hostname, nil
}
