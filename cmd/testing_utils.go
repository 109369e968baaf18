// Package cmd contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and building a test CLI around the real commands.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmoi-ai/qmoi/internal/configs"
	logger "github.com/qmoi-ai/qmoi/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment sets up the test environment with temporary directories.
func setupTestEnvironment(t *testing.T, tempDir, tempUserDir, originalWd string, originalUserSettings *configs.UserSettings) {
	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Flag values persist across Execute calls; start each test clean.
	ResetGlobalState()

	// Cleanup function to restore original state
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserQmoiSettings = originalUserSettings
		configs.StoreQmoiSettings = &configs.StoreSettings{}
	})

	// Override user settings to use temp directory
	configs.UserQmoiSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
	}
	configs.StoreQmoiSettings = &configs.StoreSettings{}

	// Keys and tokens must come only from what the test sets up.
	for _, v := range []string{"QMOI_MASTER_KEY", "QMOI_GITHUB_TOKEN", "QMOI_NGROK_TOKEN"} {
		t.Setenv(v, "")
		if err := os.Unsetenv(v); err != nil {
			t.Fatalf("Failed to unset %s: %v", v, err)
		}
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance for testing with the specified
// secrets subcommand, its flags, and the verbose/debug settings.
func createTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Set global flags for the actual command (needed for the real command implementations)
	verbose = verboseFlag
	debug = debugFlag

	// Initialize the logger with the test flags
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	// Create a fresh root command for this test
	rootCmd := &cobra.Command{
		Use:   "qmoi",
		Short: "QMOI - A CLI for managing encrypted workstation credentials.",
		Long: `QMOI securely stores workstation credentials encrypted at rest and
injects them into tooling that needs them.`,
	}

	// Use the actual SecretsCmd but reset its state
	rootCmd.AddCommand(SecretsCmd)

	// Set output streams
	if stdout != nil {
		rootCmd.SetOut(stdout)
		SecretsCmd.SetOut(stdout)
		// Set output on all subcommands
		bootstrapCmd.SetOut(stdout)
		rotateCmd.SetOut(stdout)
		statusCmd.SetOut(stdout)
		credentialCmd.SetOut(stdout)
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
		SecretsCmd.SetErr(stderr)
		// Set error output on all subcommands
		bootstrapCmd.SetErr(stderr)
		rotateCmd.SetErr(stderr)
		statusCmd.SetErr(stderr)
		credentialCmd.SetErr(stderr)
	}

	// Set args to run the specified subcommand
	rootCmd.SetArgs(append([]string{"secrets"}, args...))

	// Set the flags on the secrets command
	if err := SecretsCmd.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := SecretsCmd.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// createSecretsCommand creates a command that runs the given secrets
// subcommand with default verbosity.
func createSecretsCommand(args ...string) *cobra.Command {
	return createTestCLI(args, nil, nil, false, false)
}
