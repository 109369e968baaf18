package main

import (
	"fmt"
	"os"

	"github.com/qmoi-ai/qmoi/cmd"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qmoi",
	Short: "QMOI - A CLI for managing encrypted workstation credentials.",
	Long: `QMOI securely stores workstation credentials encrypted at rest and
injects them into tooling that needs them, without ever writing
plaintext tokens to disk.

Features:
  - Encrypt named secrets under .qmoi/ with a master key held in the OS keyring
  - Bootstrap and rotate secrets with an explicit confirm-write safety gate
  - Wrap git so that pushes and pulls use the stored GitHub token automatically

Usage:
  qmoi <command> [flags]

Available Commands:
  secrets    Manage encrypted named secrets
  git        Run git with stored credentials injected

Run 'qmoi help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewFigure("QMOI", "", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Run 'qmoi --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.SecretsCmd)
	rootCmd.AddCommand(cmd.GitCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
