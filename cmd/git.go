package cmd

import (
	"os"

	"github.com/qmoi-ai/qmoi/internal/configs"
	"github.com/qmoi-ai/qmoi/internal/gitbridge"
	logger "github.com/qmoi-ai/qmoi/internal/logging"

	"github.com/spf13/cobra"
)

var GitLogger logger.Logger

// GitCmd wraps git so network subcommands pick up the stored GitHub
// token via the askpass protocol. Everything after "qmoi git" is handed
// to git untouched.
var GitCmd = &cobra.Command{
	Use:   "git [git-args...]",
	Short: "Run git with stored credentials injected",
	Long: `Runs git with the given arguments. For push, pull, and fetch, the
stored GitHub token (if any) is supplied through a transient askpass
helper; the helper is removed once git exits. Without a stored token,
git runs exactly as it would outside the wrapper.

Examples:
  qmoi git push origin main
  qmoi git status`,
	// Everything after "git" belongs to git, including flags.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		if err := configs.InitStoreSettings(); err != nil {
			return GitLogger.ErrorfAndReturn("Failed to resolve secret store: %v", err)
		}
		storeDir := configs.StoreQmoiSettings.StoreDir
		GitLogger.Debugf("Store directory: %s", storeDir)

		exitCode, err := gitbridge.Run(cmd.Context(), args, storeDir)
		if err != nil {
			return GitLogger.ErrorfAndReturn("Failed to run git: %v", err)
		}
		if exitCode != 0 {
			// Mirror git's exit code; its error output already went to stderr.
			os.Exit(exitCode)
		}
		return nil
	},
}
