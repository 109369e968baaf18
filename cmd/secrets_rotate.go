package cmd

import (
	"github.com/qmoi-ai/qmoi/internal/configs"
	"github.com/qmoi-ai/qmoi/internal/masterkey"
	"github.com/qmoi-ai/qmoi/internal/ui"
	"github.com/qmoi-ai/qmoi/internal/utils"
	"github.com/qmoi-ai/qmoi/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	rotateName         string
	rotateToken        string
	rotateStoreKeyring bool
	rotateConfirm      bool
)

func init() {
	rotateCmd.Flags().StringVar(&rotateName, "name", "", "name of the secret (e.g., github, ngrok)")
	rotateCmd.Flags().StringVar(&rotateToken, "token", "", "new token value")
	rotateCmd.Flags().BoolVar(&rotateStoreKeyring, "store-keyring", false, "store an auto-provisioned master key in the OS keyring")
	rotateCmd.Flags().BoolVar(&rotateConfirm, "confirm-write", false, "explicitly confirm writing the token to disk (safety flag)")
	_ = rotateCmd.MarkFlagRequired("name")
	_ = rotateCmd.MarkFlagRequired("token")
}

// resetRotateCommandState resets the rotate command's global state for testing.
func resetRotateCommandState() {
	rotateName = ""
	rotateToken = ""
	rotateStoreKeyring = false
	rotateConfirm = false
	// Changed persists across Execute calls and drives required-flag checks.
	for _, name := range []string{"name", "token", "store-keyring", "confirm-write"} {
		rotateCmd.Flags().Lookup(name).Changed = false
	}
}

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate an encrypted named secret",
	Long: `Overwrites the encrypted file for a named secret with a newly
encrypted token.

If no master key exists yet, one is auto-provisioned and you are told
exactly how to persist it. Rotations of the same name must not run
concurrently; the store does no locking.

Examples:
  # Rotate the github token
  qmoi secrets rotate --name github --token ghp_... --confirm-write

  # Rotate the ngrok token, storing a new master key in the keyring if needed
  qmoi secrets rotate --name ngrok --token 2abc... --store-keyring`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rotate command")
		Logger.Debugf("Rotating %s with token %s", rotateName, utils.RedactToken(rotateToken))
		spinner, cleanup := startSpinner("Rotating secret...", verbose)
		defer cleanup()

		Logger.Debugf("Ensuring user config with workstation UUID")
		if _, err := configs.EnsureUserConfig(); err != nil {
			return Logger.ErrorfAndReturn("Failed to ensure user config: %v", err)
		}

		result, err := workflows.Rotate(cmd.Context(), workflows.RotateOptions{
			Name:         rotateName,
			Token:        rotateToken,
			StoreKeyring: rotateStoreKeyring,
			ConfirmWrite: rotateConfirm,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("Rotate failed: %v", err)
		}

		if result.Refused {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Refusing to write a token that looks like a personal access token\n" +
				ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--confirm-write") + " to override"
			return nil
		}

		finalMessage := ""
		if result.KeyGenerated {
			finalMessage += ui.Warning.Sprint("⚠") + " No master key was present; a new one was generated\n"
			if result.KeyStoredInKeyring {
				finalMessage += ui.Success.Sprint("✓") + " Stored new master key in OS keyring " +
					ui.Muted.Sprintf("service: %s", masterkey.Service) + "\n"
			} else {
				finalMessage += ui.Info.Sprint("→") + " Persist it before relying on the rotated secret:\n" +
					"    " + ui.Code.Sprintf("export %s=\"%s\"", masterkey.EnvVar, result.MasterKeyExport) + "\n"
			}
		}

		Logger.Infof("Secret rotation completed successfully")

		finalMessage += ui.Success.Sprint("✓") + " Rotated secret " + ui.Highlight.Sprint(rotateName) +
			"; written to " + ui.Path.Sprint(result.Path)
		spinner.FinalMSG = finalMessage
		return nil
	},
}
