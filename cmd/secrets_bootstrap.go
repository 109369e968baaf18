package cmd

import (
	"strings"

	"github.com/qmoi-ai/qmoi/internal/configs"
	"github.com/qmoi-ai/qmoi/internal/masterkey"
	"github.com/qmoi-ai/qmoi/internal/ui"
	"github.com/qmoi-ai/qmoi/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	bootstrapToken        string
	bootstrapGitHubToken  string
	bootstrapStoreKeyring bool
	bootstrapGitHelper    bool
	bootstrapConfirm      bool
)

func init() {
	bootstrapCmd.Flags().StringVar(&bootstrapToken, "token", "", "ngrok auth token to encrypt")
	bootstrapCmd.Flags().StringVar(&bootstrapGitHubToken, "github-token", "", "GitHub personal access token to encrypt")
	bootstrapCmd.Flags().BoolVar(&bootstrapStoreKeyring, "store-keyring", false, "store the master key in the OS keyring if available")
	bootstrapCmd.Flags().BoolVar(&bootstrapGitHelper, "create-git-helper", false, "create a git credential helper that uses the encrypted GitHub token")
	bootstrapCmd.Flags().BoolVar(&bootstrapConfirm, "confirm-write", false, "explicitly confirm writing tokens to disk (safety flag)")
}

// resetBootstrapCommandState resets the bootstrap command's global state for testing.
func resetBootstrapCommandState() {
	bootstrapToken = ""
	bootstrapGitHubToken = ""
	bootstrapStoreKeyring = false
	bootstrapGitHelper = false
	bootstrapConfirm = false
	for _, name := range []string{"token", "github-token", "store-keyring", "create-git-helper", "confirm-write"} {
		bootstrapCmd.Flags().Lookup(name).Changed = false
	}
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Provision the master key and encrypt initial secrets",
	Long: `Generates a master key (or reuses an existing one) and encrypts the
provided tokens into the .qmoi secret store.

The master key protects every encrypted secret. Losing it makes all
encrypted secrets permanently unrecoverable, so persist it in the OS
keyring with --store-keyring or export QMOI_MASTER_KEY as instructed.

Tokens that look like GitHub personal access tokens are refused for
on-disk persistence unless --confirm-write is passed. This protects
against accidentally persisting a token pasted into an interactive
session.

Examples:
  # Bootstrap with an ngrok token, master key into the keyring
  qmoi secrets bootstrap --token 2abc... --store-keyring

  # Bootstrap a GitHub PAT and create the git credential helper
  qmoi secrets bootstrap --github-token ghp_... --confirm-write --create-git-helper`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting bootstrap command")
		spinner, cleanup := startSpinner("Bootstrapping secrets...", verbose)
		defer cleanup()

		// Ensure the workstation has an identity for audit entries.
		Logger.Debugf("Ensuring user config with workstation UUID")
		if _, err := configs.EnsureUserConfig(); err != nil {
			return Logger.ErrorfAndReturn("Failed to ensure user config: %v", err)
		}

		result, err := workflows.Bootstrap(cmd.Context(), workflows.BootstrapOptions{
			Token:           bootstrapToken,
			GitHubToken:     bootstrapGitHubToken,
			StoreKeyring:    bootstrapStoreKeyring,
			CreateGitHelper: bootstrapGitHelper,
			ConfirmWrite:    bootstrapConfirm,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("Bootstrap failed: %v", err)
		}

		var b strings.Builder

		switch result.KeySource {
		case "generated":
			b.WriteString(ui.Success.Sprint("✓") + " Generated a new master key\n")
		default:
			b.WriteString(ui.Success.Sprint("✓") + " Reusing master key from " + ui.Highlight.Sprint(result.KeySource) + "\n")
		}

		if result.KeyStoredInKeyring {
			b.WriteString(ui.Success.Sprint("✓") + " Stored master key in OS keyring " +
				ui.Muted.Sprintf("service: %s", masterkey.Service) + "\n")
		}
		if result.KeyringFailed {
			b.WriteString(ui.Warning.Sprint("⚠") + " No OS keyring backend available\n" +
				ui.Info.Sprint("→") + " Set the " + ui.Code.Sprint(masterkey.EnvVar) + " environment variable instead\n")
		}
		if result.MasterKeyExport != "" {
			b.WriteString(ui.Info.Sprint("→") + " Export this to your environment (the key is not persisted anywhere else):\n" +
				"    " + ui.Code.Sprintf("export %s=\"%s\"", masterkey.EnvVar, result.MasterKeyExport) + "\n")
		}

		b.WriteString(formatTokenOutcome("ngrok", bootstrapToken, result.NgrokPath, result.NgrokRefused))
		b.WriteString(formatTokenOutcome("GitHub", bootstrapGitHubToken, result.GitHubPath, result.GitHubRefused))

		if result.HelperPath != "" {
			b.WriteString(ui.Success.Sprint("✓") + " Created git credential helper at " + ui.Path.Sprint(result.HelperPath) + "\n" +
				ui.Info.Sprint("→") + " Configure git with: " + ui.Code.Sprintf("git config --global credential.helper '%s'", result.HelperPath) + "\n")
		}

		Logger.Infof("Bootstrap completed")
		spinner.FinalMSG = strings.TrimSuffix(b.String(), "\n")
		return nil
	},
}

// formatTokenOutcome renders the per-token result line: written, refused,
// or skipped because no token was provided.
func formatTokenOutcome(label, token, path string, refused bool) string {
	if token == "" {
		return ui.Muted.Sprintf("no %s token provided; skipping", label) + "\n"
	}
	if refused {
		return ui.Warning.Sprint("⚠") + " Refusing to write " + label + " token that looks like a personal access token\n" +
			ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--confirm-write") + " to override\n"
	}
	return ui.Success.Sprint("✓") + " Encrypted " + label + " token written to " + ui.Path.Sprint(path) + "\n"
}
