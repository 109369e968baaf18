package cmd

import (
	"strings"

	"github.com/qmoi-ai/qmoi/internal/masterkey"
	"github.com/qmoi-ai/qmoi/internal/ui"
	"github.com/qmoi-ai/qmoi/internal/workflows"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the secret store and master key",
	Long: `Reports where the master key resolves from, which encrypted secrets
exist in the store, and whether each one can actually be decrypted with
the current key. Nothing is modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")
		spinner, cleanup := startSpinner("Inspecting secret store...", verbose)
		defer cleanup()

		result, err := workflows.Status(cmd.Context(), workflows.StatusOptions{})
		if err != nil {
			return Logger.ErrorfAndReturn("Status failed: %v", err)
		}

		var b strings.Builder

		switch result.KeySource {
		case "none":
			b.WriteString(ui.Error.Sprint("✗") + " No master key resolvable\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("qmoi secrets bootstrap") + " or set " + ui.Code.Sprint(masterkey.EnvVar) + "\n")
		default:
			b.WriteString(ui.Success.Sprint("✓") + " Master key resolves from " + ui.Highlight.Sprint(result.KeySource) + "\n")
		}

		if !result.StoreExists {
			b.WriteString(ui.Muted.Sprintf("store %s does not exist yet", result.StoreDir) + "\n")
		} else {
			b.WriteString(ui.Info.Sprint("→") + " Store: " + ui.Path.Sprint(result.StoreDir) + "\n")
		}

		if len(result.Secrets) == 0 {
			b.WriteString(ui.Muted.Sprint("no encrypted secrets found") + "\n")
		}
		for _, s := range result.Secrets {
			glyph := ui.Success.Sprint("✓")
			note := ""
			if !s.Decryptable {
				glyph = ui.Error.Sprint("✗")
				note = " " + ui.Muted.Sprint("not decryptable with current key")
			}
			if s.EnvFallback {
				note += " " + ui.Muted.Sprint("env fallback set")
			}
			b.WriteString("  " + glyph + " " + ui.Highlight.Sprint(s.Name) + " " + ui.Path.Sprint(s.Path) + note + "\n")
		}

		spinner.FinalMSG = strings.TrimSuffix(b.String(), "\n")
		return nil
	},
}
