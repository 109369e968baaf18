package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/qmoi-ai/qmoi/internal/workflows"

	"github.com/spf13/cobra"
)

var credentialName string

func init() {
	credentialCmd.Flags().StringVar(&credentialName, "name", "github", "name of the secret to resolve")
}

// credentialCmd speaks the git credential-helper protocol. It is invoked
// by the helper script that bootstrap --create-git-helper writes, not by
// operators directly, so it stays hidden from help output.
var credentialCmd = &cobra.Command{
	Use:    "credential",
	Short:  "Emit a stored credential in git credential-helper format",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Git writes key=value lines terminated by a blank line before
		// expecting a response; drain them.
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if scanner.Text() == "" {
				break
			}
		}

		result, err := workflows.Credential(cmd.Context(), workflows.CredentialOptions{
			Name: credentialName,
		})
		if err != nil {
			return err
		}

		// No credential: print nothing so git falls through to its other
		// helpers.
		if !result.Found {
			return nil
		}

		fmt.Printf("username=%s\n", result.Username)
		fmt.Printf("password=%s\n", result.Password)
		return nil
	},
}
