package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/spigell/rolecolor/internal/secrets"
)

const (
	keyringService    = app
	keyringGeminiUser = "gemini-api-key"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Save the Gemini API key to the OS keychain",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		key, err := askSecret("Gemini API key")
		if err != nil {
			log.Fatalf("reading api key: %s", err)
		}

		if err := secrets.Store(keyringService, keyringGeminiUser, key); err != nil {
			log.Fatalf("storing api key: %s", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Gemini API key saved to OS keychain")
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func askSecret(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Mask:  '*',
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("value must not be empty")
			}
			return nil
		},
	}
	return p.Run()
}
