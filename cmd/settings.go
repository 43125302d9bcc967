package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/iksnae/talk-to-data/internal"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage model connection settings",
	Long:  `Show or update the stored model connection settings (API URL, key and model name).`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		settings, err := store.LoadSettings()
		if err != nil {
			return err
		}
		fmt.Printf("API base URL: %s\n", valueOrUnset(settings.APIBaseURL))
		fmt.Printf("API key:      %s\n", maskKey(settings.APIKey))
		fmt.Printf("Model:        %s\n", valueOrUnset(settings.ModelName))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the stored settings interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		settings, err := store.LoadSettings()
		if err != nil {
			return err
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		settings.APIBaseURL = prompt(reader, "API base URL", settings.APIBaseURL)
		settings.APIKey = prompt(reader, "API key", settings.APIKey)
		settings.ModelName = prompt(reader, "Model name", settings.ModelName)

		if err := store.SaveSettings(settings); err != nil {
			return err
		}
		fmt.Println("Settings saved.")
		return nil
	},
}

var settingsTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the stored model connection",
	Long:  `Validate the stored API URL and key against the model provider via the backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		settings, err := store.LoadSettings()
		if err != nil {
			return err
		}
		if settings.APIBaseURL == "" || settings.APIKey == "" {
			return fmt.Errorf("API base URL and key are required; run 'talk-to-data settings set' first")
		}

		backend := internal.NewHTTPBackend(serverURL)
		if err := backend.TestConnection(cmd.Context(), settings); err != nil {
			return err
		}
		fmt.Println("Connection OK. Settings are valid.")
		return nil
	},
}

func prompt(reader *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsTestCmd)
	rootCmd.AddCommand(settingsCmd)
}
