package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var continueCmd = &cobra.Command{
	Use:   "continue <session-id> <task>",
	Short: "Continue a stored session with a follow-up task",
	Long: `Continue a stored session: replay its transcript, then stream the
agent's response to a follow-up task into the same session.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, task := args[0], args[1]

		store, err := openStore()
		if err != nil {
			return err
		}
		settings, err := store.LoadSettings()
		if err != nil {
			return err
		}
		if settings.APIBaseURL == "" || settings.APIKey == "" || settings.ModelName == "" {
			return fmt.Errorf("model settings are incomplete; run 'talk-to-data settings set' first")
		}

		controller := newController(store)
		if err := controller.SelectSession(id); err != nil {
			return err
		}
		return controller.ContinueChat(cmd.Context(), task, settings)
	},
}

func init() {
	rootCmd.AddCommand(continueCmd)
}
