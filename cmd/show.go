package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Replay a stored session",
	Long: `Replay a stored session's transcript in its original order, exactly
as it was rendered while streaming.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		controller := newController(store)
		return controller.SelectSession(args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
