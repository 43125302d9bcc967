package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/talk-to-data/internal"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <task> <file>...",
	Short: "Start a new analysis session",
	Long: `Start a new analysis session: upload one or more data files with a
task description, then stream the agent's analysis into a new durable
session. The session can be continued, replayed or exported later.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		task := args[0]

		var files []internal.UploadFile
		for _, path := range args[1:] {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read data file %s: %w", path, err)
			}
			files = append(files, internal.UploadFile{
				Name: filepath.Base(path),
				Data: data,
			})
		}

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
		if err := controller.StartNewAnalysis(cmd.Context(), task, files, settings); err != nil {
			return err
		}
		fmt.Printf("\nSession %s saved.\n", controller.ActiveSession())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
