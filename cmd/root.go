package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/talk-to-data/internal"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	dataPath  string
	serverURL string
	version   string = "dev"
	commit    string = "unknown"
	date      string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "talk-to-data",
	Short: "Conversational data analysis from your terminal",
	Long: `A CLI client for the Talk to Data analysis agent.

talk-to-data streams a multi-step analysis (thoughts, tool calls,
observations, summary, evaluation) from a local backend, keeps the
transcript in durable multi-turn sessions, and can replay or export any
stored session later.

Quick Start:
  talk-to-data settings set              # Configure model connection
  talk-to-data run "task" data.csv       # Start a new analysis
  talk-to-data list                      # List stored sessions
  talk-to-data show <session-id>         # Replay a session
  talk-to-data export <session-id>       # Export a Markdown report`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Custom session database location")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:5001", "Backend server URL")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// openStore opens the session store at the configured (or default)
// location, creating the directory on first use.
func openStore() (*internal.Store, error) {
	path := dataPath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir := filepath.Join(homeDir, ".talk-to-data")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		path = filepath.Join(dir, "talk-to-data.db")
	}
	db, err := internal.OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	return internal.NewStore(db)
}

// newController wires a controller over the store with the HTTP backend
// and a terminal sink.
func newController(store *internal.Store) *internal.Controller {
	backend := internal.NewHTTPBackend(serverURL)
	sink := internal.NewTerminalSink(os.Stdout)
	return internal.NewController(store, backend, sink)
}
