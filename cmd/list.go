package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Long:  `List all stored analysis sessions, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		sessions := store.List()
		if len(sessions) == 0 {
			fmt.Println("No sessions found. Start one with 'talk-to-data run'.")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Sessions (%d)", len(sessions))))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, sess := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				idStyle.Render(sess.ID),
				truncateTask(sess.Task, 48),
				countStyle.Render(fmt.Sprintf("%d events", len(sess.History))),
				dateStyle.Render(sess.CreatedAt.Format("2006-01-02 15:04")),
			)
		}
		return w.Flush()
	},
}

func truncateTask(task string, max int) string {
	runes := []rune(task)
	if len(runes) <= max {
		return task
	}
	return string(runes[:max-1]) + "…"
}

func init() {
	rootCmd.AddCommand(listCmd)
}
