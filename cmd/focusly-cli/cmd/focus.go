package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"focusly/internal/adapters/tui"
	"focusly/internal/application/commands"
)

var focusCmd = &cobra.Command{
	Use:   "focus <id>",
	Short: "Run a Pomodoro focus session on a node",
	Long: `Run the focus timer for a node in the terminal. A completed session
credits a pomodoro to the node. Press esc to leave.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate before taking over the terminal
		if _, err := commands.NewShowNodeCommand(GetEngine(), args[0]).Execute(cmd.Context()); err != nil {
			return err
		}

		app := tui.NewApp(GetEngine(), tui.WithFocus(args[0]), tui.WithLogger(rt.Logger))
		defer app.Close()

		_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(focusCmd)
}
