package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"focusly/internal/application/commands"
	"focusly/internal/domain"
)

var (
	signalOnly bool
	asTree     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List roadmap nodes",
	Long: `List the nodes of the roadmap in collection order, or as an
indented tree with --tree.

Examples:
  focusly-cli list
  focusly-cli list --tree --signal-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := commands.NewListNodesCommand(GetEngine(), signalOnly)

		if asTree {
			entries, err := list.Tree(cmd.Context())
			if err != nil {
				return err
			}
			printEntries(entries)
			return nil
		}

		nodes, err := list.Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, n := range nodes {
			fmt.Println(formatNode(n))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one node as a Markdown note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewShowNodeCommand(GetEngine(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(domain.NoteTemplate(result.Node))
		if len(result.Children) > 0 {
			fmt.Println("\n## Children")
			fmt.Println()
			for _, c := range result.Children {
				fmt.Println(formatNode(c))
			}
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search node titles, descriptions and queries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := commands.NewSearchCommand(GetEngine(), strings.Join(args, " ")).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, r := range results {
			fmt.Println(formatNode(r.Node))
		}
		return nil
	},
}

func printEntries(entries []commands.TreeEntry) {
	for _, e := range entries {
		fmt.Printf("%s%s\n", strings.Repeat("  ", e.Level), formatNode(e.Node))
	}
}

func formatNode(n *domain.LearningNode) string {
	mark := " "
	switch n.Status {
	case domain.StatusMastered:
		mark = "x"
	case domain.StatusInProgress:
		mark = "~"
	case domain.StatusLocked:
		mark = "#"
	}
	line := fmt.Sprintf("[%s] %s  %s (%s, difficulty %d)", mark, n.ID, n.Title, n.Type, n.DifficultyLevel)
	if n.PomodorosSpent > 0 {
		line += fmt.Sprintf(" %d pomodoros", n.PomodorosSpent)
	}
	return line
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
	listCmd.Flags().BoolVarP(&signalOnly, "signal-only", "s", false, "hide noise nodes")
	listCmd.Flags().BoolVarP(&asTree, "tree", "t", false, "print as an indented tree")
}
