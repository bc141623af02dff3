package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"focusly/internal/application/commands"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate or clear the roadmap",
}

var roadmapCreateCmd = &cobra.Command{
	Use:   "create <topic>",
	Short: "Generate a roadmap for a topic",
	Long: `Generate the core concepts of a topic, replacing the current roadmap.
Stats are kept.

Example:
  focusly-cli roadmap create "Distributed systems"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		result, err := commands.NewCreateRoadmapCommand(GetEngine(), topic).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		printEntries(commands.BuildTree(result.Nodes))
		return nil
	},
}

var roadmapClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every node",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewClearRoadmapCommand(GetEngine()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roadmapCmd)
	roadmapCmd.AddCommand(roadmapCreateCmd)
	roadmapCmd.AddCommand(roadmapClearCmd)
}
