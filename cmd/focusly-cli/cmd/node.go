package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"focusly/internal/application/commands"
	"focusly/internal/domain"
)

var addNoise bool

var drillCmd = &cobra.Command{
	Use:   "drill <id>",
	Short: "Generate sub-concepts under a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDrillDownCommand(GetEngine(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		for _, c := range result.Children {
			fmt.Println("  " + formatNode(c))
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a node by hand at the top of the roadmap",
	Long: `Add a node by hand. It is unlocked and placed first.

Examples:
  focusly-cli add "Vector clocks"
  focusly-cli add "Paxos history" --noise`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodeType := domain.NodeTypeSignal
		if addNoise {
			nodeType = domain.NodeTypeNoise
		}
		result, err := commands.NewAddNodeCommand(GetEngine(), strings.Join(args, " "), string(nodeType)).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		fmt.Println(result.Node.ID)
		return nil
	},
}

var toggleTypeCmd = &cobra.Command{
	Use:   "toggle-type <id>",
	Short: "Flip a node between signal and noise",
	Args:  cobra.ExactArgs(1),
	RunE: nodeAction(func(ctx context.Context, id string) (string, error) {
		r, err := commands.NewToggleTypeCommand(GetEngine(), id).Execute(ctx)
		if err != nil {
			return "", err
		}
		return r.Message, nil
	}),
}

var masterCmd = &cobra.Command{
	Use:   "master <id>",
	Short: "Toggle a node's mastered status",
	Args:  cobra.ExactArgs(1),
	RunE: nodeAction(func(ctx context.Context, id string) (string, error) {
		r, err := commands.NewToggleMasteryCommand(GetEngine(), id).Execute(ctx)
		if err != nil {
			return "", err
		}
		return r.Message, nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a node",
	Long: `Delete a node from the roadmap.

Warning: This operation cannot be undone. Children of the node stay on
the roadmap and are listed at the top level.`,
	Args: cobra.ExactArgs(1),
	RunE: nodeAction(func(ctx context.Context, id string) (string, error) {
		r, err := commands.NewDeleteNodeCommand(GetEngine(), id).Execute(ctx)
		if err != nil {
			return "", err
		}
		return r.Message, nil
	}),
}

// nodeAction adapts a single-node command to cobra
func nodeAction(fn func(ctx context.Context, id string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		msg, err := fn(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	}
}

func init() {
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(toggleTypeCmd)
	rootCmd.AddCommand(masterCmd)
	rootCmd.AddCommand(deleteCmd)
	addCmd.Flags().BoolVarP(&addNoise, "noise", "n", false, "mark the node as noise")
}
