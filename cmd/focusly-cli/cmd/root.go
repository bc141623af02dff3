package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"focusly/internal/application"
	"focusly/internal/bootstrap"
)

var (
	configPath string
	dataPath   string
	rt         *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "focusly-cli",
	Short: "CLI for focusly learning roadmaps",
	Long: `focusly-cli is a command-line interface for focusly roadmaps.

It generates and drills into roadmaps, tracks mastery, fetches deep
content, runs focus sessions and exports notes, sharing state with the
focusly TUI and MCP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		opened, err := bootstrap.Open(cmd.Context(), bootstrap.Overrides{
			ConfigPath: configPath,
			DataPath:   dataPath,
		})
		if err != nil {
			return err
		}
		rt = opened
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		return rt.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "path to the state database")
}

// GetEngine returns the initialized engine
func GetEngine() *application.Engine {
	return rt.Engine
}
