package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"focusly/internal/adapters/jsonstate"
	"focusly/internal/adapters/markdown"
	"focusly/internal/application"
)

var markdownDir string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the roadmap as JSON or Markdown notes",
	Long: `Export the roadmap, stats and topic as a JSON snapshot, to a file or to
stdout. With --markdown, write one note per node into a directory tree
mirroring the roadmap instead.

Examples:
  focusly-cli export backup.json
  focusly-cli export --markdown ~/notes/focusly`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := GetEngine()

		if cmd.Flags().Changed("markdown") {
			dir := markdownDir
			if dir == "" {
				dir = rt.Config.Export.Dir
			}
			exporter := markdown.NewExporter(dir)
			paths, err := exporter.Export(engine.Nodes(application.NodeFilter{}))
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d notes to %s\n", len(paths), exporter.Root())
			return nil
		}

		snap := engine.Export()
		if len(args) == 0 {
			return jsonstate.Encode(os.Stdout, snap)
		}
		if err := jsonstate.WriteFile(args[0], snap); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d nodes to %s\n", len(snap.Nodes), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the state with a JSON snapshot",
	Long: `Replace the roadmap, stats and topic with a JSON snapshot written by
export. Legacy snapshots with flat content fields are upgraded.

Warning: the current state is overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := jsonstate.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := GetEngine().Import(cmd.Context(), snap); err != nil {
			return fmt.Errorf("failed to import %s: %w", args[0], err)
		}
		fmt.Printf("Imported %d nodes\n", len(snap.Nodes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	exportCmd.Flags().StringVarP(&markdownDir, "markdown", "m", "", "write Markdown notes into this directory (default export.dir)")
}
