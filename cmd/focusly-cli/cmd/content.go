package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusly/internal/application"
	"focusly/internal/application/commands"
	"focusly/internal/domain"
)

var complexity int

var contentCmd = &cobra.Command{
	Use:   "content <id>",
	Short: "Fetch a node's deep content",
	Long: `Fetch the deep explanation of a node and print the node as a Markdown
note. Content is generated once per node; later calls print the stored
content whatever the complexity.

Examples:
  focusly-cli content 3f2a...
  focusly-cli content 3f2a... --complexity 80`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewFetchContentCommand(GetEngine(), args[0], complexity).Execute(cmd.Context())
		if err != nil {
			if application.IsRetryable(err) {
				return fmt.Errorf("%s: %w", application.UserMessage(err), err)
			}
			return err
		}
		fmt.Print(domain.NoteTemplate(result.Node))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.Flags().IntVar(&complexity, "complexity", application.DefaultComplexity, "depth of the explanation, 0-100")
}
