package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusly/internal/application/commands"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewStatsCommand(GetEngine()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		s, sum := result.Stats, result.Summary
		if result.Topic != "" {
			fmt.Printf("Topic:           %s\n", result.Topic)
		}
		fmt.Printf("Daily streak:    %d\n", s.DailyStreak)
		fmt.Printf("Nodes mastered:  %d\n", s.TotalNodesMastered)
		fmt.Printf("Focus hours:     %.2f\n", s.TotalFocusHours)
		fmt.Printf("Roadmap:         %d nodes (%d signal, %d noise)\n", sum.Total, sum.Signal, sum.Noise)
		fmt.Printf("Progress:        %d mastered, %d in progress, %d locked\n", sum.Mastered, sum.InProgress, sum.Locked)
		fmt.Printf("Pomodoros:       %d\n", sum.PomodorosSpent)

		if len(s.MasteryHistory) > 0 {
			fmt.Println("\nMastery history:")
			for _, h := range s.MasteryHistory {
				fmt.Printf("  %s  %d\n", h.Date, h.Count)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
