package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizagent/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <agent-id>",
	Short: "Take a quiz in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		diff, err := difficultyFlag(cmd)
		if err != nil {
			return err
		}

		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		ag, err := a.Agents.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		correct, earned, err := tui.Run(cmd.Context(), a.Quiz, tui.Options{
			AgentID:    ag.ID,
			AgentName:  ag.Name,
			Count:      count,
			Difficulty: diff,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%d of %d correct, %d xp earned\n", correct, count, earned)
		return nil
	},
}

func init() {
	playCmd.Flags().IntP("count", "n", 5, "Number of questions")
	playCmd.Flags().StringP("difficulty", "d", "", "beginner, intermediate or advanced")
}
