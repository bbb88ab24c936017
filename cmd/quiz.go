package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizagent/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate <agent-id>",
	Short: "Generate quiz questions for an agent",
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

		questions, err := a.Quiz.GenerateQuestions(cmd.Context(), args[0], count, diff)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(questions)
		}
		for i, q := range questions {
			fmt.Printf("%d. [%s, %d xp] %s\n", i+1, q.Difficulty, q.Reward, q.Text)
			for j, opt := range q.Options {
				marker := " "
				if q.CorrectIndex != nil && *q.CorrectIndex == j {
					marker = "*"
				}
				fmt.Printf("   %s %c) %s\n", marker, 'a'+j, opt)
			}
			if q.Explanation != "" {
				fmt.Printf("   %s\n", q.Explanation)
			}
			fmt.Println()
		}
		return nil
	},
}

var gradeCmd = &cobra.Command{
	Use:   "grade <agent-id>",
	Short: "Grade a free-text answer against an agent's knowledge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		answer, _ := cmd.Flags().GetString("answer")
		diff, err := difficultyFlag(cmd)
		if err != nil {
			return err
		}

		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		res, err := a.Quiz.ValidateAnswer(cmd.Context(), quiz.AnswerInput{
			AgentID:      args[0],
			QuestionText: question,
			UserAnswer:   answer,
			Difficulty:   diff,
		})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

func difficultyFlag(cmd *cobra.Command) (quiz.Difficulty, error) {
	s, _ := cmd.Flags().GetString("difficulty")
	if s == "" {
		return "", nil
	}
	return quiz.ParseDifficulty(s)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	generateCmd.Flags().IntP("count", "n", 5, "Number of questions")
	generateCmd.Flags().StringP("difficulty", "d", "", "beginner, intermediate or advanced")
	generateCmd.Flags().Bool("json", false, "Print questions as JSON")

	gradeCmd.Flags().StringP("question", "q", "", "Question text")
	gradeCmd.Flags().StringP("answer", "a", "", "Learner answer")
	gradeCmd.Flags().StringP("difficulty", "d", "", "beginner, intermediate or advanced")
	gradeCmd.MarkFlagRequired("question")
	gradeCmd.MarkFlagRequired("answer")
}
