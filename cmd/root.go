package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizagent/internal/app"
	"github.com/abhisek/quizagent/internal/logging"
	"github.com/abhisek/quizagent/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizagent",
	Short: "Quiz generation and answer grading over knowledge agents",
	Long: "quizagent turns uploaded documents into knowledge agents, generates quizzes " +
		"from them and grades learner answers with a language model.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		cfg := logging.ConfigFromEnv()
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Level = lvl
		}
		log, err := logging.New(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logging.IntoContext(ctx, log))
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZAGENT_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides QUIZAGENT_LOG_LEVEL env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZAGENT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openApp opens storage and services for cmd. The caller closes the App.
func openApp(cmd *cobra.Command, requireModel bool) (*app.App, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	return app.Open(cmd.Context(), app.Options{
		DBPath:       dbPath,
		RequireModel: requireModel,
		Log:          logger(cmd),
	})
}

func logger(cmd *cobra.Command) logrus.FieldLogger {
	return logging.FromContext(cmd.Context())
}
