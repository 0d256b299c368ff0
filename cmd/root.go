package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "learnpath",
	Short: "Adaptive personalization engine for learners",
	Long: `learnpath scores mastery and engagement, evolves each learner's VARK
profile, ranks learning content, finds concept gaps and runs adaptive
practice sessions. Use "serve" for the HTTP API or the subcommands for
local work against the same database.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEARNPATH_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(gapsCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEARNPATH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
