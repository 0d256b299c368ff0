package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/recommend"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Rank catalog content for a learner on one concept",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		concept, _ := cmd.Flags().GetString("concept")
		limit, _ := cmd.Flags().GetInt("limit")
		seen, _ := cmd.Flags().GetString("seen")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if seen != "" {
			if err := e.svc.MarkSeen(ctx, student, seen); err != nil {
				return err
			}
			fmt.Fprintf(out, "Marked %s as seen.\n\n", seen)
		}

		ranked, err := e.svc.Feed(ctx, student, concept, nil)
		if err != nil {
			return fmt.Errorf("rank content: %w", err)
		}
		ranked = recommend.Top(ranked, limit)
		if len(ranked) == 0 {
			fmt.Fprintf(out, "No content available for %s.\n", concept)
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-5s  %-12s  %-4s  %-5s  %s\n", "#", "Score", "Mode", "Diff", "Seen", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for i, r := range ranked {
			title := r.Title
			if title == "" {
				title = r.ID
			}
			fmt.Fprintf(out, "%-4d  %-5d  %-12s  %-4.0f  %-5s  %s\n",
				i+1, r.Score, r.Mode.Title(), r.Difficulty, seenLabel(r.LastSeenDaysAgo), truncate(title, 40))
		}
		return nil
	},
}

func seenLabel(days int) string {
	if days >= recommend.FreshnessWindowDays {
		return "-"
	}
	return fmt.Sprintf("%dd", days)
}

func init() {
	feedCmd.Flags().String("student", "", "Student ID (required)")
	feedCmd.Flags().String("concept", "", "Concept ID (required)")
	feedCmd.Flags().IntP("limit", "n", 10, "Number of items to show")
	feedCmd.Flags().String("seen", "", "Mark this content ID as seen before ranking")
	_ = feedCmd.MarkFlagRequired("student")
	_ = feedCmd.MarkFlagRequired("concept")
}
