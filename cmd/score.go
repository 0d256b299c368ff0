package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/engagement"
	"github.com/abhisek/learnpath/internal/mastery"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute mastery and engagement scores",
}

var scoreMasteryCmd = &cobra.Command{
	Use:   "mastery",
	Short: "Score mastery of one concept from its signals",
	Long: `Score mastery of one concept. With --student and --concept the score
is also stored and becomes part of the learner's mastery history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := mastery.Inputs{}
		in.AssessmentScore, _ = cmd.Flags().GetFloat64("assessment")
		in.PracticeAccuracy, _ = cmd.Flags().GetFloat64("practice")
		in.AIHelpEffectiveness, _ = cmd.Flags().GetFloat64("ai-help")
		in.EngagementConsistency, _ = cmd.Flags().GetFloat64("consistency")

		student, _ := cmd.Flags().GetString("student")
		concept, _ := cmd.Flags().GetString("concept")
		out := cmd.OutOrStdout()

		if student == "" || concept == "" {
			score := mastery.Score(in)
			fmt.Fprintf(out, "Mastery: %d (%s)\n", score, mastery.BandFor(score))
			return nil
		}

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = e.catalog.ConceptName(concept)
		}
		rec, err := e.svc.RecordMastery(cmd.Context(), student, concept, name, in)
		if err != nil {
			return fmt.Errorf("record mastery: %w", err)
		}
		fmt.Fprintf(out, "Mastery: %d (%s)\n", rec.Score, mastery.BandFor(rec.Score))
		fmt.Fprintf(out, "Recorded for %s on %s\n", student, rec.ConceptName)
		return nil
	},
}

var scoreEngagementCmd = &cobra.Command{
	Use:   "engagement",
	Short: "Score engagement from usage telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := engagement.Inputs{}
		in.LoginFrequency, _ = cmd.Flags().GetFloat64("login")
		in.ContentInteraction, _ = cmd.Flags().GetFloat64("content")
		in.AIUsage, _ = cmd.Flags().GetFloat64("ai-usage")
		in.ProjectParticipation, _ = cmd.Flags().GetFloat64("projects")
		in.ConsistencyScore, _ = cmd.Flags().GetFloat64("consistency")

		student, _ := cmd.Flags().GetString("student")
		out := cmd.OutOrStdout()

		res := engagement.Score(in)
		if student != "" {
			e, err := openEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer e.Close()
			if res, err = e.svc.RecordEngagement(cmd.Context(), student, in); err != nil {
				return fmt.Errorf("record engagement: %w", err)
			}
		}

		fmt.Fprintf(out, "Engagement: %d (%s, %s)\n", res.Score, res.Level, engagement.Label(res.Score))
		return nil
	},
}

func init() {
	f := scoreMasteryCmd.Flags()
	f.Float64("assessment", 0, "Assessment score (0-100)")
	f.Float64("practice", 0, "Practice accuracy (0-100)")
	f.Float64("ai-help", 0, "AI help effectiveness (0-100)")
	f.Float64("consistency", 0, "Engagement consistency (0-100)")
	f.String("student", "", "Store the score for this student")
	f.String("concept", "", "Concept ID the score belongs to")
	f.String("name", "", "Concept display name (defaults to the catalog name)")

	f = scoreEngagementCmd.Flags()
	f.Float64("login", 0, "Login frequency (0-100)")
	f.Float64("content", 0, "Content interaction (0-100)")
	f.Float64("ai-usage", 0, "AI usage (0-100)")
	f.Float64("projects", 0, "Project participation (0-100)")
	f.Float64("consistency", 0, "Consistency score (0-100)")
	f.String("student", "", "Store the score for this student")

	scoreCmd.AddCommand(scoreMasteryCmd)
	scoreCmd.AddCommand(scoreEngagementCmd)
}
