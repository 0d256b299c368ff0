package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/screens/summary"
	"github.com/abhisek/learnpath/internal/vark"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and evolve a learner's VARK profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current learning-style profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		history, _ := cmd.Flags().GetInt("history")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		p, err := e.svc.Profile(ctx, student)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		out := cmd.OutOrStdout()
		printProfile(out, student, p)

		if history <= 0 {
			return nil
		}
		events, err := e.svc.ProfileHistory(ctx, student, history)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "\nNo profile changes recorded yet.")
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-19s  %-8s  %-12s  %5s  %5s  %s\n", "Timestamp", "Source", "Mode", "Gain", "Eng", "After (V/A/R/K)")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, ev := range events {
			a := ev.After.Rounded()
			fmt.Fprintf(out, "%-19s  %-8s  %-12s  %5.0f  %5.0f  %.0f/%.0f/%.0f/%.0f\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Source,
				ev.Event.Mode,
				ev.Event.MasteryGain,
				ev.Event.EngagementGain,
				a.Visual, a.Auditory, a.Reading, a.Kinesthetic,
			)
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Apply one learning event to the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		modeVal, _ := cmd.Flags().GetString("mode")
		masteryGain, _ := cmd.Flags().GetFloat64("mastery-gain")
		engagementGain, _ := cmd.Flags().GetFloat64("engagement-gain")

		mode, err := vark.ParseMode(modeVal)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.svc.ApplyLearningEvent(cmd.Context(), student, vark.Event{
			Mode:           mode,
			MasteryGain:    masteryGain,
			EngagementGain: engagementGain,
		})
		if err != nil {
			return fmt.Errorf("apply event: %w", err)
		}
		printProfile(cmd.OutOrStdout(), student, p)
		return nil
	},
}

var profileSurveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Take the learning-style survey and reset the profile from it",
	Long: `Take the 16-question learning-style survey. Without --answers the
questions are asked one at a time on stdin; blank input skips a question.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		preset, _ := cmd.Flags().GetStringToString("answers")

		answers := vark.Answers(preset)
		if len(answers) == 0 {
			var err error
			if answers, err = askSurvey(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
		}

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.svc.SetProfileFromSurvey(cmd.Context(), student, answers)
		if err != nil {
			return fmt.Errorf("score survey: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Answered %d of %d questions.\n", res.Answered, len(vark.SurveyQuestions()))
		fmt.Fprintf(out, "You are mostly %s, then %s.\n", res.DominantStyle, res.SecondaryStyle)
		fmt.Fprintln(out, res.Description)
		fmt.Fprintln(out)
		printProfile(out, student, res.Scores)
		return nil
	},
}

// askSurvey reads one answer per question from in.
func askSurvey(in io.Reader, out io.Writer) (vark.Answers, error) {
	scanner := bufio.NewScanner(in)
	answers := vark.Answers{}
	questions := vark.SurveyQuestions()

	for i, q := range questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i+1, len(questions))
		fmt.Fprintln(out, q.Text)
		for _, a := range q.Answers {
			fmt.Fprintf(out, "  %s) %s\n", a.ID, a.Text)
		}
		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		if v := strings.ToLower(strings.TrimSpace(scanner.Text())); v != "" {
			answers[q.ID] = v
		}
		fmt.Fprintln(out)
	}
	return answers, scanner.Err()
}

func printProfile(out io.Writer, student string, p vark.Profile) {
	primary, secondary := p.Dominant()
	fmt.Fprintf(out, "Learning style for %s: %s, then %s\n", student, primary.Title(), secondary.Title())
	fmt.Fprint(out, summary.ProfileBars(p, 50))
}

func init() {
	for _, c := range []*cobra.Command{profileShowCmd, profileUpdateCmd, profileSurveyCmd} {
		c.Flags().String("student", "", "Student ID (required)")
		_ = c.MarkFlagRequired("student")
	}
	profileShowCmd.Flags().Int("history", 0, "Also list this many recent profile changes")

	profileUpdateCmd.Flags().String("mode", "", "Learning mode used: visual, auditory, reading or kinesthetic (required)")
	profileUpdateCmd.Flags().Float64("mastery-gain", 0, "Mastery gained in the activity (0-100)")
	profileUpdateCmd.Flags().Float64("engagement-gain", 0, "Engagement shown in the activity (0-100)")
	_ = profileUpdateCmd.MarkFlagRequired("mode")

	profileSurveyCmd.Flags().StringToString("answers", nil, "Answers as question=answer pairs, e.g. q1=a,q2=c")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profileSurveyCmd)
}
