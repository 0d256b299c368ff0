package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/app"
	pq "github.com/abhisek/learnpath/internal/practice"
	practicescreen "github.com/abhisek/learnpath/internal/screens/practice"
	"github.com/abhisek/learnpath/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run adaptive practice sessions",
}

var practiceStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Open a practice session targeting the learner's gaps",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		sess, err := e.svc.StartPractice(cmd.Context(), student, practiceConfig(cmd, e.cfg.Practice))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Session %s: %s, %d questions\n\n", sess.ID, sess.ConceptName, len(sess.Questions))
		for i, q := range sess.Questions {
			printQuestion(out, i+1, q)
		}
		fmt.Fprintf(out, "Answer with: learnpath practice answer %s <question #> <answer>\n", sess.ID)
		return nil
	},
}

var practiceAnswerCmd = &cobra.Command{
	Use:   "answer <session-id> <question> <answer...>",
	Short: "Submit an answer; question is an ID or a 1-based position",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		sess, err := e.svc.Session(ctx, args[0])
		if err != nil {
			return err
		}
		questionID := resolveQuestion(sess, args[1])

		res, err := e.svc.SubmitAnswer(ctx, sess.ID, questionID, strings.Join(args[2:], " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", res.CorrectAnswer)
		}
		if res.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", res.Explanation)
		}
		fmt.Fprintf(out, "%d question(s) left.\n", res.Remaining)
		return nil
	},
}

var practiceFinishCmd = &cobra.Command{
	Use:   "finish <session-id>",
	Short: "Close a session and apply its results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.svc.FinishPractice(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printEvaluation(cmd.OutOrStdout(), ev)
		return nil
	},
}

var practiceRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Practice interactively in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		screen := practicescreen.New(cmd.Context(), e.svc, student, practiceConfig(cmd, e.cfg.Practice))
		return app.Run(screen, student)
	},
}

// practiceConfig overlays the changed practice flags on base.
func practiceConfig(cmd *cobra.Command, base pq.Config) pq.Config {
	f := cmd.Flags()
	if f.Changed("concepts") {
		base.TargetConceptCount, _ = f.GetInt("concepts")
	}
	if f.Changed("questions") {
		base.QuestionsPerConcept, _ = f.GetInt("questions")
	}
	if f.Changed("buffer") {
		base.DifficultyBuffer, _ = f.GetFloat64("buffer")
	}
	if noReview, _ := f.GetBool("no-review"); noReview {
		base.IncludeSpacedRepetition = false
	}
	return base
}

func resolveQuestion(sess *session.Session, arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(sess.Questions) {
		return sess.Questions[n-1].ID
	}
	return arg
}

func printQuestion(out io.Writer, n int, q pq.Question) {
	tag := ""
	if q.Review {
		tag = ", review"
	}
	fmt.Fprintf(out, "── %d. %s (%s, %s, difficulty %.0f%s) ──\n",
		n, q.ConceptName, q.Mode.Title(), q.Type, q.Difficulty, tag)
	fmt.Fprintln(out, q.Text)
	for j, o := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", j+1, o)
	}
	fmt.Fprintf(out, "  id: %s\n\n", q.ID)
}

func printEvaluation(out io.Writer, ev session.Evaluation) {
	if ev.Score != nil {
		fmt.Fprintf(out, "Score: %d%%   mastery %+d\n", *ev.Score, ev.MasteryChange)
	} else {
		fmt.Fprintln(out, "Score: -")
	}
	for _, r := range ev.Recommendations {
		fmt.Fprintf(out, "  • %s\n", r)
	}
	if next := ev.NextPractice; next != nil {
		fmt.Fprintf(out, "Next up: %s (%s, difficulty %.0f)\n", next.ConceptName, next.Priority, next.RecommendedDifficulty)
	}
}

func init() {
	for _, c := range []*cobra.Command{practiceStartCmd, practiceRunCmd} {
		c.Flags().String("student", "", "Student ID (required)")
		c.Flags().Int("concepts", 0, "Number of gaps to target (default from config)")
		c.Flags().Int("questions", 0, "Questions per targeted gap (default from config)")
		c.Flags().Float64("buffer", 0, "Allowed template difficulty above the recommendation")
		c.Flags().Bool("no-review", false, "Skip the spaced-repetition review question")
		_ = c.MarkFlagRequired("student")
	}

	practiceCmd.AddCommand(practiceStartCmd)
	practiceCmd.AddCommand(practiceAnswerCmd)
	practiceCmd.AddCommand(practiceFinishCmd)
	practiceCmd.AddCommand(practiceRunCmd)
}
