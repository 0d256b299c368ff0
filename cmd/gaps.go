package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "List a learner's concept gaps, most urgent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		list, err := e.svc.Gaps(cmd.Context(), student)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No gaps. Every recorded concept is mastered.")
			return nil
		}

		fmt.Fprintf(out, "%-22s  %-26s  %-8s  %7s  %10s  %s\n",
			"Concept", "Name", "Priority", "Mastery", "Difficulty", "Last practiced")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, g := range list {
			last := "never"
			if !g.LastPracticed.IsZero() {
				last = g.LastPracticed.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(out, "%-22s  %-26s  %-8s  %7.0f  %10.0f  %s\n",
				truncate(g.ConceptID, 22), truncate(g.ConceptName, 26), g.Priority,
				g.MasteryScore, g.RecommendedDifficulty, last)
		}
		return nil
	},
}

func init() {
	gapsCmd.Flags().String("student", "", "Student ID (required)")
	_ = gapsCmd.MarkFlagRequired("student")
}
