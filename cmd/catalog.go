package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the concept catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List concepts with their content and question bank sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			cfg, err := config.FromEnv()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path = cfg.CatalogPath
		}
		cat, err := catalog.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		templates := cat.Templates()
		review := cat.ReviewGap()

		fmt.Fprintf(out, "%-22s  %-26s  %-10s  %7s  %9s  %s\n",
			"ID", "Name", "Strand", "Content", "Questions", "Prerequisites")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, c := range cat.Concepts() {
			id := c.ID
			if id == review.ConceptID {
				id += "*"
			}
			fmt.Fprintf(out, "%-22s  %-26s  %-10s  %7d  %9d  %s\n",
				truncate(id, 22), truncate(c.Name, 26), c.Strand,
				len(cat.Content(c.ID)), len(templates[c.ID]), strings.Join(c.Prerequisites, ", "))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "* review concept for learners with no gaps")
		return nil
	},
}

func init() {
	catalogListCmd.Flags().String("file", "", "Catalog YAML file (defaults to LEARNPATH_CATALOG, then the built-in catalog)")
	catalogCmd.AddCommand(catalogListCmd)
}
