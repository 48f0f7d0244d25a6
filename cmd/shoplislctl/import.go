package main

import (
	"fmt"

	"github.com/dukerupert/shoplisl/internal/model"
	"github.com/spf13/cobra"
)

var importArticlesCmd = &cobra.Command{
	Use:   "import-articles <file.yaml>",
	Short: "Add articles to the catalog from a YAML file",
	Long: `Add articles to the catalog. Names that already exist, compared after
trimming, Unicode composition and lower-casing, are skipped.

The file holds a list of articles:
  - name: Vollmilch
    amount: 1 l
    departmentId: dairy-products
  - name: Bananen
    icon: 🍌

Examples:
  shoplislctl import-articles catalog.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runImportArticles,
}

func init() {
	rootCmd.AddCommand(importArticlesCmd)
}

func runImportArticles(cmd *cobra.Command, args []string) error {
	var drafts []model.ArticleDraft
	if err := readYAML(cmd, args[0], &drafts); err != nil {
		return err
	}

	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	report, err := svc.ImportArticles(commandContext(cmd), drafts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, a := range report.Created {
		fmt.Fprintf(out, "created  %s  %s\n", a.ID, a.Name)
	}
	for _, name := range report.Skipped {
		fmt.Fprintf(out, "skipped  %s\n", name)
	}
	fmt.Fprintf(out, "%d created, %d skipped\n", len(report.Created), len(report.Skipped))
	return nil
}
