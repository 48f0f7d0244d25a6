package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dukerupert/shoplisl/internal/shopping"
	"github.com/spf13/cobra"
)

var seedListCmd = &cobra.Command{
	Use:   "seed-list <file.yaml>",
	Short: "Create a list from free-text entries",
	Long: `Create a shopping list from free-text entries, for example a pasted
receipt. Each entry is resolved against the article catalog; matched articles
go on the new list already checked off. Unmatched entries are reported and
no articles are created.

The file holds a single list:
  name: Wocheneinkauf
  icon: 🛒
  items:
    - Milch 2x
    - ca. 500 g Faschiertes
    - Bananen (Bio)

Examples:
  shoplislctl seed-list einkauf.yaml
  shoplislctl seed-list - --json < einkauf.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSeedList,
}

func init() {
	rootCmd.AddCommand(seedListCmd)
	seedListCmd.Flags().Bool("json", false, "output the report as JSON")
}

func runSeedList(cmd *cobra.Command, args []string) error {
	var req shopping.SeedRequest
	if err := readYAML(cmd, args[0], &req); err != nil {
		return err
	}

	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	report, err := svc.SeedList(commandContext(cmd), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "Created list %q (%s) with %d articles\n\n", report.List.Name, report.List.ID, len(report.List.ArticleIDs))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tARTICLE\tSTAGE")
	for _, m := range report.Matched {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Input, m.ArticleName, m.Stage)
	}
	for _, u := range report.Unmatched {
		fmt.Fprintf(tw, "%s\t-\tunmatched\n", u)
	}
	return tw.Flush()
}
