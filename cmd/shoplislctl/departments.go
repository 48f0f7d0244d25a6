package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dukerupert/shoplisl/internal/department"
	"github.com/spf13/cobra"
)

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Print the department table in default order",
	Args:  cobra.NoArgs,
	RunE:  runDepartments,
}

func init() {
	rootCmd.AddCommand(departmentsCmd)
	departmentsCmd.Flags().String("lang", "de", "display language (de or en)")
}

func runDepartments(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tICON")
	for i, d := range department.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, d.ID, department.Name(d.ID, lang), department.IconPath(d.ID))
	}
	return tw.Flush()
}
