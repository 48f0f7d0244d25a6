package main

import (
	"fmt"

	"github.com/dukerupert/shoplisl/internal/matcher"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <entry>...",
	Short: "Show which catalog article each entry resolves to",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	aliases, err := matcher.LoadAliasesFile(cfg.AliasesPath)
	if err != nil {
		return err
	}
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	catalog, err := svc.ListArticles(commandContext(cmd))
	if err != nil {
		return err
	}

	m := matcher.New(aliases)
	out := cmd.OutOrStdout()
	for _, entry := range args {
		res, ok := m.Match(entry, catalog)
		if !ok {
			fmt.Fprintf(out, "%s -> no match (cleaned %q)\n", entry, matcher.Clean(entry))
			continue
		}
		fmt.Fprintf(out, "%s -> %s [%s]\n", entry, res.Article.Name, res.Stage)
	}
	return nil
}
