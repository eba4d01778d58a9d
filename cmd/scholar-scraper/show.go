package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-scraper/internal/store"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Browse people stored in a SQLite output",
	Long: `Show lists the people stored in a database written by scrape --format sqlite,
with publication and citation counts. --person prints one stored person as
JSON or YAML; --search runs a full-text query over titles and descriptions.`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().String("db", "", "SQLite database written by scrape (required)")
	showCmd.Flags().String("person", "", "print the stored record for this scholar ID")
	showCmd.Flags().String("search", "", "full-text search over publication titles and descriptions")
	showCmd.Flags().Int("max-results", 20, "maximum number of search results")
	showCmd.Flags().String("format", string(types.OutputJSON), "format for --person: json or yaml")
	showCmd.MarkFlagRequired("db")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	person, _ := cmd.Flags().GetString("person")
	query, _ := cmd.Flags().GetString("search")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	format, _ := cmd.Flags().GetString("format")

	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	s, err := store.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	switch {
	case person != "":
		p, err := s.Person(ctx, person)
		if err != nil {
			return err
		}
		switch types.OutputFormat(format) {
		case types.OutputJSON:
			return store.WriteJSON(w, []types.PersonRecord{p})
		case types.OutputYAML:
			return store.WriteYAML(w, []types.PersonRecord{p})
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", format)
		}

	case query != "":
		matches, err := s.Search(ctx, query, maxResults)
		if err != nil {
			return err
		}
		store.WriteMatches(w, matches)
		return nil

	default:
		people, err := s.People(ctx)
		if err != nil {
			return err
		}
		store.WritePeople(w, people)
		return nil
	}
}
