package commands

import (
	"os"
	"time"

	"cstracker-backend/lib/serviceutil"
	"cstracker-backend/services/tracker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var matchesDb *string

func init() {
	matchesDb = matchesCmd.Flags().String("db", "tracker.db", "The database to read from.")
	rootCmd.AddCommand(matchesCmd)
}

var matchesCmd = &cobra.Command{
	Use:   "matches [--db <path/to/tracker.db>]",
	Short: "Prints scheduled and live matches.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := openDatabase(*matchesDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		store := tracker.NewStore(database)

		matches, err := store.ListUpcomingMatches(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list matches", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Team 1", "Team 2", "Starts", "Format", "Status"})

		for _, match := range matches {
			starts := "TBD"
			if match.StartsAt.Valid {
				starts = match.StartsAt.Time.Format(time.DateTime)
			}
			t.AppendRow(table.Row{
				match.Team1Name, match.Team2Name, starts, match.BestOf, match.Status,
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
