package commands

import (
	"os"

	"cstracker-backend/lib/serviceutil"
	"cstracker-backend/services/tracker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var teamsDb *string

func init() {
	teamsDb = teamsCmd.Flags().String("db", "tracker.db", "The database to read from.")
	rootCmd.AddCommand(teamsCmd)
}

var teamsCmd = &cobra.Command{
	Use:   "teams [--db <path/to/tracker.db>]",
	Short: "Prints the tracked teams and their rosters.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database, err := openDatabase(*teamsDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		store := tracker.NewStore(database)

		teams, err := store.ListTrackedTeams(ctx)
		if err != nil {
			serviceutil.Fatal("failed to list teams", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Team", "Site ID", "Roster"})

		for _, team := range teams {
			roster, err := store.ListTeamRoster(ctx, team.ID)
			if err != nil {
				serviceutil.Fatal("failed to list roster", err)
			}
			names := ""
			for i, player := range roster {
				if i > 0 {
					names += ", "
				}
				names += player.Nickname
			}
			t.AppendRow(table.Row{team.Name, team.HltvID, names})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
