package commands

import (
	"log/slog"
	"os"
	"time"

	"cstracker-backend/lib/scrapers/hltv"
	"cstracker-backend/lib/serviceutil"
	"cstracker-backend/services/tracker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	syncDb     *string
	syncDryRun *bool
	syncLimit  *int
)

func init() {
	syncDb = syncCmd.Flags().String("db", "tracker.db", "The database to write scrape results to.")
	syncDryRun = syncCmd.Flags().Bool("dry-run", false, "Scrape and report what would be written without touching the database.")
	syncLimit = syncCmd.Flags().Int("limit", 0, "Walk at most this many teams (0 walks all of them).")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync [--db <path/to/output.db>] [--dry-run] [--limit <n>]",
	Short: "Runs a full scrape pass: ranking, teams, players, matches.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		client, err := hltv.NewClient(ctx, hltv.ClientOptions{})
		if err != nil {
			serviceutil.Fatal("failed to initialize scrape client", err)
		}
		defer client.Close()

		var gateway tracker.Gateway
		var dryRun *tracker.DryRunGateway
		if *syncDryRun {
			dryRun = tracker.NewDryRunGateway()
			gateway = dryRun
		} else {
			database, err := openDatabase(*syncDb)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer database.Close()
			gateway = tracker.NewStore(database)
		}

		service := tracker.NewService(client, gateway, tracker.ServiceOptions{
			TeamLimit: *syncLimit,
		})

		t1 := time.Now()
		err = service.Run(ctx)
		t2 := time.Now()
		if err != nil {
			serviceutil.Fatal("scrape pass failed", err)
		}
		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds())

		if dryRun != nil {
			renderDryRun(dryRun)
		}
	},
}

func renderDryRun(g *tracker.DryRunGateway) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Team", "Country", "Rank"})
	for _, team := range g.Teams {
		rank := ""
		if team.Rank != nil {
			rank = formatInt(*team.Rank)
		}
		t.AppendRow(table.Row{team.Name, team.Country, rank})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Player", "Country", "Rating", "K/D", "ADR"})
	for _, player := range g.Players {
		t.AppendRow(table.Row{
			player.Nickname,
			player.Country,
			formatFloat(player.Stats.Rating),
			formatFloat(player.Stats.KDRatio),
			formatFloat(player.Stats.ADR),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Match", "Team 1", "Team 2", "Starts", "Format", "Status"})
	for _, match := range g.Matches {
		starts := ""
		if match.StartsAt != nil {
			starts = match.StartsAt.Format(time.DateTime)
		}
		t.AppendRow(table.Row{
			match.HltvID, match.Team1Name, match.Team2Name,
			starts, match.BestOf, match.Status,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
