package commands

import (
	"fmt"
	"os"
	"strconv"

	"cstracker-backend/lib/serviceutil"
	"cstracker-backend/services/tracker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var playerDb *string

func init() {
	playerDb = playerCmd.Flags().String("db", "tracker.db", "The database to read from.")
	rootCmd.AddCommand(playerCmd)
}

var playerCmd = &cobra.Command{
	Use:   "player <site id> [--db <path/to/tracker.db>]",
	Short: "Prints a player's bio and per-period statistics.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hltvID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			serviceutil.Fatal("site id must be a number", err)
		}

		database, err := openDatabase(*playerDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		store := tracker.NewStore(database)

		player, stats, err := store.GetPlayerByHltvID(cmd.Context(), hltvID)
		if err != nil {
			serviceutil.Fatal("failed to look up player", err)
		}

		fmt.Printf("%s (%s)\n", player.Nickname, player.RealName)
		if player.Country != "" {
			fmt.Println("country:", player.Country)
		}
		if player.Age.Valid {
			fmt.Println("age:", player.Age.Int64)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Period", "Rating", "K/D", "ADR", "KAST", "HS %", "KPR", "DPR", "Maps"})

		for _, s := range stats {
			maps := ""
			if s.MapsPlayed.Valid {
				maps = strconv.FormatInt(s.MapsPlayed.Int64, 10)
			}
			t.AppendRow(table.Row{
				s.PeriodStart.Format("2006-01"),
				nullFloat(s.Rating.Float64, s.Rating.Valid),
				nullFloat(s.KdRatio.Float64, s.KdRatio.Valid),
				nullFloat(s.Adr.Float64, s.Adr.Valid),
				nullFloat(s.Kast.Float64, s.Kast.Valid),
				nullFloat(s.HeadshotPct.Float64, s.HeadshotPct.Valid),
				nullFloat(s.KillsPerRound.Float64, s.KillsPerRound.Valid),
				nullFloat(s.DeathsPerRound.Float64, s.DeathsPerRound.Valid),
				maps,
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

func nullFloat(v float64, valid bool) string {
	if !valid {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
