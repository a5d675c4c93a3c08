package main

import (
	"context"
	"log/slog"
	"time"

	"cstracker-backend/lib/configutil"
	configlibsql "cstracker-backend/lib/configutil/libsql"
	"cstracker-backend/lib/scrapers/hltv"
	"cstracker-backend/lib/serviceutil"
	"cstracker-backend/lib/telemetry"
	"cstracker-backend/services/tracker"
	trackerdb "cstracker-backend/services/tracker/db"
)

type Config struct {
	Database configlibsql.Struct `json:"database"`
	// hours between full scrape passes
	Interval    int `json:"interval"`
	TeamLimit   int `json:"team_limit"`
	RosterLimit int `json:"roster_limit"`
	// seconds between consecutive page fetches of each kind
	TeamDelay   int `json:"team_delay"`
	PlayerDelay int `json:"player_delay"`
	MatchDelay  int `json:"match_delay"`
	// per-page fetch attempts before the page is given up on
	MaxAttempts int `json:"max_attempts"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Interval <= 0 {
		config.Interval = 6
	}

	db, err := config.Database.OpenDB(trackerdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	defer db.Close()

	t, err := telemetry.SetupFromEnv(ctx, "trackerd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InitSlog(false)
	telemetry.InstrumentPerfStats(ctx)

	client, err := hltv.NewClient(ctx, hltv.ClientOptions{
		MaxAttempts: config.MaxAttempts,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize scrape client", err)
	}
	defer client.Close()

	service := tracker.NewService(client, tracker.NewStore(db), tracker.ServiceOptions{
		TeamLimit:   config.TeamLimit,
		RosterLimit: config.RosterLimit,
		TeamPace:    time.Duration(config.TeamDelay) * time.Second,
		PlayerPace:  time.Duration(config.PlayerDelay) * time.Second,
		MatchPace:   time.Duration(config.MatchDelay) * time.Second,
	})

	interval := time.Duration(config.Interval) * time.Hour
	slog.Info("starting scrape loop", "interval", interval)

	runOnce(ctx, service)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			runOnce(ctx, service)
		case <-ctx.Done():
			return
		}
	}
}

func runOnce(ctx context.Context, service *tracker.Service) {
	t1 := time.Now()
	err := service.Run(ctx)
	t2 := time.Now()
	if err != nil {
		slog.Error("scrape pass failed", "err", err)
		return
	}
	slog.Info("scrape pass finished", "seconds", t2.Sub(t1).Seconds())
}
