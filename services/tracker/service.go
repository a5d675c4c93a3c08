package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cstracker-backend/lib/scrapers/hltv"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/tracker")

const (
	defaultTeamPace   = time.Second * 3
	defaultPlayerPace = time.Second * 5
	defaultMatchPace  = time.Second * 3
)

type ServiceOptions struct {
	// TeamLimit caps how many teams a run walks. Zero walks them all.
	TeamLimit int
	// RosterLimit caps how many lineup entries a team page yields.
	// Zero applies the scraper default.
	RosterLimit int
	// TeamPace, PlayerPace and MatchPace are the base delays between
	// consecutive page fetches of each kind. Zero applies the default.
	TeamPace   time.Duration
	PlayerPace time.Duration
	MatchPace  time.Duration
}

// Service drives the scrape pipeline: ranking first, then each
// tracked team with its roster, then each team's match list. Pages are
// fetched strictly one at a time with paced delays in between; a
// failed page is logged and skipped, never fatal to the run.
type Service struct {
	client      *hltv.Client
	gateway     Gateway
	teamLimit   int
	rosterLimit int
	teamPace    time.Duration
	playerPace  time.Duration
	matchPace   time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

func NewService(client *hltv.Client, gateway Gateway, opts ServiceOptions) *Service {
	if opts.TeamPace <= 0 {
		opts.TeamPace = defaultTeamPace
	}
	if opts.PlayerPace <= 0 {
		opts.PlayerPace = defaultPlayerPace
	}
	if opts.MatchPace <= 0 {
		opts.MatchPace = defaultMatchPace
	}
	return &Service{
		client:      client,
		gateway:     gateway,
		teamLimit:   opts.TeamLimit,
		rosterLimit: opts.RosterLimit,
		teamPace:    opts.TeamPace,
		playerPace:  opts.PlayerPace,
		matchPace:   opts.MatchPace,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// pace waits the base delay plus a little noise between consecutive
// page fetches.
func (s *Service) pace(base time.Duration) {
	ms, err := random.IntRange(250, 1250)
	if err != nil {
		ms = 500
	}
	s.sleep(base + time.Duration(ms)*time.Millisecond)
}

// Run executes a full pipeline pass.
func (s *Service) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "tracker:Run")
	defer span.End()

	started := s.now()

	count, err := s.SyncRanking(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking sync failed")
		return err
	}
	slog.InfoContext(ctx, "ranking synced", "teams", count)

	err = s.SyncTeams(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "team sync failed")
		return err
	}

	err = s.SyncMatches(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "match sync failed")
		return err
	}

	slog.InfoContext(ctx, "pipeline pass complete", "elapsed", s.now().Sub(started))
	return nil
}

// SyncRanking fetches the latest world ranking snapshot and upserts
// every plausible row. When the page cannot be fetched or parses to
// nothing, the built-in seed teams keep the rest of the run alive.
func (s *Service) SyncRanking(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "tracker:SyncRanking")
	defer span.End()

	path := hltv.RankingPath(s.now())
	doc, err := s.client.Fetch(ctx, path)
	if err != nil {
		slog.WarnContext(ctx, "ranking page unavailable, falling back to seed teams",
			"url", path, "err", err)
		return s.seedFallback(ctx)
	}

	teams := hltv.ParseRanking(doc)
	if len(teams) == 0 {
		slog.WarnContext(ctx, "ranking page yielded no teams, falling back to seed teams",
			"url", path)
		return s.seedFallback(ctx)
	}

	ranked := make([]int64, 0, len(teams))
	for _, team := range teams {
		err := s.gateway.SaveRankedTeam(ctx, team)
		if err != nil {
			return 0, fmt.Errorf("save ranked team %q: %w", team.Name, err)
		}
		ranked = append(ranked, team.HltvID)
	}

	// a fresh snapshot is authoritative for which teams stay tracked
	err = s.gateway.DeactivateTeamsNotIn(ctx, ranked)
	if err != nil {
		return 0, err
	}
	return len(teams), nil
}

func (s *Service) seedFallback(ctx context.Context) (int, error) {
	seeds := hltv.SeedTeams()
	for _, seed := range seeds {
		err := s.gateway.SaveRankedTeam(ctx, hltv.RankedTeam{
			HltvID: seed.HltvID,
			Slug:   seed.Slug,
			Name:   seed.Name,
		})
		if err != nil {
			return 0, fmt.Errorf("save seed team %q: %w", seed.Name, err)
		}
	}
	return len(seeds), nil
}

// SyncTeams walks every tracked team: profile and roster first, then
// each roster member's bio and period statistics.
func (s *Service) SyncTeams(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "tracker:SyncTeams")
	defer span.End()

	tracked, err := s.gateway.ListTrackedTeams(ctx)
	if err != nil {
		return err
	}
	if s.teamLimit > 0 && len(tracked) > s.teamLimit {
		tracked = tracked[:s.teamLimit]
	}

	for i, team := range tracked {
		if i > 0 {
			s.pace(s.teamPace)
		}
		err := s.syncTeam(ctx, team)
		if err != nil {
			slog.WarnContext(ctx, "skipping team after failure",
				"team", team.Name, "err", err)
		}
	}
	return nil
}

func (s *Service) syncTeam(ctx context.Context, team TrackedTeam) error {
	ctx, span := tracer.Start(ctx, "tracker:syncTeam")
	defer span.End()

	doc, err := s.client.Fetch(ctx, hltv.TeamPath(team.HltvID, team.Slug))
	if err != nil {
		return err
	}
	profile, err := hltv.ParseTeamProfile(doc, s.rosterLimit)
	if err != nil {
		return fmt.Errorf("team page %d unparseable: %w", team.HltvID, err)
	}

	rec := AssembleTeam(team.HltvID, team.Slug, profile)
	err = s.gateway.SaveTeam(ctx, rec, profile.Roster)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "team synced", "team", rec.Name, "roster_size", len(profile.Roster))

	for _, entry := range profile.Roster {
		s.pace(s.playerPace)
		err := s.syncPlayer(ctx, entry)
		if err != nil {
			slog.WarnContext(ctx, "skipping player after failure",
				"player", entry.Nickname, "err", err)
		}
	}
	return nil
}

// syncPlayer fetches a roster member's bio and period statistics. The
// stats page failing is tolerated: the bio alone is still worth
// persisting.
func (s *Service) syncPlayer(ctx context.Context, entry hltv.RosterEntry) error {
	ctx, span := tracer.Start(ctx, "tracker:syncPlayer")
	defer span.End()

	doc, err := s.client.Fetch(ctx, hltv.PlayerPath(entry.HltvID, entry.Slug))
	if err != nil {
		return err
	}
	profile, err := hltv.ParsePlayerProfile(doc)
	if err != nil {
		return fmt.Errorf("player page %d unparseable: %w", entry.HltvID, err)
	}

	var stats hltv.PlayerStats
	start, end := StatsPeriod(s.now())
	s.pace(s.playerPace)
	statsDoc, err := s.client.Fetch(ctx, hltv.PlayerStatsPath(
		entry.HltvID, entry.Slug,
		start.Format("2006-01-02"), end.Format("2006-01-02"),
	))
	if err != nil {
		slog.WarnContext(ctx, "stats page unavailable, saving bio only",
			"player", entry.Nickname, "err", err)
	} else {
		stats = hltv.ParsePlayerStats(statsDoc)
	}

	rec := AssemblePlayer(entry, profile, stats, s.now())
	return s.gateway.SavePlayer(ctx, rec)
}

// SyncMatches walks every tracked team's match list and upserts each
// card. Side names resolve against the full tracked set, not just the
// teams this run walks, so a limited run still recognizes opponents.
func (s *Service) SyncMatches(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "tracker:SyncMatches")
	defer span.End()

	tracked, err := s.gateway.ListTrackedTeams(ctx)
	if err != nil {
		return err
	}
	known := tracked
	if s.teamLimit > 0 && len(tracked) > s.teamLimit {
		tracked = tracked[:s.teamLimit]
	}

	for i, team := range tracked {
		if i > 0 {
			s.pace(s.matchPace)
		}

		doc, err := s.client.Fetch(ctx, hltv.TeamMatchesPath(team.HltvID, team.Slug))
		if err != nil {
			slog.WarnContext(ctx, "match list unavailable, skipping team",
				"team", team.Name, "err", err)
			continue
		}

		cards := hltv.ParseTeamMatches(doc)
		saved := 0
		for _, card := range cards {
			rec, ok := AssembleMatch(card, known)
			if !ok {
				slog.WarnContext(ctx, "match sides resolved to the same team, dropping",
					"match", card.HltvID, "team1", card.Team1Name, "team2", card.Team2Name)
				continue
			}
			err := s.gateway.SaveMatch(ctx, rec)
			if err != nil {
				slog.WarnContext(ctx, "failed to save match",
					"match", card.HltvID, "err", err)
				continue
			}
			saved++
		}
		slog.InfoContext(ctx, "matches synced", "team", team.Name, "matches", saved)
	}
	return nil
}
