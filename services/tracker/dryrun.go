package tracker

import (
	"context"
	"log/slog"

	"cstracker-backend/lib/scrapers/hltv"
)

// DryRunGateway collects assembled records instead of persisting them,
// so a run can be inspected without touching the database. Tracked
// teams are kept in memory to let the rest of the pipeline proceed as
// it would against a real store.
type DryRunGateway struct {
	RankedTeams []hltv.RankedTeam
	Teams       []TeamRecord
	Rosters     map[int64][]hltv.RosterEntry
	Players     []PlayerRecord
	Matches     []MatchRecord

	tracked []TrackedTeam
}

var _ Gateway = (*DryRunGateway)(nil)

func NewDryRunGateway() *DryRunGateway {
	return &DryRunGateway{Rosters: map[int64][]hltv.RosterEntry{}}
}

func (g *DryRunGateway) SaveRankedTeam(ctx context.Context, team hltv.RankedTeam) error {
	slog.InfoContext(ctx, "dry-run: would upsert ranked team",
		"name", team.Name, "rank", team.Rank, "points", team.Points)
	g.RankedTeams = append(g.RankedTeams, team)
	g.track(TrackedTeam{ID: int64(len(g.tracked) + 1), HltvID: team.HltvID, Slug: team.Slug, Name: team.Name})
	return nil
}

func (g *DryRunGateway) SaveTeam(ctx context.Context, team TeamRecord, roster []hltv.RosterEntry) error {
	slog.InfoContext(ctx, "dry-run: would upsert team and resync roster",
		"name", team.Name, "roster_size", len(roster))
	g.Teams = append(g.Teams, team)
	g.Rosters[team.HltvID] = roster
	g.track(TrackedTeam{ID: int64(len(g.tracked) + 1), HltvID: team.HltvID, Slug: team.Slug, Name: team.Name})
	return nil
}

func (g *DryRunGateway) SavePlayer(ctx context.Context, player PlayerRecord) error {
	slog.InfoContext(ctx, "dry-run: would upsert player",
		"nickname", player.Nickname, "stats_empty", player.Stats.Empty())
	g.Players = append(g.Players, player)
	return nil
}

func (g *DryRunGateway) SaveMatch(ctx context.Context, match MatchRecord) error {
	slog.InfoContext(ctx, "dry-run: would upsert match",
		"match", match.HltvID,
		"team1", match.Team1Name, "team1_id", match.Team1ID,
		"team2", match.Team2Name, "team2_id", match.Team2ID,
		"best_of", match.BestOf, "status", match.Status)
	g.Matches = append(g.Matches, match)
	return nil
}

func (g *DryRunGateway) ListTrackedTeams(ctx context.Context) ([]TrackedTeam, error) {
	return g.tracked, nil
}

func (g *DryRunGateway) DeactivateTeamsNotIn(ctx context.Context, hltvIDs []int64) error {
	slog.InfoContext(ctx, "dry-run: would deactivate teams not on the ranking",
		"ranked_teams", len(hltvIDs))
	return nil
}

func (g *DryRunGateway) track(team TrackedTeam) {
	for _, existing := range g.tracked {
		if existing.HltvID == team.HltvID {
			return
		}
	}
	g.tracked = append(g.tracked, team)
}
