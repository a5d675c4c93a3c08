package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cstracker-backend/lib/scrapers/hltv"
	"cstracker-backend/services/tracker/db"
)

// rosterRole is what membership rows carry until a page layout exposes
// in-game roles again.
const rosterRole = "Player"

// Gateway is where assembled records go. The real implementation
// writes to the database; the dry-run implementation prints what would
// have been written. Both receive fully resolved records: name to team
// resolution happens during assembly, not here.
type Gateway interface {
	SaveRankedTeam(ctx context.Context, team hltv.RankedTeam) error
	SaveTeam(ctx context.Context, team TeamRecord, roster []hltv.RosterEntry) error
	SavePlayer(ctx context.Context, player PlayerRecord) error
	SaveMatch(ctx context.Context, match MatchRecord) error
	ListTrackedTeams(ctx context.Context) ([]TrackedTeam, error)
	DeactivateTeamsNotIn(ctx context.Context, hltvIDs []int64) error
}

// Store is the database-backed Gateway.
type Store struct {
	sqldb   *sql.DB
	queries *db.Queries
}

var _ Gateway = (*Store)(nil)

func NewStore(sqldb *sql.DB) *Store {
	return &Store{
		sqldb:   sqldb,
		queries: db.New(sqldb),
	}
}

func intToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func int64ToNull(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func floatToNull(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func timeToNull(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}

func (s *Store) SaveRankedTeam(ctx context.Context, team hltv.RankedTeam) error {
	// seed fallback rows carry no ranking figures
	rank := sql.NullInt64{Int64: int64(team.Rank), Valid: team.Rank > 0}
	points := sql.NullInt64{Int64: int64(team.Points), Valid: team.Points > 0}
	_, err := s.queries.UpsertTeam(ctx, db.UpsertTeamParams{
		HltvID:    team.HltvID,
		Name:      team.Name,
		Slug:      team.Slug,
		Rank:      rank,
		Points:    points,
		UpdatedAt: time.Now().UTC(),
	})
	return err
}

// SaveTeam upserts the team and resyncs its roster membership in one
// transaction. Roster entries are saved as stub players first so the
// membership rows have something to point at; the full bio and stats
// arrive later through SavePlayer.
func (s *Store) SaveTeam(ctx context.Context, team TeamRecord, roster []hltv.RosterEntry) error {
	tx, err := s.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	qtx := s.queries.WithTx(tx)

	now := time.Now().UTC()
	saved, err := qtx.UpsertTeam(ctx, db.UpsertTeamParams{
		HltvID:    team.HltvID,
		Name:      team.Name,
		Slug:      team.Slug,
		Country:   team.Country,
		Rank:      intToNull(team.Rank),
		Points:    intToNull(team.Points),
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("upsert team %q: %w", team.Name, err)
	}

	err = qtx.DeleteTeamRoster(ctx, saved.ID)
	if err != nil {
		return err
	}
	for _, entry := range roster {
		player, err := qtx.UpsertPlayer(ctx, db.UpsertPlayerParams{
			HltvID:    entry.HltvID,
			Nickname:  entry.Nickname,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("upsert roster player %q: %w", entry.Nickname, err)
		}
		err = qtx.InsertRosterMember(ctx, db.InsertRosterMemberParams{
			TeamID:   saved.ID,
			PlayerID: player.ID,
			Role:     sql.NullString{String: rosterRole, Valid: true},
			JoinedAt: now,
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) SavePlayer(ctx context.Context, player PlayerRecord) error {
	now := time.Now().UTC()
	saved, err := s.queries.UpsertPlayer(ctx, db.UpsertPlayerParams{
		HltvID:    player.HltvID,
		Nickname:  player.Nickname,
		RealName:  player.RealName,
		Country:   player.Country,
		Age:       intToNull(player.Age),
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("upsert player %q: %w", player.Nickname, err)
	}

	if player.Stats.Empty() {
		return nil
	}
	mapsPlayed := sql.NullInt64{}
	if player.Stats.MapsPlayed != nil {
		mapsPlayed = sql.NullInt64{Int64: int64(*player.Stats.MapsPlayed), Valid: true}
	}
	_, err = s.queries.UpsertStatistic(ctx, db.UpsertStatisticParams{
		PlayerID:                saved.ID,
		PeriodStart:             player.PeriodStart,
		PeriodEnd:               player.PeriodEnd,
		Rating:                  floatToNull(player.Stats.Rating),
		KdRatio:                 floatToNull(player.Stats.KDRatio),
		Adr:                     floatToNull(player.Stats.ADR),
		Kast:                    floatToNull(player.Stats.KAST),
		HeadshotPct:             floatToNull(player.Stats.HeadshotPct),
		KillsPerRound:           floatToNull(player.Stats.KillsPerRound),
		AssistsPerRound:         floatToNull(player.Stats.AssistsPerRound),
		DeathsPerRound:          floatToNull(player.Stats.DeathsPerRound),
		SavedByTeammatePerRound: floatToNull(player.Stats.SavedByTeammatePerRound),
		SavedTeammatesPerRound:  floatToNull(player.Stats.SavedTeammatesPerRound),
		MapsPlayed:              mapsPlayed,
		UpdatedAt:               now,
	})
	return err
}

// SaveMatch upserts an already-resolved match record. Sides arrive
// carrying internal team ids; an unresolvable side carries the
// sentinel id and is stored as-is.
func (s *Store) SaveMatch(ctx context.Context, match MatchRecord) error {
	_, err := s.queries.UpsertMatch(ctx, db.UpsertMatchParams{
		HltvID:     match.HltvID,
		Team1ID:    match.Team1ID,
		Team2ID:    match.Team2ID,
		Team1Name:  match.Team1Name,
		Team2Name:  match.Team2Name,
		Team1Score: intToNull(match.Team1Score),
		Team2Score: intToNull(match.Team2Score),
		WinnerID:   int64ToNull(match.WinnerID),
		StartsAt:   timeToNull(match.StartsAt),
		StartedAt:  timeToNull(match.StartedAt),
		EndedAt:    timeToNull(match.EndedAt),
		BestOf:     match.BestOf,
		Status:     match.Status,
		UpdatedAt:  time.Now().UTC(),
	})
	return err
}

func (s *Store) ListTrackedTeams(ctx context.Context) ([]TrackedTeam, error) {
	teams, err := s.queries.ListActiveTeams(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TrackedTeam, 0, len(teams))
	for _, team := range teams {
		out = append(out, TrackedTeam{
			ID:     team.ID,
			HltvID: team.HltvID,
			Slug:   team.Slug,
			Name:   team.Name,
		})
	}
	return out, nil
}

// DeactivateTeamsNotIn soft-deactivates teams that fell off the
// ranking. Their rows, rosters and history are never deleted; they
// simply stop being walked until a ranking snapshot lists them again.
func (s *Store) DeactivateTeamsNotIn(ctx context.Context, hltvIDs []int64) error {
	keep := make(map[int64]bool, len(hltvIDs))
	for _, id := range hltvIDs {
		keep[id] = true
	}

	teams, err := s.queries.ListActiveTeams(ctx)
	if err != nil {
		return err
	}
	for _, team := range teams {
		if keep[team.HltvID] {
			continue
		}
		err := s.queries.SetTeamActive(ctx, db.SetTeamActiveParams{Active: 0, ID: team.ID})
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "team fell off the ranking, deactivating", "team", team.Name)
	}
	return nil
}

// GetPlayerByHltvID is a read-through used by the CLI.
func (s *Store) GetPlayerByHltvID(ctx context.Context, hltvID int64) (db.Player, []db.Statistic, error) {
	player, err := s.queries.GetPlayerByHltvID(ctx, hltvID)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Player{}, nil, fmt.Errorf("no player with site id %d", hltvID)
	}
	if err != nil {
		return db.Player{}, nil, err
	}
	stats, err := s.queries.ListPlayerStatistics(ctx, player.ID)
	if err != nil {
		return db.Player{}, nil, err
	}
	return player, stats, nil
}

// ListUpcomingMatches is a read-through used by the CLI.
func (s *Store) ListUpcomingMatches(ctx context.Context) ([]db.Match, error) {
	return s.queries.ListUpcomingMatches(ctx)
}

// ListTeamRoster is a read-through used by the CLI.
func (s *Store) ListTeamRoster(ctx context.Context, teamID int64) ([]db.ListTeamRosterRow, error) {
	return s.queries.ListTeamRoster(ctx, teamID)
}
