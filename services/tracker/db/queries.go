package db

import (
	"context"
	"database/sql"
	"time"
)

const upsertTeam = `
INSERT INTO teams (hltv_id, name, slug, country, rank, points, active, updated_at)
VALUES (?, ?, ?, ?, ?, ?, 1, ?)
ON CONFLICT (hltv_id) DO UPDATE SET
    name = excluded.name,
    slug = CASE WHEN excluded.slug != '' THEN excluded.slug ELSE teams.slug END,
    country = CASE WHEN excluded.country != '' THEN excluded.country ELSE teams.country END,
    rank = COALESCE(excluded.rank, teams.rank),
    points = COALESCE(excluded.points, teams.points),
    active = 1,
    updated_at = excluded.updated_at
RETURNING id, hltv_id, name, slug, country, rank, points, active, updated_at
`

type UpsertTeamParams struct {
	HltvID    int64
	Name      string
	Slug      string
	Country   string
	Rank      sql.NullInt64
	Points    sql.NullInt64
	UpdatedAt time.Time
}

func (q *Queries) UpsertTeam(ctx context.Context, arg UpsertTeamParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, upsertTeam,
		arg.HltvID,
		arg.Name,
		arg.Slug,
		arg.Country,
		arg.Rank,
		arg.Points,
		arg.UpdatedAt,
	)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.HltvID,
		&i.Name,
		&i.Slug,
		&i.Country,
		&i.Rank,
		&i.Points,
		&i.Active,
		&i.UpdatedAt,
	)
	return i, err
}

const getTeamByHltvID = `
SELECT id, hltv_id, name, slug, country, rank, points, active, updated_at
FROM teams
WHERE hltv_id = ?
`

func (q *Queries) GetTeamByHltvID(ctx context.Context, hltvID int64) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamByHltvID, hltvID)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.HltvID,
		&i.Name,
		&i.Slug,
		&i.Country,
		&i.Rank,
		&i.Points,
		&i.Active,
		&i.UpdatedAt,
	)
	return i, err
}

const listActiveTeams = `
SELECT id, hltv_id, name, slug, country, rank, points, active, updated_at
FROM teams
WHERE active = 1 AND id != 0
ORDER BY rank IS NULL, rank ASC, name ASC
`

func (q *Queries) ListActiveTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listActiveTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		err := rows.Scan(
			&i.ID,
			&i.HltvID,
			&i.Name,
			&i.Slug,
			&i.Country,
			&i.Rank,
			&i.Points,
			&i.Active,
			&i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const setTeamActive = `
UPDATE teams SET active = ? WHERE id = ?
`

type SetTeamActiveParams struct {
	Active int64
	ID     int64
}

func (q *Queries) SetTeamActive(ctx context.Context, arg SetTeamActiveParams) error {
	_, err := q.db.ExecContext(ctx, setTeamActive, arg.Active, arg.ID)
	return err
}

const upsertPlayer = `
INSERT INTO players (hltv_id, nickname, real_name, country, age, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (hltv_id) DO UPDATE SET
    nickname = excluded.nickname,
    real_name = CASE WHEN excluded.real_name != '' THEN excluded.real_name ELSE players.real_name END,
    country = CASE WHEN excluded.country != '' THEN excluded.country ELSE players.country END,
    age = COALESCE(excluded.age, players.age),
    updated_at = excluded.updated_at
RETURNING id, hltv_id, nickname, real_name, country, age, updated_at
`

type UpsertPlayerParams struct {
	HltvID    int64
	Nickname  string
	RealName  string
	Country   string
	Age       sql.NullInt64
	UpdatedAt time.Time
}

func (q *Queries) UpsertPlayer(ctx context.Context, arg UpsertPlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, upsertPlayer,
		arg.HltvID,
		arg.Nickname,
		arg.RealName,
		arg.Country,
		arg.Age,
		arg.UpdatedAt,
	)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.HltvID,
		&i.Nickname,
		&i.RealName,
		&i.Country,
		&i.Age,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteTeamRoster = `
DELETE FROM rosters WHERE team_id = ?
`

func (q *Queries) DeleteTeamRoster(ctx context.Context, teamID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTeamRoster, teamID)
	return err
}

const insertRosterMember = `
INSERT OR IGNORE INTO rosters (team_id, player_id, role, joined_at, left_at)
VALUES (?, ?, ?, ?, NULL)
`

type InsertRosterMemberParams struct {
	TeamID   int64
	PlayerID int64
	Role     sql.NullString
	JoinedAt time.Time
}

func (q *Queries) InsertRosterMember(ctx context.Context, arg InsertRosterMemberParams) error {
	_, err := q.db.ExecContext(ctx, insertRosterMember,
		arg.TeamID,
		arg.PlayerID,
		arg.Role,
		arg.JoinedAt,
	)
	return err
}

const listTeamRoster = `
SELECT players.id, players.hltv_id, players.nickname, players.real_name,
    players.country, players.age, players.updated_at,
    rosters.role, rosters.joined_at, rosters.left_at
FROM rosters
INNER JOIN players ON players.id = rosters.player_id
WHERE rosters.team_id = ? AND rosters.left_at IS NULL
ORDER BY players.nickname ASC
`

type ListTeamRosterRow struct {
	ID        int64
	HltvID    int64
	Nickname  string
	RealName  string
	Country   string
	Age       sql.NullInt64
	UpdatedAt time.Time
	Role      sql.NullString
	JoinedAt  time.Time
	LeftAt    sql.NullTime
}

func (q *Queries) ListTeamRoster(ctx context.Context, teamID int64) ([]ListTeamRosterRow, error) {
	rows, err := q.db.QueryContext(ctx, listTeamRoster, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListTeamRosterRow
	for rows.Next() {
		var i ListTeamRosterRow
		err := rows.Scan(
			&i.ID,
			&i.HltvID,
			&i.Nickname,
			&i.RealName,
			&i.Country,
			&i.Age,
			&i.UpdatedAt,
			&i.Role,
			&i.JoinedAt,
			&i.LeftAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const upsertStatistic = `
INSERT INTO statistics (
    player_id, period_start, period_end,
    rating, kd_ratio, adr, kast, headshot_pct,
    kills_per_round, assists_per_round, deaths_per_round,
    saved_by_teammate_per_round, saved_teammates_per_round, maps_played,
    updated_at
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (player_id, period_start) DO UPDATE SET
    period_end = excluded.period_end,
    rating = COALESCE(excluded.rating, statistics.rating),
    kd_ratio = COALESCE(excluded.kd_ratio, statistics.kd_ratio),
    adr = COALESCE(excluded.adr, statistics.adr),
    kast = COALESCE(excluded.kast, statistics.kast),
    headshot_pct = COALESCE(excluded.headshot_pct, statistics.headshot_pct),
    kills_per_round = COALESCE(excluded.kills_per_round, statistics.kills_per_round),
    assists_per_round = COALESCE(excluded.assists_per_round, statistics.assists_per_round),
    deaths_per_round = COALESCE(excluded.deaths_per_round, statistics.deaths_per_round),
    saved_by_teammate_per_round = COALESCE(excluded.saved_by_teammate_per_round, statistics.saved_by_teammate_per_round),
    saved_teammates_per_round = COALESCE(excluded.saved_teammates_per_round, statistics.saved_teammates_per_round),
    maps_played = COALESCE(excluded.maps_played, statistics.maps_played),
    updated_at = excluded.updated_at
RETURNING id, player_id, period_start, period_end,
    rating, kd_ratio, adr, kast, headshot_pct,
    kills_per_round, assists_per_round, deaths_per_round,
    saved_by_teammate_per_round, saved_teammates_per_round, maps_played,
    updated_at
`

type UpsertStatisticParams struct {
	PlayerID                int64
	PeriodStart             time.Time
	PeriodEnd               time.Time
	Rating                  sql.NullFloat64
	KdRatio                 sql.NullFloat64
	Adr                     sql.NullFloat64
	Kast                    sql.NullFloat64
	HeadshotPct             sql.NullFloat64
	KillsPerRound           sql.NullFloat64
	AssistsPerRound         sql.NullFloat64
	DeathsPerRound          sql.NullFloat64
	SavedByTeammatePerRound sql.NullFloat64
	SavedTeammatesPerRound  sql.NullFloat64
	MapsPlayed              sql.NullInt64
	UpdatedAt               time.Time
}

func (q *Queries) UpsertStatistic(ctx context.Context, arg UpsertStatisticParams) (Statistic, error) {
	row := q.db.QueryRowContext(ctx, upsertStatistic,
		arg.PlayerID,
		arg.PeriodStart,
		arg.PeriodEnd,
		arg.Rating,
		arg.KdRatio,
		arg.Adr,
		arg.Kast,
		arg.HeadshotPct,
		arg.KillsPerRound,
		arg.AssistsPerRound,
		arg.DeathsPerRound,
		arg.SavedByTeammatePerRound,
		arg.SavedTeammatesPerRound,
		arg.MapsPlayed,
		arg.UpdatedAt,
	)
	var i Statistic
	err := row.Scan(
		&i.ID,
		&i.PlayerID,
		&i.PeriodStart,
		&i.PeriodEnd,
		&i.Rating,
		&i.KdRatio,
		&i.Adr,
		&i.Kast,
		&i.HeadshotPct,
		&i.KillsPerRound,
		&i.AssistsPerRound,
		&i.DeathsPerRound,
		&i.SavedByTeammatePerRound,
		&i.SavedTeammatesPerRound,
		&i.MapsPlayed,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertMatch = `
INSERT INTO matches (
    hltv_id, team1_id, team2_id, team1_name, team2_name,
    team1_score, team2_score, winner_id,
    starts_at, started_at, ended_at,
    best_of, status, updated_at
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (hltv_id) DO UPDATE SET
    team1_id = excluded.team1_id,
    team2_id = excluded.team2_id,
    team1_name = excluded.team1_name,
    team2_name = excluded.team2_name,
    team1_score = COALESCE(excluded.team1_score, matches.team1_score),
    team2_score = COALESCE(excluded.team2_score, matches.team2_score),
    winner_id = COALESCE(excluded.winner_id, matches.winner_id),
    starts_at = COALESCE(excluded.starts_at, matches.starts_at),
    started_at = COALESCE(excluded.started_at, matches.started_at),
    ended_at = COALESCE(excluded.ended_at, matches.ended_at),
    best_of = CASE WHEN excluded.best_of != 'TBD' THEN excluded.best_of ELSE matches.best_of END,
    status = excluded.status,
    updated_at = excluded.updated_at
RETURNING id, hltv_id, team1_id, team2_id, team1_name, team2_name,
    team1_score, team2_score, winner_id,
    starts_at, started_at, ended_at,
    best_of, status, updated_at
`

type UpsertMatchParams struct {
	HltvID     int64
	Team1ID    int64
	Team2ID    int64
	Team1Name  string
	Team2Name  string
	Team1Score sql.NullInt64
	Team2Score sql.NullInt64
	WinnerID   sql.NullInt64
	StartsAt   sql.NullTime
	StartedAt  sql.NullTime
	EndedAt    sql.NullTime
	BestOf     string
	Status     string
	UpdatedAt  time.Time
}

func (q *Queries) UpsertMatch(ctx context.Context, arg UpsertMatchParams) (Match, error) {
	row := q.db.QueryRowContext(ctx, upsertMatch,
		arg.HltvID,
		arg.Team1ID,
		arg.Team2ID,
		arg.Team1Name,
		arg.Team2Name,
		arg.Team1Score,
		arg.Team2Score,
		arg.WinnerID,
		arg.StartsAt,
		arg.StartedAt,
		arg.EndedAt,
		arg.BestOf,
		arg.Status,
		arg.UpdatedAt,
	)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.HltvID,
		&i.Team1ID,
		&i.Team2ID,
		&i.Team1Name,
		&i.Team2Name,
		&i.Team1Score,
		&i.Team2Score,
		&i.WinnerID,
		&i.StartsAt,
		&i.StartedAt,
		&i.EndedAt,
		&i.BestOf,
		&i.Status,
		&i.UpdatedAt,
	)
	return i, err
}

const listUpcomingMatches = `
SELECT id, hltv_id, team1_id, team2_id, team1_name, team2_name,
    team1_score, team2_score, winner_id,
    starts_at, started_at, ended_at,
    best_of, status, updated_at
FROM matches
WHERE status IN ('scheduled', 'live')
ORDER BY starts_at IS NULL, starts_at ASC
`

func (q *Queries) ListUpcomingMatches(ctx context.Context) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listUpcomingMatches)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		var i Match
		err := rows.Scan(
			&i.ID,
			&i.HltvID,
			&i.Team1ID,
			&i.Team2ID,
			&i.Team1Name,
			&i.Team2Name,
			&i.Team1Score,
			&i.Team2Score,
			&i.WinnerID,
			&i.StartsAt,
			&i.StartedAt,
			&i.EndedAt,
			&i.BestOf,
			&i.Status,
			&i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getMatchByHltvID = `
SELECT id, hltv_id, team1_id, team2_id, team1_name, team2_name,
    team1_score, team2_score, winner_id,
    starts_at, started_at, ended_at,
    best_of, status, updated_at
FROM matches
WHERE hltv_id = ?
`

func (q *Queries) GetMatchByHltvID(ctx context.Context, hltvID int64) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatchByHltvID, hltvID)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.HltvID,
		&i.Team1ID,
		&i.Team2ID,
		&i.Team1Name,
		&i.Team2Name,
		&i.Team1Score,
		&i.Team2Score,
		&i.WinnerID,
		&i.StartsAt,
		&i.StartedAt,
		&i.EndedAt,
		&i.BestOf,
		&i.Status,
		&i.UpdatedAt,
	)
	return i, err
}

const listPlayerStatistics = `
SELECT id, player_id, period_start, period_end,
    rating, kd_ratio, adr, kast, headshot_pct,
    kills_per_round, assists_per_round, deaths_per_round,
    saved_by_teammate_per_round, saved_teammates_per_round, maps_played,
    updated_at
FROM statistics
WHERE player_id = ?
ORDER BY period_start DESC
`

func (q *Queries) ListPlayerStatistics(ctx context.Context, playerID int64) ([]Statistic, error) {
	rows, err := q.db.QueryContext(ctx, listPlayerStatistics, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Statistic
	for rows.Next() {
		var i Statistic
		err := rows.Scan(
			&i.ID,
			&i.PlayerID,
			&i.PeriodStart,
			&i.PeriodEnd,
			&i.Rating,
			&i.KdRatio,
			&i.Adr,
			&i.Kast,
			&i.HeadshotPct,
			&i.KillsPerRound,
			&i.AssistsPerRound,
			&i.DeathsPerRound,
			&i.SavedByTeammatePerRound,
			&i.SavedTeammatesPerRound,
			&i.MapsPlayed,
			&i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getPlayerByHltvID = `
SELECT id, hltv_id, nickname, real_name, country, age, updated_at
FROM players
WHERE hltv_id = ?
`

func (q *Queries) GetPlayerByHltvID(ctx context.Context, hltvID int64) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayerByHltvID, hltvID)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.HltvID,
		&i.Nickname,
		&i.RealName,
		&i.Country,
		&i.Age,
		&i.UpdatedAt,
	)
	return i, err
}
