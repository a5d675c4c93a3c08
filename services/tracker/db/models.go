package db

import (
	"database/sql"
	"time"
)

type Team struct {
	ID        int64
	HltvID    int64
	Name      string
	Slug      string
	Country   string
	Rank      sql.NullInt64
	Points    sql.NullInt64
	Active    int64
	UpdatedAt time.Time
}

type Player struct {
	ID        int64
	HltvID    int64
	Nickname  string
	RealName  string
	Country   string
	Age       sql.NullInt64
	UpdatedAt time.Time
}

type Roster struct {
	TeamID   int64
	PlayerID int64
	Role     sql.NullString
	JoinedAt time.Time
	LeftAt   sql.NullTime
}

type Statistic struct {
	ID                      int64
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

type Match struct {
	ID         int64
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
