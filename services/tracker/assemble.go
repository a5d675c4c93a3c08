package tracker

import (
	"time"

	"cstracker-backend/lib/scrapers/hltv"
	"cstracker-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// names more similar than this are taken to be the same team spelled
// differently across pages
const teamNameSimilarity = 0.92

// SentinelTeamID stands in for a match side that could not be
// resolved to a known team.
const SentinelTeamID = 0

// TeamRecord is an assembled team ready for persistence.
type TeamRecord struct {
	HltvID  int64
	Slug    string
	Name    string
	Country string
	Rank    *int
	Points  *int
}

// PlayerRecord is an assembled player with the statistics scraped for
// the current reporting period.
type PlayerRecord struct {
	HltvID      int64
	Slug        string
	Nickname    string
	RealName    string
	Country     string
	Age         *int
	Stats       hltv.PlayerStats
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// MatchRecord is an assembled match with both sides already resolved
// to internal team ids. Scores, winner and the actual start/end times
// are carried as optional fields; a scrape of upcoming matches leaves
// them empty and a later result pass fills them in.
type MatchRecord struct {
	HltvID     int64
	Team1ID    int64
	Team2ID    int64
	Team1Name  string
	Team2Name  string
	Team1Score *int
	Team2Score *int
	WinnerID   *int64
	StartsAt   *time.Time
	StartedAt  *time.Time
	EndedAt    *time.Time
	BestOf     string
	Status     string
}

// TrackedTeam identifies a team the pipeline should walk this run.
type TrackedTeam struct {
	ID     int64
	HltvID int64
	Slug   string
	Name   string
}

// StatsPeriod returns the current reporting window, from the first of
// the month through today.
func StatsPeriod(now time.Time) (start, end time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, end
}

// AssembleTeam merges a scraped profile with the identity it was
// fetched under. The profile name wins over the ranking name since the
// profile page is authoritative for branding.
func AssembleTeam(hltvID int64, slug string, profile hltv.TeamProfile) TeamRecord {
	rec := TeamRecord{
		HltvID:  hltvID,
		Slug:    slug,
		Name:    profile.Name,
		Country: profile.Country,
		Rank:    profile.Rank,
	}
	return rec
}

// AssemblePlayer merges a scraped bio with the period statistics. The
// nickname from the roster listing fills in when the profile page gave
// nothing usable.
func AssemblePlayer(entry hltv.RosterEntry, profile hltv.PlayerProfile, stats hltv.PlayerStats, now time.Time) PlayerRecord {
	nickname := profile.Nickname
	if nickname == "" {
		nickname = entry.Nickname
	}
	start, end := StatsPeriod(now)
	return PlayerRecord{
		HltvID:      entry.HltvID,
		Slug:        entry.Slug,
		Nickname:    nickname,
		RealName:    profile.RealName,
		Country:     profile.Country,
		Age:         profile.Age,
		Stats:       stats,
		PeriodStart: start,
		PeriodEnd:   end,
	}
}

// AssembleMatch lifts a match card into a record, resolving both side
// names against the known teams. A side that resolves to nothing
// keeps the sentinel id; a card whose sides resolve to the same real
// team is a mis-extraction and is reported as not ok so the caller
// drops it before it ever reaches a gateway. Scraped cards only ever
// describe upcoming fixtures, so the status is always scheduled.
func AssembleMatch(card hltv.MatchCard, teams []TrackedTeam) (MatchRecord, bool) {
	team1 := resolveTeamID(card.Team1Name, teams)
	team2 := resolveTeamID(card.Team2Name, teams)
	if team1 != SentinelTeamID && team1 == team2 {
		return MatchRecord{}, false
	}

	return MatchRecord{
		HltvID:    card.HltvID,
		Team1ID:   team1,
		Team2ID:   team2,
		Team1Name: card.Team1Name,
		Team2Name: card.Team2Name,
		StartsAt:  card.StartsAt,
		BestOf:    card.BestOf,
		Status:    "scheduled",
	}, true
}

// resolveTeamID maps a display name to a known team: an exact
// normalized match first, then normalized containment (sponsor
// prefixes, "Team X" variants), then string similarity for the
// remaining spelling drift between the ranking page and match cards.
func resolveTeamID(name string, teams []TrackedTeam) int64 {
	if name == "" || name == hltv.TBD {
		return SentinelTeamID
	}
	normalized := textutil.NormalizeName(name)

	for _, team := range teams {
		if textutil.NormalizeName(team.Name) == normalized {
			return team.ID
		}
	}
	for _, team := range teams {
		if len(normalized) < 4 || len(textutil.NormalizeName(team.Name)) < 4 {
			continue
		}
		if textutil.MatchName(name, []string{team.Name}) ||
			textutil.MatchName(team.Name, []string{name}) {
			return team.ID
		}
	}
	for _, team := range teams {
		if matchr.JaroWinkler(normalized, textutil.NormalizeName(team.Name), true) >= teamNameSimilarity {
			return team.ID
		}
	}
	return SentinelTeamID
}
