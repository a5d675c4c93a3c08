package tracker

import (
	"testing"
	"time"

	"cstracker-backend/lib/scrapers/hltv"

	"github.com/stretchr/testify/require"
)

func TestStatsPeriod(t *testing.T) {
	start, end := StatsPeriod(time.Date(2024, time.July, 10, 15, 30, 0, 0, time.UTC))
	require.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC), end)

	// first of the month collapses to a single day window
	start, end = StatsPeriod(time.Date(2024, time.July, 1, 2, 0, 0, 0, time.UTC))
	require.Equal(t, start, end)
}

func TestAssemblePlayerFallsBackToRosterNickname(t *testing.T) {
	now := time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)
	rec := AssemblePlayer(
		hltv.RosterEntry{HltvID: 7998, Slug: "s1mple", Nickname: "s1mple"},
		hltv.PlayerProfile{},
		hltv.PlayerStats{},
		now,
	)
	require.Equal(t, "s1mple", rec.Nickname)
	require.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), rec.PeriodStart)
}

var resolutionTeams = []TrackedTeam{
	{ID: 1, HltvID: 4608, Name: "Natus Vincere"},
	{ID: 2, HltvID: 9565, Name: "Vitality"},
}

func TestAssembleMatchAlwaysScheduled(t *testing.T) {
	now := time.Now().UTC()
	for _, starts := range []*time.Time{
		nil,
		ptrTime(now.Add(time.Hour * 30)),
		ptrTime(now.Add(-time.Hour)),
		ptrTime(now.Add(-time.Hour * 48)),
	} {
		rec, ok := AssembleMatch(hltv.MatchCard{
			HltvID:    2371234,
			Team1Name: "Vitality",
			Team2Name: "Natus Vincere",
			StartsAt:  starts,
			BestOf:    "bo3",
		}, resolutionTeams)
		require.True(t, ok)
		require.Equal(t, "scheduled", rec.Status)
	}
}

func ptrTime(v time.Time) *time.Time { return &v }

func TestAssembleMatchResolvesTeams(t *testing.T) {
	starts := time.Date(2026, time.September, 3, 18, 0, 0, 0, time.UTC)
	rec, ok := AssembleMatch(hltv.MatchCard{
		HltvID:    2371234,
		Team1Name: "Vitality",
		Team2Name: "NATUS VINCERE",
		StartsAt:  &starts,
		BestOf:    "bo3",
	}, resolutionTeams)
	require.True(t, ok)
	require.Equal(t, int64(2), rec.Team1ID)
	require.Equal(t, int64(1), rec.Team2ID)
	require.Equal(t, "bo3", rec.BestOf)
	require.Nil(t, rec.Team1Score)
	require.Nil(t, rec.WinnerID)
}

func TestAssembleMatchSentinelForUnknownSide(t *testing.T) {
	rec, ok := AssembleMatch(hltv.MatchCard{
		HltvID:    2371235,
		Team1Name: "Vitality",
		Team2Name: hltv.TBD,
		BestOf:    hltv.TBD,
	}, resolutionTeams)
	require.True(t, ok)
	require.Equal(t, int64(2), rec.Team1ID)
	require.Equal(t, int64(SentinelTeamID), rec.Team2ID)
}

func TestAssembleMatchDropsSelfReferential(t *testing.T) {
	_, ok := AssembleMatch(hltv.MatchCard{
		HltvID:    2371236,
		Team1Name: "Vitality",
		Team2Name: "vitality",
	}, resolutionTeams)
	require.False(t, ok)
}

func TestResolveTeamID(t *testing.T) {
	require.Equal(t, int64(1), resolveTeamID("Natus Vincere", resolutionTeams))
	require.Equal(t, int64(1), resolveTeamID("natus  vincere", resolutionTeams))

	// truncated and misspelled variants still resolve
	require.Equal(t, int64(1), resolveTeamID("Natus Vincer", resolutionTeams))
	require.Equal(t, int64(1), resolveTeamID("Natus Vincerre", resolutionTeams))

	// sponsor prefixes resolve through containment
	require.Equal(t, int64(2), resolveTeamID("Team Vitality", resolutionTeams))

	require.Equal(t, int64(SentinelTeamID), resolveTeamID("FaZe", resolutionTeams))
	require.Equal(t, int64(SentinelTeamID), resolveTeamID(hltv.TBD, resolutionTeams))
	require.Equal(t, int64(SentinelTeamID), resolveTeamID("", resolutionTeams))
}

func TestResolveTeamIDShortNamesNeverContain(t *testing.T) {
	teams := []TrackedTeam{{ID: 7, HltvID: 5995, Name: "G2"}}
	// "G2" appears inside unrelated names; short names must not
	// resolve through containment
	require.Equal(t, int64(SentinelTeamID), resolveTeamID("OG2000", teams))
	require.Equal(t, int64(7), resolveTeamID("G2", teams))
}
