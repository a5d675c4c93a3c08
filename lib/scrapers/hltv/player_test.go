package hltv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePlayerProfile(t *testing.T) {
	doc := docFromPage(t, "s1mple - HLTV.org", playerBody)

	profile, err := ParsePlayerProfile(doc)
	require.NoError(t, err)
	require.Equal(t, "s1mple", profile.Nickname)
	require.Equal(t, "Oleksandr Kostyliev", profile.RealName)
	require.Equal(t, "Ukraine", profile.Country)
	require.NotNil(t, profile.Age)
	require.Equal(t, 28, *profile.Age)
}

func TestParsePlayerStatsRows(t *testing.T) {
	doc := docFromPage(t, "s1mple stats - HLTV.org", `
<div class="stats-row"><span>Rating 2.0</span><span>1.21</span></div>
<div class="stats-row"><span>K/D Ratio</span><span>1.34</span></div>
<div class="stats-row"><span>Damage / Round</span><span>82.4</span></div>
<div class="stats-row"><span>KAST</span><span>73.1%</span></div>
<div class="stats-row"><span>Headshot %</span><span>58.2%</span></div>
<div class="stats-row"><span>Kills / round</span><span>0.85</span></div>
<div class="stats-row"><span>Assists / round</span><span>0.41</span></div>
<div class="stats-row"><span>Deaths / round</span><span>0.61</span></div>
<div class="stats-row"><span>Saved by teammate / round</span><span>0.09</span></div>
<div class="stats-row"><span>Saved teammates / round</span><span>0.11</span></div>
<div class="stats-row"><span>Maps played</span><span>14</span></div>
`)

	stats := ParsePlayerStats(doc)
	require.NotNil(t, stats.Rating)
	require.Equal(t, 1.21, *stats.Rating)
	require.NotNil(t, stats.KDRatio)
	require.Equal(t, 1.34, *stats.KDRatio)
	require.NotNil(t, stats.ADR)
	require.Equal(t, 82.4, *stats.ADR)
	require.NotNil(t, stats.KAST)
	require.Equal(t, 73.1, *stats.KAST)
	require.NotNil(t, stats.HeadshotPct)
	require.Equal(t, 58.2, *stats.HeadshotPct)
	require.NotNil(t, stats.KillsPerRound)
	require.Equal(t, 0.85, *stats.KillsPerRound)
	require.NotNil(t, stats.AssistsPerRound)
	require.Equal(t, 0.41, *stats.AssistsPerRound)
	require.NotNil(t, stats.DeathsPerRound)
	require.Equal(t, 0.61, *stats.DeathsPerRound)
	require.NotNil(t, stats.SavedByTeammatePerRound)
	require.Equal(t, 0.09, *stats.SavedByTeammatePerRound)
	require.NotNil(t, stats.SavedTeammatesPerRound)
	require.Equal(t, 0.11, *stats.SavedTeammatesPerRound)
	require.NotNil(t, stats.MapsPlayed)
	require.Equal(t, 14, *stats.MapsPlayed)
}

// the primary row layout missing entirely should not matter as long as
// the summary breakdown tiles are present
func TestParsePlayerStatsBreakdownFallback(t *testing.T) {
	doc := docFromPage(t, "s1mple stats - HLTV.org", statsBreakdownBody)

	stats := ParsePlayerStats(doc)
	require.NotNil(t, stats.Rating)
	require.Equal(t, 1.21, *stats.Rating)
	require.NotNil(t, stats.KDRatio)
	require.Equal(t, 1.34, *stats.KDRatio)
	require.NotNil(t, stats.ADR)
	require.Equal(t, 82.4, *stats.ADR)
	require.NotNil(t, stats.KAST)
	require.Equal(t, 73.1, *stats.KAST)
	require.NotNil(t, stats.HeadshotPct)
	require.Equal(t, 58.2, *stats.HeadshotPct)
}

func TestParsePlayerStatsTableRescan(t *testing.T) {
	doc := docFromPage(t, "s1mple stats - HLTV.org", `
<table>
  <tr><td>Rating 2.0</td><td>1.05</td></tr>
  <tr><td>KAST</td><td>68.9%</td></tr>
</table>
`)

	stats := ParsePlayerStats(doc)
	require.NotNil(t, stats.Rating)
	require.Equal(t, 1.05, *stats.Rating)
	require.NotNil(t, stats.KAST)
	require.Equal(t, 68.9, *stats.KAST)
	require.Nil(t, stats.ADR)
}

func TestParsePlayerStatsRejectsImplausibleValues(t *testing.T) {
	doc := docFromPage(t, "broken stats - HLTV.org", `
<div class="stats-row"><span>Rating 2.0</span><span>7.3</span></div>
<div class="stats-row"><span>Damage / Round</span><span>999</span></div>
<div class="stats-row"><span>Kills / round</span><span>9.9</span></div>
<div class="stats-row"><span>Saved by teammate / round</span><span>5.2</span></div>
`)

	stats := ParsePlayerStats(doc)
	require.Nil(t, stats.Rating)
	require.Nil(t, stats.ADR)
	require.Nil(t, stats.KillsPerRound)
	require.Nil(t, stats.SavedByTeammatePerRound)
	require.True(t, stats.Empty())
}
