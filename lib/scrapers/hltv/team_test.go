package hltv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseTeamProfile(t *testing.T) {
	doc := docFromPage(t, "Natus Vincere - HLTV.org", teamBody)

	profile, err := ParseTeamProfile(doc, 0)
	require.NoError(t, err)

	require.Equal(t, "Natus Vincere", profile.Name)
	require.Equal(t, "Ukraine", profile.Country)
	require.NotNil(t, profile.Rank)
	require.Equal(t, 4, *profile.Rank)

	// seven anchors on the page, but duplicates collapse and the
	// lineup caps at five
	want := []RosterEntry{
		{HltvID: 7998, Slug: "s1mple", Nickname: "s1mple"},
		{HltvID: 3741, Slug: "b1t", Nickname: "b1t"},
		{HltvID: 18053, Slug: "jl", Nickname: "jL"},
		{HltvID: 16947, Slug: "im", Nickname: "iM"},
		{HltvID: 20128, Slug: "w0nderful", Nickname: "w0nderful"},
	}
	diff := cmp.Diff(want, profile.Roster)
	require.Empty(t, diff)
}

func TestParseTeamProfileNameFromTitle(t *testing.T) {
	doc := docFromPage(t, "FaZe - HLTV.org", "<div>layout changed completely</div>")

	profile, err := ParseTeamProfile(doc, 0)
	require.NoError(t, err)
	require.Equal(t, "FaZe", profile.Name)
	require.Empty(t, profile.Roster)
	require.Nil(t, profile.Rank)
}

func TestParseTeamProfileUnparseable(t *testing.T) {
	doc := docFromPage(t, "", "<div>nothing</div>")

	_, err := ParseTeamProfile(doc, 0)
	require.Error(t, err)
}

func TestParseTeamProfileRosterLimit(t *testing.T) {
	doc := docFromPage(t, "Natus Vincere - HLTV.org", teamBody)

	profile, err := ParseTeamProfile(doc, 2)
	require.NoError(t, err)
	require.Len(t, profile.Roster, 2)
	require.Equal(t, "s1mple", profile.Roster[0].Nickname)
}
