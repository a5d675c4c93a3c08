package hltv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeContains(t *testing.T) {
	require.True(t, RatingRange.Contains(1.0))
	require.True(t, RatingRange.Contains(0.5))
	require.True(t, RatingRange.Contains(2.5))
	require.False(t, RatingRange.Contains(0.49))
	require.False(t, RatingRange.Contains(7.3))
}

func TestFirstNumberIn(t *testing.T) {
	v, ok := firstNumberIn("73.1%", KASTRange)
	require.True(t, ok)
	require.Equal(t, 73.1, v)

	// the leading number is out of range, the plausible one wins
	v, ok = firstNumberIn("maps 210 adr 82.4", ADRRange)
	require.True(t, ok)
	require.Equal(t, 82.4, v)

	_, ok = firstNumberIn("no numbers here", ADRRange)
	require.False(t, ok)
}

func TestParsePlausible(t *testing.T) {
	v, ok := parsePlausible("#3", RankRange)
	require.True(t, ok)
	require.Equal(t, 3.0, v)

	_, ok = parsePlausible("#999", RankRange)
	require.False(t, ok)

	_, ok = parsePlausible("n/a", RankRange)
	require.False(t, ok)
}

func TestIdFromHref(t *testing.T) {
	id, ok := idFromHref(teamHrefPattern, "/team/9565/vitality")
	require.True(t, ok)
	require.Equal(t, int64(9565), id)

	_, ok = idFromHref(teamHrefPattern, "/player/7998/s1mple")
	require.False(t, ok)
}

func TestSlugFromHref(t *testing.T) {
	require.Equal(t, "vitality", slugFromHref("/team/9565/vitality"))
	require.Equal(t, "vitality", slugFromHref("/team/9565/vitality/"))
	require.Equal(t, "", slugFromHref(""))
}
