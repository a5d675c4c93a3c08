package tracker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cstracker-backend/lib/scrapers/hltv"
	"cstracker-backend/lib/telemetry"
	"cstracker-backend/lib/testutil"
	"cstracker-backend/services/tracker/db"

	"github.com/stretchr/testify/require"
)

func testPage(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>")
	b.WriteString(title)
	b.WriteString("</title></head><body>")
	b.WriteString(body)
	b.WriteString("<!-- ")
	for b.Len() < 1200 {
		b.WriteString("hltv filler content ")
	}
	b.WriteString(" --></body></html>")
	return b.String()
}

const testRankingBody = `
<div class="ranked-team">
  <span class="position">#4</span>
  <div class="teamLine"><span class="name">Natus Vincere</span></div>
  <span class="points">(1420 points)</span>
  <a class="moreLink" href="/team/4608/natus-vincere">More</a>
</div>
`

// team page with the match list inline, the way the site serves the
// matches tab
const testTeamBody = `
<h1 class="profile-team-name">Natus Vincere</h1>
<div class="team-country"><img alt="Ukraine" src="/img/ua.png"> Ukraine</div>
<div class="bodyshot-team">
  <a href="/player/7998/s1mple"><span class="text-ellipsis">s1mple</span></a>
</div>
<div class="matches-list-wrapper">
  <a href="/matches/2371234/vitality-vs-natus-vincere">
    <div class="matchTeamName">Vitality</div>
    <div class="matchTeamName">Natus Vincere</div>
    <div class="bestof">Best of 3</div>
  </a>
</div>
`

const testPlayerBody = `
<h1 class="summaryNickname">s1mple</h1>
<div class="summaryRealname"><img alt="Ukraine" src="/img/ua.png">Oleksandr Kostyliev</div>
<div class="summaryPlayerAge">28 years</div>
`

func newPipelineServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/":
			w.Write([]byte(testPage("HLTV.org", "<div>home</div>")))
		case strings.HasPrefix(r.URL.Path, "/ranking/teams/"):
			w.Write([]byte(testPage("CS2 world ranking - HLTV.org", testRankingBody)))
		case r.URL.Path == "/team/4608/natus-vincere":
			w.Write([]byte(testPage("Natus Vincere - HLTV.org", testTeamBody)))
		case r.URL.Path == "/player/7998/s1mple":
			w.Write([]byte(testPage("s1mple - HLTV.org", testPlayerBody)))
		default:
			// the stats page is down this run
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newPipelineService(t *testing.T, server *httptest.Server, gateway Gateway) *Service {
	t.Helper()
	client, err := hltv.NewClient(context.Background(), hltv.ClientOptions{
		BaseUrl:     server.URL,
		Timeout:     time.Second * 5,
		MaxAttempts: 1,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	service := NewService(client, gateway, ServiceOptions{})
	service.now = func() time.Time {
		return time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	}
	service.sleep = func(time.Duration) {}
	return service
}

func TestPipelineRun(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/tracker",
		DbSchema: db.Schema,
	})
	defer cleanup()
	defer setup.DB.Close()
	store := NewStore(setup.DB)

	server := newPipelineServer(t)
	service := newPipelineService(t, server, store)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	require.NoError(t, service.Run(ctx))

	team, err := store.queries.GetTeamByHltvID(ctx, 4608)
	require.NoError(t, err)
	require.Equal(t, "Natus Vincere", team.Name)
	require.Equal(t, "Ukraine", team.Country)

	roster, err := store.ListTeamRoster(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)

	// the stats page 404ed, so the bio survives without a statistics row
	player, stats, err := store.GetPlayerByHltvID(ctx, 7998)
	require.NoError(t, err)
	require.Equal(t, "s1mple", player.Nickname)
	require.Equal(t, "Oleksandr Kostyliev", player.RealName)
	require.Empty(t, stats)

	match, err := store.queries.GetMatchByHltvID(ctx, 2371234)
	require.NoError(t, err)
	require.Equal(t, team.ID, match.Team2ID)
	require.Equal(t, int64(SentinelTeamID), match.Team1ID)
	require.Equal(t, "bo3", match.BestOf)
	require.Equal(t, "scheduled", match.Status)
}

func TestPipelineDryRun(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/tracker")
	defer cleanup()

	server := newPipelineServer(t)
	gateway := NewDryRunGateway()
	service := newPipelineService(t, server, gateway)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	require.NoError(t, service.Run(ctx))

	require.Len(t, gateway.RankedTeams, 1)
	require.Len(t, gateway.Teams, 1)
	require.Len(t, gateway.Players, 1)
	require.Len(t, gateway.Matches, 1)
	require.Equal(t, "Vitality", gateway.Matches[0].Team1Name)

	// records reach the gateway already resolved, even without a database
	require.Equal(t, int64(SentinelTeamID), gateway.Matches[0].Team1ID)
	require.NotEqual(t, int64(SentinelTeamID), gateway.Matches[0].Team2ID)
}

func TestPipelineSeedFallback(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/tracker",
		DbSchema: db.Schema,
	})
	defer cleanup()
	defer setup.DB.Close()
	store := NewStore(setup.DB)

	// every page is down
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	service := newPipelineService(t, server, store)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	count, err := service.SyncRanking(ctx)
	require.NoError(t, err)
	require.Equal(t, len(hltv.SeedTeams()), count)

	teams, err := store.ListTrackedTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, len(hltv.SeedTeams()))
}
