package hltv

import (
	"fmt"
	"strings"
	"time"

	"cstracker-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// RankedTeam is one row of the world ranking page.
type RankedTeam struct {
	HltvID int64
	Slug   string
	Name   string
	Rank   int
	Points int
}

// RankingPath returns the path of the ranking snapshot published on
// the Monday at or before the given date. Rankings are only issued on
// Mondays, so any other date 404s.
func RankingPath(now time.Time) string {
	day := now
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, -1)
	}
	month := strings.ToLower(day.Month().String())
	return fmt.Sprintf("/ranking/teams/%d/%s/%d", day.Year(), month, day.Day())
}

// ParseRanking extracts the ranked teams from a ranking page. Rows
// that fail a plausibility check (rank outside the published top 100,
// points below the floor the site ever shows) are dropped as
// mis-extractions rather than surfaced.
func ParseRanking(doc *goquery.Document) []RankedTeam {
	var teams []RankedTeam

	doc.Find(".ranked-team").Each(func(_ int, row *goquery.Selection) {
		team, ok := parseRankedRow(row)
		if !ok {
			return
		}
		teams = append(teams, team)
	})

	return teams
}

func parseRankedRow(row *goquery.Selection) (RankedTeam, bool) {
	var team RankedTeam

	name := htmlutil.CleanInline(row.Find(".name").First().Text())
	if name == "" {
		name = htmlutil.CleanInline(row.Find(".teamLine .name").First().Text())
	}
	if name == "" {
		return team, false
	}

	href := htmlutil.Href(row.Find(`a[href*="/team/"]`).First())
	hltvID, ok := idFromHref(teamHrefPattern, href)
	if !ok {
		return team, false
	}

	rankText := row.Find(".position").First().Text()
	rank, ok := parsePlausible(rankText, RankRange)
	if !ok {
		return team, false
	}

	// points render as "(1850 points)"; anything under the floor the
	// site ever publishes is a wrong cell
	points, ok := firstNumberIn(row.Find(".points").First().Text(), Range{Min: 100, Max: 1 << 20})
	if !ok {
		return team, false
	}

	team = RankedTeam{
		HltvID: hltvID,
		Slug:   slugFromHref(href),
		Name:   name,
		Rank:   int(rank),
		Points: int(points),
	}
	return team, true
}

// slugFromHref returns the trailing path segment of an entity link,
// e.g. "/team/9565/vitality" yields "vitality".
func slugFromHref(href string) string {
	href = strings.TrimSuffix(href, "/")
	idx := strings.LastIndex(href, "/")
	if idx < 0 {
		return ""
	}
	return href[idx+1:]
}
