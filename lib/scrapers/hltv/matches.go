package hltv

import (
	"regexp"
	"strconv"
	"time"

	"cstracker-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// TBD marks a side or format the page has not committed to yet.
const TBD = "TBD"

// MatchCard is one upcoming or recent match lifted off a team page.
type MatchCard struct {
	HltvID    int64
	Team1Name string
	Team2Name string
	StartsAt  *time.Time
	BestOf    string
}

var bestOfPattern = regexp.MustCompile(`Best of (\d)`)

// ParseTeamMatches extracts the match list from a team page. Cards
// inside the chronologically hidden block duplicate visible ones and
// are skipped, and the remainder is deduplicated by match ID.
func ParseTeamMatches(doc *goquery.Document) []MatchCard {
	var matches []MatchCard
	seen := map[int64]bool{}

	root := doc.Find(".matches-list-wrapper")
	if root.Length() == 0 {
		root = doc.Selection
	}

	root.Find(`a[href^="/matches/"]`).Each(func(_ int, link *goquery.Selection) {
		if link.ParentsFiltered(".matches-chronologically-hide").Length() > 0 {
			return
		}

		hltvID, ok := idFromHref(matchHrefPattern, htmlutil.Href(link))
		if !ok || seen[hltvID] {
			return
		}

		card := parseMatchCard(link)
		card.HltvID = hltvID
		seen[hltvID] = true
		matches = append(matches, card)
	})

	return matches
}

func parseMatchCard(link *goquery.Selection) MatchCard {
	card := MatchCard{
		Team1Name: TBD,
		Team2Name: TBD,
		BestOf:    TBD,
	}

	names := link.Find(".matchTeamName")
	if names.Length() >= 2 {
		card.Team1Name = htmlutil.CleanInline(names.Eq(0).Text())
		card.Team2Name = htmlutil.CleanInline(names.Eq(1).Text())
	} else {
		// older layout names the sides by slot; an empty slot is a
		// bracket position not yet decided
		if name := htmlutil.CleanInline(link.Find(".match-team.team1").First().Text()); name != "" {
			card.Team1Name = name
		}
		if name := htmlutil.CleanInline(link.Find(".match-team.team2").First().Text()); name != "" {
			card.Team2Name = name
		}
	}
	if card.Team1Name == "" {
		card.Team1Name = TBD
	}
	if card.Team2Name == "" {
		card.Team2Name = TBD
	}

	if unix := link.Find("div.time[data-unix]").First().AttrOr("data-unix", ""); unix != "" {
		if ms, err := strconv.ParseInt(unix, 10, 64); err == nil {
			t := time.UnixMilli(ms).UTC()
			card.StartsAt = &t
		}
	}

	if m := bestOfPattern.FindStringSubmatch(link.Find("div.bestof").First().Text()); m != nil {
		card.BestOf = "bo" + m[1]
	}

	return card
}
